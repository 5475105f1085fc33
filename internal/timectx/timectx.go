// Package timectx formats an instant into the structured local-time
// breakdown attached to a location record.
package timectx

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lengocduc195/geovisit/internal/model"
)

// weekdayNames maps time.Weekday (Sunday == 0) to English names.
var weekdayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// OffsetHours returns the signed offset from UTC in hours at the
// given instant, e.g., 7 for Indochina time and -5 for New York in
// winter. Zones with fractional offsets yield a fractional value.
func OffsetHours(now time.Time) float64 {
	_, offsetSeconds := now.Zone()
	return float64(offsetSeconds) / 3600
}

// OffsetString renders an offset in hours as "UTC+N" or "UTC-N". A
// fractional offset keeps its fractional part, e.g., "UTC+5.5".
func OffsetString(offsetHours float64) string {
	sign := "+"
	if offsetHours < 0 {
		sign = "-"
	}
	magnitude := math.Abs(offsetHours)
	rendered := strconv.FormatFloat(magnitude, 'f', -1, 64)
	return "UTC" + sign + rendered
}

// Format produces the structured local-time breakdown for the given
// instant. This function is pure and total: it never fails.
func Format(now time.Time) model.TimeInfo {
	offsetHours := OffsetHours(now)
	offsetString := OffsetString(offsetHours)
	zoneName := ZoneName(now)
	return model.TimeInfo{
		ISO: now.Format(time.RFC3339),
		Formatted: fmt.Sprintf(
			"%s (%s)", now.Format("2006-01-02 15:04:05"), offsetString),
		Unix: now.Unix(),
		Date: model.DateInfo{
			Year: now.Year(),
			// Note: time.Month is already 1-based.
			Month:   int(now.Month()),
			Day:     now.Day(),
			Weekday: weekdayNames[int(now.Weekday())],
		},
		Time: model.ClockInfo{
			Hour:        now.Hour(),
			Minute:      now.Minute(),
			Second:      now.Second(),
			Millisecond: now.Nanosecond() / int(time.Millisecond),
		},
		Zone: model.ZoneInfo{
			Name:         zoneName,
			OffsetHours:  offsetHours,
			OffsetString: offsetString,
		},
	}
}

// ZoneName returns the IANA name of the instant's zone when one is
// available. The system clock's zone is literally named "Local"
// unless the process started with TZ set, so for an unnamed zone we
// fall back to reading TZ directly; when TZ is unset too we return
// the opaque "Local" name, which callers should treat as unnamed.
func ZoneName(now time.Time) string {
	name := now.Location().String()
	if name != "Local" {
		return name
	}
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	return name
}

// GuessAddressFromZoneName derives a coarse country/city guess from an
// IANA timezone name such as "Asia/Ho_Chi_Minh". The first segment is
// a continent, not a country, and the last segment is only a
// city-like label, so this is a deliberately low-confidence heuristic
// used as the very last fallback when every networked source failed.
func GuessAddressFromZoneName(zoneName string) (countryGuess, cityGuess string) {
	segments := strings.Split(zoneName, "/")
	if len(segments) < 2 {
		return "", ""
	}
	countryGuess = strings.ReplaceAll(segments[0], "_", " ")
	cityGuess = strings.ReplaceAll(segments[len(segments)-1], "_", " ")
	return
}

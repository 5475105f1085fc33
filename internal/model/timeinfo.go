package model

//
// Structured local time
//

// DateInfo is a structured calendar date.
type DateInfo struct {
	// Year is the calendar year.
	Year int `json:"year"`

	// Month is the 1-based calendar month in [1, 12].
	Month int `json:"month"`

	// Day is the day of month.
	Day int `json:"day"`

	// Weekday is the English weekday name.
	Weekday string `json:"weekday"`
}

// ClockInfo is a structured time of day.
type ClockInfo struct {
	// Hour is the hour in [0, 23].
	Hour int `json:"hour"`

	// Minute is the minute in [0, 59].
	Minute int `json:"minute"`

	// Second is the second in [0, 59].
	Second int `json:"second"`

	// Millisecond is the millisecond in [0, 999].
	Millisecond int `json:"millisecond"`
}

// ZoneInfo describes the timezone of a [TimeInfo].
type ZoneInfo struct {
	// Name is the IANA timezone name.
	Name string `json:"name"`

	// OffsetHours is the signed offset from UTC in hours.
	OffsetHours float64 `json:"offsetHours"`

	// OffsetString is the offset rendered as "UTC+N" or "UTC-N".
	OffsetString string `json:"offsetString"`
}

// TimeInfo is a structured local-time breakdown.
type TimeInfo struct {
	// ISO is the ISO-8601 rendering of the instant.
	ISO string `json:"iso"`

	// Formatted is the "YYYY-MM-DD HH:MM:SS (UTC+N)" rendering.
	Formatted string `json:"formatted"`

	// Unix is the originating Unix timestamp in seconds.
	Unix int64 `json:"unix"`

	// Date is the structured calendar date.
	Date DateInfo `json:"date"`

	// Time is the structured time of day.
	Time ClockInfo `json:"time"`

	// Zone describes the timezone.
	Zone ZoneInfo `json:"zone"`
}

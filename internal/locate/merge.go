package locate

//
// Merge & precedence
//

import (
	"time"

	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
	"github.com/lengocduc195/geovisit/internal/timectx"
)

// Merge combines the partials produced by the pipeline into one
// location record. It is deterministic, pure, and total: it performs
// no I/O and always succeeds.
//
// Precedence rules:
//
// 1. geographic fields come exclusively from the coordinate probe;
//
// 2. address fields are first-available-wins across the ordered
// addresses list followed by the network fallback, so a field set by
// a more precise source is never overwritten by a less precise one;
//
// 3. device, browser, OS, and timezone fields come from the device
// partial, except that the network fallback supplies the timezone
// when the device could not determine it;
//
// 4. network metadata comes only from the network fallback;
//
// 5. LastUpdated is set exactly once, to now.
func Merge(
	resolutionID string,
	device model.DevicePartial,
	coordinate optional.Value[model.Coordinate],
	addresses []model.AddressPartial,
	network optional.Value[model.NetworkPartial],
	now time.Time,
) model.LocationRecord {
	record := model.LocationRecord{
		ResolutionID: resolutionID,
		LastUpdated:  now,
	}

	// Rule 1: geographic fields.
	if coordinate.IsSome() {
		coord := coordinate.Unwrap()
		record.Latitude = optional.Some(coord.Latitude)
		record.Longitude = optional.Some(coord.Longitude)
		record.Accuracy = coord.Accuracy
		record.Altitude = coord.Altitude
		record.AltitudeAccuracy = coord.AltitudeAccuracy
		record.Heading = coord.Heading
		record.Speed = coord.Speed
	}

	// Rule 2: address fields, most precise source first.
	ordered := addresses
	if network.IsSome() {
		ordered = append(append([]model.AddressPartial{}, addresses...),
			network.Unwrap().Address)
	}
	for _, addr := range ordered {
		fill(&record.Country, addr.Country)
		fill(&record.CountryCode, addr.CountryCode)
		fill(&record.Region, addr.Region)
		fill(&record.RegionCode, addr.RegionCode)
		fill(&record.City, addr.City)
		fill(&record.District, addr.District)
		fill(&record.Ward, addr.Ward)
		fill(&record.Street, addr.Street)
		fill(&record.StreetNumber, addr.StreetNumber)
		fill(&record.PostalCode, addr.PostalCode)
		fill(&record.FormattedAddress, addr.FormattedAddress)
	}

	// Rule 3: device fields plus the defensive timezone fallback.
	record.DeviceType = optional.Some(device.DeviceType)
	record.Browser = optional.Some(device.Browser)
	record.BrowserVersion = optional.Some(device.BrowserVersion)
	record.OS = optional.Some(device.OS)
	record.OSVersion = optional.Some(device.OSVersion)
	record.Bot = optional.Some(device.Bot)
	if device.Timezone != "" {
		record.Timezone = optional.Some(device.Timezone)
		record.TimezoneOffset = optional.Some(device.TimezoneOffset)
	} else if network.IsSome() {
		record.Timezone = network.Unwrap().Timezone
		record.TimezoneOffset = network.Unwrap().TimezoneOffset
	}

	// Rule 4: network metadata.
	if network.IsSome() {
		np := network.Unwrap()
		record.IP = np.IP
		record.ISP = np.ISP
		record.ConnectionType = np.ConnectionType
		record.ASN = np.ASN
		record.Organization = np.Organization
		record.Proxy = np.Proxy
		record.Hosting = np.Hosting
	}

	// Rule 5: local time and the resolution timestamp.
	record.LocalTime = optional.Some(localTimeString(now, record.Timezone))
	return record
}

// fill sets dst from src only when dst is still absent.
func fill[T any](dst *optional.Value[T], src optional.Value[T]) {
	if dst.IsNone() {
		*dst = src
	}
}

// localTimeString renders now in the resolved timezone. When the
// timezone cannot be loaded we keep the zone now already carries.
func localTimeString(now time.Time, timezone optional.Value[string]) string {
	if timezone.IsSome() {
		if location, err := time.LoadLocation(timezone.Unwrap()); err == nil {
			now = now.In(location)
		}
	}
	return timectx.Format(now).Formatted
}

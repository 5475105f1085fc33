package model

//
// Location record and the partials produced by each resolver
//

import (
	"time"

	"github.com/lengocduc195/geovisit/internal/optional"
)

// DevicePartial is the partial produced by the device context
// collector. Unlike the other partials, all its fields are always
// populated, because it only reads locally available signals.
type DevicePartial struct {
	// DeviceType is one of "desktop", "mobile", and "tablet".
	DeviceType string

	// Browser is the detected browser name or "Unknown".
	Browser string

	// BrowserVersion is the detected browser version or "Unknown".
	BrowserVersion string

	// OS is the detected operating system name or "Unknown".
	OS string

	// OSVersion is the detected operating system version or "Unknown".
	OSVersion string

	// Bot indicates that the client descriptor matches a known
	// crawler signature.
	Bot bool

	// Timezone is the ambient IANA timezone name. When the host zone
	// is unnamed and TZ is unset this degrades to the opaque "Local"
	// label, which downstream heuristics treat as unusable.
	Timezone string

	// TimezoneOffset is the ambient offset from UTC in hours.
	TimezoneOffset float64
}

// AddressPartial is the partial produced by a reverse-geocoding
// resolver. Every field is independently optional: an empty field
// means "not obtained", not "empty string".
type AddressPartial struct {
	Country          optional.Value[string]
	CountryCode      optional.Value[string]
	Region           optional.Value[string]
	RegionCode       optional.Value[string]
	City             optional.Value[string]
	District         optional.Value[string]
	Ward             optional.Value[string]
	Street           optional.Value[string]
	StreetNumber     optional.Value[string]
	PostalCode       optional.Value[string]
	FormattedAddress optional.Value[string]
}

// NetworkPartial is the partial produced by the network-address
// location service. It carries both a coarse address guess and the
// network metadata that no other source produces.
type NetworkPartial struct {
	// Address is the coarse address obtained from the network origin.
	Address AddressPartial

	// IP is the public network address of the caller.
	IP optional.Value[string]

	// ISP is the internet service provider name.
	ISP optional.Value[string]

	// ConnectionType is a coarse connection classification.
	ConnectionType optional.Value[string]

	// ASN is the autonomous system number.
	ASN optional.Value[uint]

	// Organization is the autonomous system organization.
	Organization optional.Value[string]

	// Proxy indicates the address is a known proxy or VPN egress.
	Proxy optional.Value[bool]

	// Hosting indicates the address belongs to a hosting provider.
	Hosting optional.Value[bool]

	// Timezone is the timezone guessed from the network origin.
	Timezone optional.Value[string]

	// TimezoneOffset is the offset in hours matching Timezone.
	TimezoneOffset optional.Value[float64]
}

// LocationRecord is the single merged output of a resolution call.
//
// A LocationRecord is always produced, even when every networked
// source failed: in the worst case only the device fields, the
// timezone, and LastUpdated are populated. Absent fields marshal to
// JSON null so callers can render them as "Unknown".
//
// The record is a value: it is fully assembled within one resolution
// call and never mutated afterwards.
type LocationRecord struct {
	// Geographic fields. Populated exclusively from the coordinate
	// probe; address resolvers never write them.
	Latitude         optional.Value[float64] `json:"latitude"`
	Longitude        optional.Value[float64] `json:"longitude"`
	Accuracy         optional.Value[float64] `json:"accuracy"`
	Altitude         optional.Value[float64] `json:"altitude"`
	AltitudeAccuracy optional.Value[float64] `json:"altitudeAccuracy"`
	Heading          optional.Value[float64] `json:"heading"`
	Speed            optional.Value[float64] `json:"speed"`

	// Administrative address fields.
	Country          optional.Value[string] `json:"country"`
	CountryCode      optional.Value[string] `json:"countryCode"`
	Region           optional.Value[string] `json:"region"`
	RegionCode       optional.Value[string] `json:"regionCode"`
	City             optional.Value[string] `json:"city"`
	District         optional.Value[string] `json:"district"`
	Ward             optional.Value[string] `json:"ward"`
	Street           optional.Value[string] `json:"street"`
	StreetNumber     optional.Value[string] `json:"streetNumber"`
	PostalCode       optional.Value[string] `json:"postalCode"`
	FormattedAddress optional.Value[string] `json:"formattedAddress"`

	// Time fields.
	Timezone       optional.Value[string]  `json:"timezone"`
	TimezoneOffset optional.Value[float64] `json:"timezoneOffset"`
	LocalTime      optional.Value[string]  `json:"localTime"`

	// Network fields. Populated exclusively from the network-address
	// location service.
	IP             optional.Value[string] `json:"ip"`
	ISP            optional.Value[string] `json:"isp"`
	ConnectionType optional.Value[string] `json:"connectionType"`
	ASN            optional.Value[uint]   `json:"asn"`
	Organization   optional.Value[string] `json:"organization"`
	Proxy          optional.Value[bool]   `json:"proxy"`
	Hosting        optional.Value[bool]   `json:"hosting"`

	// Device fields. Populated from the device context collector.
	DeviceType     optional.Value[string] `json:"deviceType"`
	Browser        optional.Value[string] `json:"browser"`
	BrowserVersion optional.Value[string] `json:"browserVersion"`
	OS             optional.Value[string] `json:"os"`
	OSVersion      optional.Value[string] `json:"osVersion"`
	Bot            optional.Value[bool]   `json:"bot"`

	// ResolutionID uniquely identifies this resolution in logs.
	ResolutionID string `json:"resolutionId"`

	// LastUpdated is the resolution timestamp, set exactly once at
	// the end of the merge step.
	LastUpdated time.Time `json:"lastUpdated"`
}

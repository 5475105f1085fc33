package model

//
// Coordinate probing
//

import (
	"context"
	"time"

	"github.com/lengocduc195/geovisit/internal/optional"
)

// Coordinate is a geographic fix reported by the host environment. Only
// Latitude and Longitude are always present; the remaining fields are
// populated when the host reports them.
type Coordinate struct {
	// Latitude is the latitude in decimal degrees.
	Latitude float64

	// Longitude is the longitude in decimal degrees.
	Longitude float64

	// Accuracy is the horizontal accuracy radius in meters.
	Accuracy optional.Value[float64]

	// Altitude is the altitude in meters above the ellipsoid.
	Altitude optional.Value[float64]

	// AltitudeAccuracy is the vertical accuracy in meters.
	AltitudeAccuracy optional.Value[float64]

	// Heading is the direction of travel in degrees clockwise from north.
	Heading optional.Value[float64]

	// Speed is the ground speed in meters per second.
	Speed optional.Value[float64]
}

// CoordinateOptions contains options for requesting a coordinate.
type CoordinateOptions struct {
	// Timeout is the maximum time we allow the host to take.
	Timeout time.Duration

	// HighAccuracy requests the most accurate fix available.
	HighAccuracy bool

	// MaximumAge is the maximum acceptable age of a cached fix. Zero
	// means the host must obtain a fresh reading.
	MaximumAge time.Duration
}

// CoordinateSource is the capability provided by the host environment
// for obtaining the current geographic coordinate, e.g., a browser
// geolocation bridge or a GNSS daemon. Obtaining a coordinate may
// trigger a user-facing permission prompt.
//
// CurrentCoordinate returns an error when permission is denied, the
// capability is absent, or the request times out. Callers in this
// codebase never propagate such errors; see the coordprobe package.
type CoordinateSource interface {
	CurrentCoordinate(ctx context.Context, options *CoordinateOptions) (*Coordinate, error)
}

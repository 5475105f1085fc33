// Package coordprobe asks the host environment for the current
// geographic coordinate. The host capability may prompt the user for
// permission, be denied, time out, or be entirely absent: all of
// those outcomes collapse to "no coordinate" rather than an error,
// because the resolution pipeline must never fail its caller.
package coordprobe

import (
	"context"
	"time"

	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
)

// DefaultTimeout is the default hard timeout for obtaining a fix.
const DefaultTimeout = 15 * time.Second

// Prober obtains coordinates from a [model.CoordinateSource].
//
// The zero value is valid and always reports "no coordinate".
type Prober struct {
	// Logger is the OPTIONAL logger to use.
	Logger model.Logger

	// Source is the OPTIONAL coordinate capability. A nil source
	// means the capability is absent.
	Source model.CoordinateSource

	// Timeout is the OPTIONAL timeout replacing [DefaultTimeout].
	Timeout time.Duration
}

// timeout returns the configured or the default timeout.
func (p *Prober) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultTimeout
}

// Probe attempts to obtain a fresh, maximum-accuracy coordinate.
//
// We request a fresh reading (maximum age zero) because a cached fix
// may describe where the device was, not where it is.
func (p *Prober) Probe(ctx context.Context) optional.Value[model.Coordinate] {
	logger := model.ValidLoggerOrDefault(p.Logger)

	if p.Source == nil {
		logger.Debug("coordprobe: no coordinate capability")
		return optional.None[model.Coordinate]()
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	coordinate, err := p.Source.CurrentCoordinate(ctx, &model.CoordinateOptions{
		Timeout:      p.timeout(),
		HighAccuracy: true,
		MaximumAge:   0,
	})
	if err != nil {
		logger.Debugf("coordprobe: %s", err.Error())
		return optional.None[model.Coordinate]()
	}
	if coordinate == nil {
		logger.Debug("coordprobe: source returned no coordinate")
		return optional.None[model.Coordinate]()
	}

	return optional.Some(*coordinate)
}

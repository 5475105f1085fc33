// Package revgeo translates a geographic coordinate into a structured
// postal address using external reverse-geocoding services.
//
// There are two resolvers. [NominatimResolver] calls an open
// structured reverse-geocoding service and is the primary source.
// [GoogleResolver] calls a second provider and is only used as a
// cross-check and gap filler when a credential for it is configured.
//
// Both resolvers return an error instead of a partial when the
// service is unreachable or its response is unusable; the caller is
// expected to swallow that error and continue with other sources.
package revgeo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
)

// ErrNotConfigured indicates that the resolver has no credential.
var ErrNotConfigured = errors.New("revgeo: resolver not configured")

// ErrNoResult indicates that the service answered without a usable address.
var ErrNoResult = errors.New("revgeo: no result")

// defaultTimeout bounds a single reverse-geocoding call.
const defaultTimeout = 7 * time.Second

// Resolver resolves a coordinate into an address partial.
type Resolver interface {
	Resolve(ctx context.Context, coordinate model.Coordinate) (model.AddressPartial, error)
}

// cacheKey maps a coordinate to a cache key. We round to four decimal
// places (roughly eleven meters) so nearby fixes share an entry and we
// do not hammer the public endpoint with near-identical queries.
func cacheKey(coordinate model.Coordinate) string {
	return fmt.Sprintf("%.4f,%.4f", coordinate.Latitude, coordinate.Longitude)
}

// firstNonEmpty returns the first non-empty candidate as an optional
// value, or none when every candidate is empty. The candidate order
// encodes the documented field precedence.
func firstNonEmpty(candidates ...string) optional.Value[string] {
	for _, candidate := range candidates {
		if candidate != "" {
			return optional.Some(candidate)
		}
	}
	return optional.None[string]()
}

// Package iplocate estimates the caller's location and network
// context from its network origin, without any device coordinate.
//
// The lookup walks an ordered chain of providers, each of them
// individually unreliable:
//
// 1. the first-party resolution endpoint, an opaque service with its
// own internal provider fallback;
//
// 2. a public IP geolocation API, which also supplies ISP, ASN,
// organization, and proxy/hosting flags;
//
// 3. STUN discovery of the bare public address, enriched through the
// local geolocation database and a reverse-DNS hint;
//
// 4. the ambient-timezone heuristic, which cannot fail.
//
// The chain therefore never fails: in the worst case it yields a
// partial containing only timezone fields and a low-confidence
// country/city guess. Individual provider failures are aggregated and
// logged at debug level only.
package iplocate

import (
	"context"
	"errors"
	"time"

	"github.com/lengocduc195/geovisit/internal/geoipx"
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/multierror"
	"github.com/lengocduc195/geovisit/internal/optional"
	"github.com/lengocduc195/geovisit/internal/timectx"
)

// ErrAllProvidersFailed indicates that every networked provider in
// the chain failed and only the local heuristic was applied.
var ErrAllProvidersFailed = errors.New("iplocate: all providers failed")

// ErrNoResult indicates that a provider answered without usable data.
var ErrNoResult = errors.New("iplocate: no result")

// defaultTimeout bounds each networked provider in the chain.
const defaultTimeout = 7 * time.Second

// Client resolves the network-address location.
//
// The zero value is valid: with no HTTP client and no database it
// degrades to the ambient-timezone heuristic.
type Client struct {
	// Clock is the OPTIONAL clock to use.
	Clock model.Clock

	// DNSServer is the OPTIONAL "host:port" of the DNS server used
	// for reverse-DNS hints. Empty disables the reverse-DNS hint.
	DNSServer string

	// Endpoint is the OPTIONAL URL of the first-party resolution
	// endpoint. Empty skips the first-party provider.
	Endpoint string

	// GeoDB is the OPTIONAL local geolocation database.
	GeoDB *geoipx.DB

	// HTTPClient is the OPTIONAL [model.HTTPClient]. Nil skips the
	// HTTP-backed providers.
	HTTPClient model.HTTPClient

	// IPAPIBaseURL is the OPTIONAL base URL replacing [DefaultIPAPIBaseURL].
	IPAPIBaseURL string

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger

	// STUNEndpoint is the OPTIONAL "host:port" of the STUN server
	// replacing [DefaultSTUNEndpoint].
	STUNEndpoint string
}

// provider is a single entry of the fallback chain.
type provider struct {
	// name identifies the provider in logs and metrics.
	name string

	// fn performs the lookup.
	fn func(ctx context.Context) (model.NetworkPartial, error)
}

// providers returns the chain in fallback order.
func (c *Client) providers() []provider {
	return []provider{
		{name: "first_party", fn: c.lookupFirstParty},
		{name: "ip_api", fn: c.lookupIPAPI},
		{name: "stun", fn: c.lookupSTUN},
	}
}

// Resolve walks the provider chain and returns the first usable
// partial, completed with ambient timezone information. It never
// fails: when every provider fails it returns the heuristic-only
// partial described in the package documentation.
func (c *Client) Resolve(ctx context.Context) model.NetworkPartial {
	logger := model.ValidLoggerOrDefault(c.Logger)

	me := multierror.New(ErrAllProvidersFailed)
	for _, p := range c.providers() {
		partial, err := p.fn(ctx)
		if err != nil {
			me.Add(err)
			continue
		}
		logger.Debugf("iplocate: %s succeeded", p.name)
		c.fillAmbientTimezone(&partial)
		return partial
	}

	logger.Debugf("iplocate: %s", me.Error())
	return c.heuristicOnly()
}

// fillAmbientTimezone fills the timezone fields from the ambient
// clock when the provider did not report them.
func (c *Client) fillAmbientTimezone(partial *model.NetworkPartial) {
	now := model.ValidClockOrDefault(c.Clock).Now()
	if partial.Timezone.IsNone() {
		partial.Timezone = optional.Some(timectx.ZoneName(now))
	}
	if partial.TimezoneOffset.IsNone() {
		partial.TimezoneOffset = optional.Some(timectx.OffsetHours(now))
	}
}

// heuristicOnly builds the partial returned when every networked
// provider failed: timezone fields plus the coarse country/city guess
// derived from splitting the ambient timezone name. The guess is a
// documented low-confidence heuristic, not a geocoding result.
func (c *Client) heuristicOnly() model.NetworkPartial {
	now := model.ValidClockOrDefault(c.Clock).Now()
	zoneName := timectx.ZoneName(now)
	partial := model.NetworkPartial{
		Timezone:       optional.Some(zoneName),
		TimezoneOffset: optional.Some(timectx.OffsetHours(now)),
	}
	countryGuess, cityGuess := timectx.GuessAddressFromZoneName(zoneName)
	if countryGuess != "" {
		partial.Address.Country = optional.Some(countryGuess)
	}
	if cityGuess != "" {
		partial.Address.City = optional.Some(cityGuess)
	}
	return partial
}

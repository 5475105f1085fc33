package revgeo

//
// Secondary resolver using a second geocoding provider
//

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/lengocduc195/geovisit/internal/httpclientx"
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
)

// DefaultGoogleBaseURL is the default base URL of the second provider.
const DefaultGoogleBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleResolver is the secondary address resolver. It is a no-op
// unless an API key is configured.
type GoogleResolver struct {
	// APIKey is the access credential. When empty, Resolve always
	// fails with [ErrNotConfigured].
	APIKey string

	// BaseURL is the OPTIONAL base URL replacing [DefaultGoogleBaseURL].
	BaseURL string

	// Client is the MANDATORY [model.HTTPClient] to use.
	Client model.HTTPClient

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger
}

// googleResponse is the shape of the provider response.
type googleResponse struct {
	Status  string         `json:"status"`
	Results []googleResult `json:"results"`
}

type googleResult struct {
	FormattedAddress  string            `json:"formatted_address"`
	AddressComponents []googleComponent `json:"address_components"`
}

type googleComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// baseURL returns the configured or the default base URL.
func (r *GoogleResolver) baseURL() string {
	if r.BaseURL != "" {
		return r.BaseURL
	}
	return DefaultGoogleBaseURL
}

// Resolve implements [Resolver].
func (r *GoogleResolver) Resolve(
	ctx context.Context, coordinate model.Coordinate) (model.AddressPartial, error) {
	if r.APIKey == "" {
		return model.AddressPartial{}, ErrNotConfigured
	}
	logger := model.ValidLoggerOrDefault(r.Logger)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("latlng", strconv.FormatFloat(coordinate.Latitude, 'f', -1, 64)+
		","+strconv.FormatFloat(coordinate.Longitude, 'f', -1, 64))
	query.Set("key", r.APIKey)

	resp, err := httpclientx.GetJSON[googleResponse](
		ctx,
		httpclientx.NewEndpoint(r.baseURL()+"?"+query.Encode()),
		&httpclientx.Config{
			Client:    r.Client,
			Logger:    logger,
			UserAgent: model.HTTPHeaderUserAgent,
		},
	)
	if err != nil {
		return model.AddressPartial{}, err
	}
	if resp.Status != "OK" || len(resp.Results) < 1 {
		return model.AddressPartial{}, ErrNoResult
	}

	logger.Debugf("revgeo: google: resolved %s", cacheKey(coordinate))
	return mapGoogleResult(resp.Results[0]), nil
}

// componentSetter assigns a matched component to its target fields.
type componentSetter func(partial *model.AddressPartial, comp googleComponent)

// componentTable maps component-type tags to target fields. The table
// makes the type-to-field assignment explicit and testable; matching
// is by exact tag except for the sublocality family, handled below.
var componentTable = map[string]componentSetter{
	"street_number": func(p *model.AddressPartial, c googleComponent) {
		p.StreetNumber = optional.Some(c.LongName)
	},
	"route": func(p *model.AddressPartial, c googleComponent) {
		p.Street = optional.Some(c.LongName)
	},
	"administrative_area_level_2": func(p *model.AddressPartial, c googleComponent) {
		p.District = optional.Some(c.LongName)
	},
	"locality": func(p *model.AddressPartial, c googleComponent) {
		p.City = optional.Some(c.LongName)
	},
	"administrative_area_level_1": func(p *model.AddressPartial, c googleComponent) {
		p.Region = optional.Some(c.LongName)
		p.RegionCode = optional.Some(c.ShortName)
	},
	"country": func(p *model.AddressPartial, c googleComponent) {
		p.Country = optional.Some(c.LongName)
		p.CountryCode = optional.Some(strings.ToUpper(c.ShortName))
	},
	"postal_code": func(p *model.AddressPartial, c googleComponent) {
		p.PostalCode = optional.Some(c.LongName)
	},
}

// mapGoogleResult walks the component list of the first result and
// assigns each component to its target fields.
func mapGoogleResult(result googleResult) model.AddressPartial {
	partial := model.AddressPartial{}
	for _, comp := range result.AddressComponents {
		for _, tag := range comp.Types {
			if strings.HasPrefix(tag, "sublocality") {
				partial.Ward = optional.Some(comp.LongName)
				continue
			}
			if setter, found := componentTable[tag]; found {
				setter(&partial, comp)
			}
		}
	}
	if result.FormattedAddress != "" {
		partial.FormattedAddress = optional.Some(result.FormattedAddress)
	}
	return partial
}

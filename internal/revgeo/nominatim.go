package revgeo

//
// Primary resolver using an open structured reverse-geocoding service
//

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lengocduc195/geovisit/internal/httpclientx"
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
	"github.com/patrickmn/go-cache"
)

// DefaultNominatimBaseURL is the open reverse-geocoding service we
// use by default.
const DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimResolver is the primary address resolver.
//
// The zero value is invalid; fill the fields marked as MANDATORY.
type NominatimResolver struct {
	// BaseURL is the OPTIONAL base URL replacing [DefaultNominatimBaseURL].
	BaseURL string

	// Cache is the OPTIONAL response cache, keyed by rounded coordinate.
	Cache *cache.Cache

	// Client is the MANDATORY [model.HTTPClient] to use.
	Client model.HTTPClient

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger
}

// NewNominatimResolver constructs a [*NominatimResolver] with a
// fifteen-minute response cache.
func NewNominatimResolver(client model.HTTPClient, logger model.Logger) *NominatimResolver {
	return &NominatimResolver{
		BaseURL: DefaultNominatimBaseURL,
		Cache:   cache.New(15*time.Minute, 30*time.Minute),
		Client:  client,
		Logger:  logger,
	}
}

// nominatimResponse is the shape of the service response.
type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

// nominatimAddress is the address component breakdown.
type nominatimAddress struct {
	HouseNumber   string `json:"house_number"`
	Road          string `json:"road"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	Quarter       string `json:"quarter"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	Municipality  string `json:"municipality"`
	District      string `json:"district"`
	State         string `json:"state"`
	County        string `json:"county"`
	Province      string `json:"province"`
	Postcode      string `json:"postcode"`
	Country       string `json:"country"`
	CountryCode   string `json:"country_code"`
}

// baseURL returns the configured or the default base URL.
func (r *NominatimResolver) baseURL() string {
	if r.BaseURL != "" {
		return r.BaseURL
	}
	return DefaultNominatimBaseURL
}

// Resolve implements [Resolver]. We request zoom level 18 with full
// address details, which yields building-level component breakdown.
func (r *NominatimResolver) Resolve(
	ctx context.Context, coordinate model.Coordinate) (model.AddressPartial, error) {
	logger := model.ValidLoggerOrDefault(r.Logger)

	if r.Cache != nil {
		if cached, found := r.Cache.Get(cacheKey(coordinate)); found {
			logger.Debugf("revgeo: nominatim: cache hit for %s", cacheKey(coordinate))
			return cached.(model.AddressPartial), nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(coordinate.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coordinate.Longitude, 'f', -1, 64))
	query.Set("zoom", "18")
	query.Set("addressdetails", "1")

	resp, err := httpclientx.GetJSON[nominatimResponse](
		ctx,
		httpclientx.NewEndpoint(r.baseURL()+"/reverse?"+query.Encode()),
		&httpclientx.Config{
			Client:    r.Client,
			Logger:    logger,
			UserAgent: model.HTTPHeaderUserAgent,
		},
	)
	if err != nil {
		return model.AddressPartial{}, err
	}
	if resp.Address.Country == "" && resp.DisplayName == "" {
		return model.AddressPartial{}, ErrNoResult
	}

	partial := mapNominatimAddress(resp)
	logger.Debugf("revgeo: nominatim: resolved %s", cacheKey(coordinate))

	if r.Cache != nil {
		r.Cache.Set(cacheKey(coordinate), partial, cache.DefaultExpiration)
	}
	return partial, nil
}

// mapNominatimAddress maps the service response onto an address
// partial. Each multi-source field documents its precedence order
// through the argument order of firstNonEmpty.
func mapNominatimAddress(resp nominatimResponse) model.AddressPartial {
	addr := resp.Address
	partial := model.AddressPartial{
		Country:          firstNonEmpty(addr.Country),
		CountryCode:      optional.None[string](),
		Region:           firstNonEmpty(addr.State, addr.County, addr.Province),
		RegionCode:       optional.None[string](),
		City:             firstNonEmpty(addr.City, addr.Town, addr.Village, addr.Municipality),
		District:         firstNonEmpty(addr.District, addr.Suburb, addr.County),
		Ward:             firstNonEmpty(addr.Suburb, addr.Neighbourhood, addr.Quarter),
		Street:           firstNonEmpty(addr.Road),
		StreetNumber:     firstNonEmpty(addr.HouseNumber),
		PostalCode:       firstNonEmpty(addr.Postcode),
		FormattedAddress: firstNonEmpty(resp.DisplayName),
	}
	if addr.CountryCode != "" {
		partial.CountryCode = optional.Some(strings.ToUpper(addr.CountryCode))
	}
	// A locally-formatted address, when we can synthesize one, reads
	// better than the provider string and therefore replaces it.
	if synthesized := SynthesizeVietnamAddress(partial); synthesized.IsSome() {
		partial.FormattedAddress = synthesized
	}
	return partial
}

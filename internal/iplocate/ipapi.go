package iplocate

//
// Public IP geolocation API provider
//

import (
	"context"
	"strconv"
	"strings"

	"github.com/lengocduc195/geovisit/internal/httpclientx"
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
)

// DefaultIPAPIBaseURL is the default base URL of the public IP
// geolocation API provider.
const DefaultIPAPIBaseURL = "http://ip-api.com/json"

// ipAPIFields selects the response fields we consume. Note that we
// deliberately do not request lat/lon: geographic coordinates only
// ever come from the coordinate probe, never from address lookups.
const ipAPIFields = "status,message,country,countryCode,region,regionName," +
	"city,district,zip,timezone,offset,isp,org,as,mobile,proxy,hosting,query"

// ipAPIResponse is the shape of the provider response.
type ipAPIResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode"`
	Region      string   `json:"region"`
	RegionName  string   `json:"regionName"`
	City        string   `json:"city"`
	District    string   `json:"district"`
	Zip         string   `json:"zip"`
	Timezone    string   `json:"timezone"`
	Offset      *float64 `json:"offset"`
	ISP         string   `json:"isp"`
	Org         string   `json:"org"`
	AS          string   `json:"as"`
	Mobile      bool     `json:"mobile"`
	Proxy       bool     `json:"proxy"`
	Hosting     bool     `json:"hosting"`
	Query       string   `json:"query"`
}

// ipAPIBaseURL returns the configured or the default base URL.
func (c *Client) ipAPIBaseURL() string {
	if c.IPAPIBaseURL != "" {
		return c.IPAPIBaseURL
	}
	return DefaultIPAPIBaseURL
}

// lookupIPAPI queries the public IP geolocation API. The caller
// identity is implicit: with no path component the service resolves
// the requesting address.
func (c *Client) lookupIPAPI(ctx context.Context) (model.NetworkPartial, error) {
	if c.HTTPClient == nil {
		return model.NetworkPartial{}, errNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	resp, err := httpclientx.GetJSON[ipAPIResponse](
		ctx,
		httpclientx.NewEndpoint(c.ipAPIBaseURL()+"?fields="+ipAPIFields),
		&httpclientx.Config{
			Client:    c.HTTPClient,
			Logger:    model.ValidLoggerOrDefault(c.Logger),
			UserAgent: model.HTTPHeaderUserAgent,
		},
	)
	if err != nil {
		return model.NetworkPartial{}, err
	}
	if resp.Status != "success" {
		return model.NetworkPartial{}, ErrNoResult
	}

	partial := model.NetworkPartial{
		Address: model.AddressPartial{
			Country:     someNonEmpty(resp.Country),
			CountryCode: someNonEmpty(strings.ToUpper(resp.CountryCode)),
			Region:      someNonEmpty(resp.RegionName),
			RegionCode:  someNonEmpty(resp.Region),
			City:        someNonEmpty(resp.City),
			District:    someNonEmpty(resp.District),
			PostalCode:  someNonEmpty(resp.Zip),
		},
		IP:           someNonEmpty(resp.Query),
		ISP:          someNonEmpty(resp.ISP),
		Organization: someNonEmpty(resp.Org),
		Proxy:        optional.Some(resp.Proxy),
		Hosting:      optional.Some(resp.Hosting),
		Timezone:     someNonEmpty(resp.Timezone),
	}
	if resp.Offset != nil {
		partial.TimezoneOffset = optional.Some(*resp.Offset / 3600)
	}
	if resp.Mobile {
		partial.ConnectionType = optional.Some("cellular")
	}
	if asn, ok := parseASN(resp.AS); ok {
		partial.ASN = optional.Some(asn)
	}
	return partial, nil
}

// parseASN parses the "AS15169 Google LLC" rendering used by the
// provider into the bare AS number.
func parseASN(rendered string) (uint, bool) {
	fields := strings.Fields(rendered)
	if len(fields) < 1 || !strings.HasPrefix(fields[0], "AS") {
		return 0, false
	}
	value, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "AS"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}

// someNonEmpty wraps a string into an optional value that is none
// when the string is empty.
func someNonEmpty(value string) optional.Value[string] {
	if value == "" {
		return optional.None[string]()
	}
	return optional.Some(value)
}

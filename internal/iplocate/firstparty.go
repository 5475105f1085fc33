package iplocate

//
// First-party resolution endpoint
//

import (
	"context"
	"errors"

	"github.com/lengocduc195/geovisit/internal/httpclientx"
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
)

// errNotConfigured indicates that a provider lacks configuration.
var errNotConfigured = errors.New("iplocate: provider not configured")

// firstPartyEnvelope is the `{success, data}` envelope returned by
// the first-party endpoint. The endpoint identifies the caller from
// the network origin of the request, so there are no parameters.
type firstPartyEnvelope struct {
	Success bool              `json:"success"`
	Data    firstPartyPayload `json:"data"`
}

// firstPartyPayload mirrors the flat field names of a location record.
type firstPartyPayload struct {
	IP             optional.Value[string]  `json:"ip"`
	Country        optional.Value[string]  `json:"country"`
	CountryCode    optional.Value[string]  `json:"countryCode"`
	Region         optional.Value[string]  `json:"region"`
	RegionCode     optional.Value[string]  `json:"regionCode"`
	City           optional.Value[string]  `json:"city"`
	District       optional.Value[string]  `json:"district"`
	PostalCode     optional.Value[string]  `json:"postalCode"`
	Timezone       optional.Value[string]  `json:"timezone"`
	TimezoneOffset optional.Value[float64] `json:"timezoneOffset"`
	ISP            optional.Value[string]  `json:"isp"`
	ConnectionType optional.Value[string]  `json:"connectionType"`
	ASN            optional.Value[uint]    `json:"asn"`
	Organization   optional.Value[string]  `json:"organization"`
	Proxy          optional.Value[bool]    `json:"proxy"`
	Hosting        optional.Value[bool]    `json:"hosting"`
}

// lookupFirstParty queries the first-party resolution endpoint. The
// endpoint runs its own internal provider fallback; we treat it as
// opaque and only check the envelope.
func (c *Client) lookupFirstParty(ctx context.Context) (model.NetworkPartial, error) {
	if c.Endpoint == "" || c.HTTPClient == nil {
		return model.NetworkPartial{}, errNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	envelope, err := httpclientx.GetJSON[firstPartyEnvelope](
		ctx,
		httpclientx.NewEndpoint(c.Endpoint),
		&httpclientx.Config{
			Client:    c.HTTPClient,
			Logger:    model.ValidLoggerOrDefault(c.Logger),
			UserAgent: model.HTTPHeaderUserAgent,
		},
	)
	if err != nil {
		return model.NetworkPartial{}, err
	}
	if !envelope.Success {
		return model.NetworkPartial{}, ErrNoResult
	}

	data := envelope.Data
	return model.NetworkPartial{
		Address: model.AddressPartial{
			Country:     data.Country,
			CountryCode: data.CountryCode,
			Region:      data.Region,
			RegionCode:  data.RegionCode,
			City:        data.City,
			District:    data.District,
			PostalCode:  data.PostalCode,
		},
		IP:             data.IP,
		ISP:            data.ISP,
		ConnectionType: data.ConnectionType,
		ASN:            data.ASN,
		Organization:   data.Organization,
		Proxy:          data.Proxy,
		Hosting:        data.Hosting,
		Timezone:       data.Timezone,
		TimezoneOffset: data.TimezoneOffset,
	}, nil
}

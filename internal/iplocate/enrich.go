package iplocate

//
// Local enrichment of a bare network address
//

import (
	"context"
	"strings"

	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
	"github.com/miekg/dns"
)

// LookupIP builds a network partial for the given bare address using
// only local information: the configured geolocation database for the
// country code, ASN, and organization, plus a reverse-DNS hostname as
// a low-confidence ISP hint. It never fails; enrichment steps that
// fail simply leave their fields absent.
//
// This is also the entry point used by the first-party endpoint
// handler, which enriches the address of the inbound request.
func (c *Client) LookupIP(ctx context.Context, ip string) model.NetworkPartial {
	logger := model.ValidLoggerOrDefault(c.Logger)
	partial := model.NetworkPartial{
		IP: optional.Some(ip),
	}

	if cc, err := c.GeoDB.LookupCC(ip); err == nil && cc != "" {
		partial.Address.CountryCode = optional.Some(strings.ToUpper(cc))
	} else if err != nil {
		logger.Debugf("iplocate: cc lookup: %s", err.Error())
	}

	if asn, org, err := c.GeoDB.LookupASN(ip); err == nil {
		if asn != 0 {
			partial.ASN = optional.Some(asn)
		}
		if org != "" {
			partial.Organization = optional.Some(org)
			partial.ISP = optional.Some(org)
		}
	} else {
		logger.Debugf("iplocate: asn lookup: %s", err.Error())
	}

	// The reverse-DNS hostname often embeds the provider name, so we
	// use it as an ISP hint when the database gave us nothing.
	if partial.ISP.IsNone() {
		if hostname, err := c.reverseDNSHint(ctx, ip); err == nil {
			partial.ISP = optional.Some(hostname)
		} else {
			logger.Debugf("iplocate: rdns: %s", err.Error())
		}
	}

	return partial
}

// reverseDNSHint resolves the PTR record for the given address.
func (c *Client) reverseDNSHint(ctx context.Context, ip string) (string, error) {
	if c.DNSServer == "" {
		return "", errNotConfigured
	}

	arpa, err := dns.ReverseAddr(ip)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, rdnsTimeout)
	defer cancel()

	query := new(dns.Msg)
	query.SetQuestion(arpa, dns.TypePTR)

	client := &dns.Client{}
	resp, _, err := client.ExchangeContext(ctx, query, c.DNSServer)
	if err != nil {
		return "", err
	}
	for _, answer := range resp.Answer {
		if ptr, ok := answer.(*dns.PTR); ok {
			return strings.TrimSuffix(ptr.Ptr, "."), nil
		}
	}
	return "", ErrNoResult
}

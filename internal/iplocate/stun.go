package iplocate

//
// Bare public address discovery using STUN
//

import (
	"context"
	"net"
	"time"

	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/pion/stun"
)

// DefaultSTUNEndpoint is the default STUN server we query.
const DefaultSTUNEndpoint = "stun.l.google.com:19302"

// stunEndpoint returns the configured or the default STUN endpoint.
func (c *Client) stunEndpoint() string {
	if c.STUNEndpoint != "" {
		return c.STUNEndpoint
	}
	return DefaultSTUNEndpoint
}

// lookupSTUN discovers the bare public address through a STUN binding
// request and then enriches it with whatever local information we
// have. This provider yields no postal address by itself but still
// recovers the IP, ASN, and country code when the local database is
// available.
func (c *Client) lookupSTUN(ctx context.Context) (model.NetworkPartial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	addr, err := c.stunBindingRequest(ctx)
	if err != nil {
		return model.NetworkPartial{}, err
	}

	return c.LookupIP(ctx, addr), nil
}

// stunBindingRequest issues the binding request and extracts the
// XOR-mapped address from the response.
func (c *Client) stunBindingRequest(ctx context.Context) (string, error) {
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "udp", c.stunEndpoint())
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := stun.NewClient(conn)
	if err != nil {
		return "", err
	}
	defer client.Close()

	message := stun.MustBuild(stun.TransactionID, stun.BindingRequest)
	var addr string
	var cbErr error
	err = client.Do(message, func(event stun.Event) {
		if event.Error != nil {
			cbErr = event.Error
			return
		}
		var xorAddr stun.XORMappedAddress
		if err := xorAddr.GetFrom(event.Message); err != nil {
			cbErr = err
			return
		}
		addr = xorAddr.IP.String()
	})
	if err != nil {
		return "", err
	}
	if cbErr != nil {
		return "", cbErr
	}
	if net.ParseIP(addr) == nil {
		return "", ErrNoResult
	}
	return addr, nil
}

// rdnsTimeout bounds the reverse-DNS hint lookup, which is strictly
// best-effort and should not delay the chain.
const rdnsTimeout = 3 * time.Second

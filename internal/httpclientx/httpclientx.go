// Package httpclientx contains extensions to more easily invoke HTTP APIs.
package httpclientx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lengocduc195/geovisit/internal/model"
)

// ErrRequestFailed indicates that an HTTP request failed with a
// status code distinct from 200.
var ErrRequestFailed = errors.New("httpclientx: http request failed")

// maxResponseBodySize is the maximum response body size we accept
// from any of the external services we call.
const maxResponseBodySize = 1 << 22

// Config contains configuration shared by [GetJSON] and [GetRaw].
//
// The zero value is invalid; initialize the MANDATORY fields.
type Config struct {
	// Client is the MANDADORY [model.HTTPClient] to use.
	Client model.HTTPClient

	// Logger is the MANDATORY [model.Logger] to use.
	Logger model.Logger

	// UserAgent is the MANDATORY User-Agent header value to use.
	UserAgent string
}

// Endpoint is an HTTP endpoint.
//
// The zero value is invalid; construct using [NewEndpoint].
type Endpoint struct {
	// URL is the MANDATORY endpoint URL.
	URL string

	// Host is the OPTIONAL host header override.
	Host string
}

// NewEndpoint constructs a new [*Endpoint] instance using the given URL.
func NewEndpoint(URL string) *Endpoint {
	return &Endpoint{
		URL:  URL,
		Host: "",
	}
}

// WithHostOverride returns a copy of the [*Endpoint] using the given host header override.
func (e *Endpoint) WithHostOverride(host string) *Endpoint {
	return &Endpoint{
		URL:  e.URL,
		Host: host,
	}
}

// GetJSON sends a GET request and reads a JSON response.
//
// Arguments:
//
// - ctx is the cancellable context;
//
// - epnt is the HTTP [*Endpoint] to use;
//
// - config is the config to use.
//
// This function either returns an error or a valid Output.
func GetJSON[Output any](ctx context.Context, epnt *Endpoint, config *Config) (Output, error) {
	// read the raw body
	rawrespbody, err := GetRaw(ctx, epnt, config)

	// handle the case of error
	if err != nil {
		return zeroValue[Output](), err
	}

	// parse the response body as JSON
	var output Output
	if err := json.Unmarshal(rawrespbody, &output); err != nil {
		return zeroValue[Output](), err
	}

	return output, nil
}

// GetRaw sends a GET request and reads a raw response.
//
// This function either returns an error or a valid response body.
func GetRaw(ctx context.Context, epnt *Endpoint, config *Config) ([]byte, error) {
	// construct the request to use
	req, err := http.NewRequestWithContext(ctx, "GET", epnt.URL, nil)
	if err != nil {
		return nil, err
	}

	return do(ctx, req, epnt, config)
}

// do sends the request and reads the response body.
func do(ctx context.Context, req *http.Request, epnt *Endpoint, config *Config) ([]byte, error) {
	// optionally override the host header
	req.Host = epnt.Host

	// assign the user agent
	req.Header.Set("User-Agent", config.UserAgent)

	// issue the request
	config.Logger.Debugf("httpclientx: GET %s", epnt.URL)
	resp, err := config.Client.Do(req)

	// handle the case of error
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// make sure the request succeeded
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w: %d", ErrRequestFailed, resp.StatusCode)
	}

	// read the response body up to the maximum acceptable size
	reader := io.LimitReader(resp.Body, maxResponseBodySize)
	return io.ReadAll(reader)
}

// zeroValue is a convenience function to return the zero value.
func zeroValue[T any]() T {
	var value T
	return value
}

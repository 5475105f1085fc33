package model

//
// HTTP
//

import "net/http"

// HTTPClient is an http.Client-like interface.
type HTTPClient interface {
	// Do behaves like http.Client.Do.
	Do(req *http.Request) (*http.Response, error)

	// CloseIdleConnections closes idle connections.
	CloseIdleConnections()
}

// HTTPHeaderUserAgent is the User-Agent header we use by default
// when calling external resolution services.
const HTTPHeaderUserAgent = "geovisit/0.1.0"

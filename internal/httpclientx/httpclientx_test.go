package httpclientx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/lengocduc195/geovisit/internal/mocks"
	"github.com/lengocduc195/geovisit/internal/model"
)

// newConfig creates a config whose client returns the given response
// status and body.
func newConfig(status int, body string) *Config {
	return &Config{
		Client: &mocks.HTTPClient{
			MockDo: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: status,
					Body:       io.NopCloser(strings.NewReader(body)),
				}, nil
			},
		},
		Logger:    model.DiscardLogger,
		UserAgent: model.HTTPHeaderUserAgent,
	}
}

func TestGetJSON(t *testing.T) {
	type apiResponse struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	t.Run("with a valid response", func(t *testing.T) {
		resp, err := GetJSON[apiResponse](
			context.Background(),
			NewEndpoint("https://api.example.com/"),
			newConfig(200, `{"name": "antani", "value": 42}`),
		)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Name != "antani" || resp.Value != 42 {
			t.Fatal("unexpected response", resp)
		}
	})

	t.Run("with a non-200 status", func(t *testing.T) {
		_, err := GetJSON[apiResponse](
			context.Background(),
			NewEndpoint("https://api.example.com/"),
			newConfig(403, `{}`),
		)
		if !errors.Is(err, ErrRequestFailed) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("with a malformed body", func(t *testing.T) {
		_, err := GetJSON[apiResponse](
			context.Background(),
			NewEndpoint("https://api.example.com/"),
			newConfig(200, `{`),
		)
		if err == nil {
			t.Fatal("expected an error here")
		}
	})

	t.Run("with a transport failure", func(t *testing.T) {
		expected := errors.New("mocked error")
		config := &Config{
			Client: &mocks.HTTPClient{
				MockDo: func(req *http.Request) (*http.Response, error) {
					return nil, expected
				},
			},
			Logger:    model.DiscardLogger,
			UserAgent: model.HTTPHeaderUserAgent,
		}
		_, err := GetJSON[apiResponse](
			context.Background(), NewEndpoint("https://api.example.com/"), config)
		if !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("sets the user agent", func(t *testing.T) {
		var seen string
		config := &Config{
			Client: &mocks.HTTPClient{
				MockDo: func(req *http.Request) (*http.Response, error) {
					seen = req.Header.Get("User-Agent")
					return &http.Response{
						StatusCode: 200,
						Body:       io.NopCloser(strings.NewReader(`{}`)),
					}, nil
				},
			},
			Logger:    model.DiscardLogger,
			UserAgent: "antani/1.0",
		}
		if _, err := GetJSON[apiResponse](
			context.Background(), NewEndpoint("https://api.example.com/"), config); err != nil {
			t.Fatal(err)
		}
		if seen != "antani/1.0" {
			t.Fatal("unexpected user agent", seen)
		}
	})
}

func TestEndpoint(t *testing.T) {
	epnt := NewEndpoint("https://api.example.com/").WithHostOverride("www.example.com")
	if epnt.URL != "https://api.example.com/" {
		t.Fatal("unexpected URL")
	}
	if epnt.Host != "www.example.com" {
		t.Fatal("unexpected host")
	}
}

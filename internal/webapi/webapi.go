// Package webapi implements the first-party resolution endpoint: the
// HTTP surface the site's client-side pipeline calls to obtain a
// location estimate for the requesting network origin.
//
// The handler identifies the caller from the request itself (remote
// address and user-agent header) and replies with a `{success, data}`
// envelope whose data is a location record. There is no server-side
// coordinate probing: coordinates only exist where the host
// environment can ask the user for them.
package webapi

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/lengocduc195/geovisit/internal/device"
	"github.com/lengocduc195/geovisit/internal/iplocate"
	"github.com/lengocduc195/geovisit/internal/locate"
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
)

// Envelope is the response envelope.
type Envelope struct {
	Success bool                 `json:"success"`
	Data    model.LocationRecord `json:"data"`
}

// Handler handles requests to the first-party resolution endpoint.
//
// The zero value is invalid; fill the fields marked as MANDATORY.
type Handler struct {
	// Clock is the OPTIONAL clock to use.
	Clock model.Clock

	// IPLookup is the MANDATORY client used to enrich the caller's
	// network address with local information.
	IPLookup *iplocate.Client

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger
}

var _ http.Handler = &Handler{}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	logger := model.ValidLoggerOrDefault(h.Logger)
	clock := model.ValidClockOrDefault(h.Clock)

	collector := &device.Collector{Clock: clock}
	devicePartial := collector.Collect(req.UserAgent())

	network := optional.None[model.NetworkPartial]()
	if clientIP := clientAddr(req); clientIP != "" {
		network = optional.Some(h.IPLookup.LookupIP(req.Context(), clientIP))
	}

	record := locate.Merge(
		uuid.NewString(),
		devicePartial,
		optional.None[model.Coordinate](),
		nil,
		network,
		clock.Now(),
	)
	logger.Debugf("webapi: %s: served %s", record.ResolutionID,
		record.IP.UnwrapOr("unknown"))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Envelope{Success: true, Data: record})
}

// clientAddr extracts the client network address from the request,
// honouring the forwarding headers set by a fronting proxy.
func clientAddr(req *http.Request) string {
	if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if real := req.Header.Get("X-Real-IP"); net.ParseIP(real) != nil {
		return real
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil || net.ParseIP(host) == nil {
		return ""
	}
	return host
}

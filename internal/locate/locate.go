// Package locate implements the location resolution pipeline that
// turns an anonymous visitor into a single [model.LocationRecord].
//
// The pipeline runs its sources in a fixed sequence with fallback on
// failure: the device context collector always runs first and cannot
// fail; the coordinate probe is attempted next; when a coordinate was
// obtained the primary and then the secondary address resolver enrich
// it; the network-address location service fires only when the
// country is still unresolved after that. This ordering exists
// because address resolution needs a coordinate and because the
// network-address call should not happen on the common "coordinate
// plus good address" path.
//
// The pipeline never fails its caller: every source converts its own
// errors into "no result" and the worst-case output is a record
// carrying only device and time fields.
package locate

import (
	"context"

	"github.com/google/uuid"
	"github.com/lengocduc195/geovisit/internal/coordprobe"
	"github.com/lengocduc195/geovisit/internal/device"
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
	"github.com/lengocduc195/geovisit/internal/revgeo"
)

// NetworkResolver resolves the network-address location. It never
// fails; see the iplocate package for the concrete implementation.
type NetworkResolver interface {
	Resolve(ctx context.Context) model.NetworkPartial
}

// Resolver is the location resolution pipeline.
//
// The zero value is valid: it resolves using only the device context
// collector. Fill the optional fields to enable the other sources.
type Resolver struct {
	// Clock is the OPTIONAL clock to use.
	Clock model.Clock

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger

	// Network is the OPTIONAL network-address location service.
	Network NetworkResolver

	// Primary is the OPTIONAL primary address resolver.
	Primary revgeo.Resolver

	// Prober is the OPTIONAL coordinate prober.
	Prober *coordprobe.Prober

	// Secondary is the OPTIONAL secondary address resolver.
	Secondary revgeo.Resolver
}

// ResolveLocation resolves the location of the visitor identified by
// the given client descriptor. It always returns a well-formed record
// and never fails, including when ctx is cancelled: cancellation
// skips the remaining sources and the record contains whatever had
// been resolved up to that point.
func (r *Resolver) ResolveLocation(ctx context.Context, clientDescriptor string) model.LocationRecord {
	logger := model.ValidLoggerOrDefault(r.Logger)
	clock := model.ValidClockOrDefault(r.Clock)
	resolutionID := uuid.NewString()

	// The device context collector is pure and always succeeds.
	collector := &device.Collector{Clock: clock}
	devicePartial := collector.Collect(clientDescriptor)

	coordinate := r.probeCoordinate(ctx)
	addresses := r.resolveAddresses(ctx, resolutionID, coordinate)
	network := r.maybeResolveNetwork(ctx, resolutionID, addresses)

	record := Merge(resolutionID, devicePartial, coordinate, addresses, network, clock.Now())
	metricResolutionsCount.Inc()
	logger.Debugf("locate: %s: resolved country=%s", resolutionID,
		record.Country.UnwrapOr("Unknown"))
	return record
}

// probeCoordinate runs the coordinate probe step.
func (r *Resolver) probeCoordinate(ctx context.Context) optional.Value[model.Coordinate] {
	if r.Prober == nil || ctx.Err() != nil {
		metricSourceOutcomes.WithLabelValues("coordinate", "skipped").Inc()
		return optional.None[model.Coordinate]()
	}
	coordinate := r.Prober.Probe(ctx)
	metricSourceOutcomes.WithLabelValues(
		"coordinate", outcomeLabel(coordinate.IsSome())).Inc()
	return coordinate
}

// resolveAddresses runs the primary and then the secondary address
// resolver, collecting the partials in precedence order. Both steps
// require a coordinate and each swallows its own failure.
func (r *Resolver) resolveAddresses(
	ctx context.Context,
	resolutionID string,
	coordinate optional.Value[model.Coordinate],
) []model.AddressPartial {
	logger := model.ValidLoggerOrDefault(r.Logger)
	steps := []struct {
		name     string
		resolver revgeo.Resolver
	}{
		{"primary_address", r.Primary},
		{"secondary_address", r.Secondary},
	}
	if coordinate.IsNone() {
		for _, step := range steps {
			metricSourceOutcomes.WithLabelValues(step.name, "skipped").Inc()
		}
		return nil
	}
	coord := coordinate.Unwrap()

	var addresses []model.AddressPartial
	for _, step := range steps {
		if step.resolver == nil || ctx.Err() != nil {
			metricSourceOutcomes.WithLabelValues(step.name, "skipped").Inc()
			continue
		}
		partial, err := step.resolver.Resolve(ctx, coord)
		metricSourceOutcomes.WithLabelValues(step.name, outcomeLabel(err == nil)).Inc()
		if err != nil {
			logger.Debugf("locate: %s: %s: %s", resolutionID, step.name, err.Error())
			continue
		}
		addresses = append(addresses, partial)
	}
	return addresses
}

// maybeResolveNetwork invokes the network-address location service
// only when the country is still missing from every address partial
// collected so far.
func (r *Resolver) maybeResolveNetwork(
	ctx context.Context,
	resolutionID string,
	addresses []model.AddressPartial,
) optional.Value[model.NetworkPartial] {
	for _, addr := range addresses {
		if addr.Country.IsSome() {
			metricSourceOutcomes.WithLabelValues("network_address", "skipped").Inc()
			return optional.None[model.NetworkPartial]()
		}
	}
	if r.Network == nil || ctx.Err() != nil {
		metricSourceOutcomes.WithLabelValues("network_address", "skipped").Inc()
		return optional.None[model.NetworkPartial]()
	}
	partial := r.Network.Resolve(ctx)
	metricSourceOutcomes.WithLabelValues("network_address", "ok").Inc()
	return optional.Some(partial)
}

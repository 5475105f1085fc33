package locate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lengocduc195/geovisit/internal/coordprobe"
	"github.com/lengocduc195/geovisit/internal/mocks"
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
	"github.com/lengocduc195/geovisit/internal/testingx"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testDescriptor = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// fakeAddressResolver is a configurable address resolver recording
// how many times it was invoked.
type fakeAddressResolver struct {
	calls   atomic.Int64
	err     error
	partial model.AddressPartial
}

func (f *fakeAddressResolver) Resolve(
	ctx context.Context, coordinate model.Coordinate) (model.AddressPartial, error) {
	f.calls.Add(1)
	return f.partial, f.err
}

// fakeNetworkResolver is a configurable network resolver recording
// how many times it was invoked.
type fakeNetworkResolver struct {
	calls   atomic.Int64
	partial model.NetworkPartial
}

func (f *fakeNetworkResolver) Resolve(ctx context.Context) model.NetworkPartial {
	f.calls.Add(1)
	return f.partial
}

// workingProber returns a prober yielding a fixed coordinate.
func workingProber() *coordprobe.Prober {
	return &coordprobe.Prober{
		Source: &mocks.CoordinateSource{
			MockCurrentCoordinate: func(
				ctx context.Context, options *model.CoordinateOptions) (*model.Coordinate, error) {
				return &model.Coordinate{
					Latitude:  10.7769,
					Longitude: 106.7009,
					Accuracy:  optional.Some(25.0),
				}, nil
			},
		},
	}
}

func TestResolveLocation(t *testing.T) {

	t.Run("returns a well-formed record when every source fails", func(t *testing.T) {
		resolver := &Resolver{
			Primary:   &fakeAddressResolver{err: errors.New("mocked error")},
			Secondary: &fakeAddressResolver{err: errors.New("mocked error")},
			Prober: &coordprobe.Prober{
				Source: &mocks.CoordinateSource{
					MockCurrentCoordinate: func(
						ctx context.Context, options *model.CoordinateOptions) (*model.Coordinate, error) {
						return nil, errors.New("permission denied")
					},
				},
			},
			Network: &fakeNetworkResolver{},
		}
		record := resolver.ResolveLocation(context.Background(), testDescriptor)

		if record.LastUpdated.IsZero() {
			t.Fatal("expected a resolution timestamp")
		}
		if record.ResolutionID == "" {
			t.Fatal("expected a resolution id")
		}
		if record.Latitude.IsSome() || record.Country.IsSome() {
			t.Fatal("expected absent location fields")
		}
		// device fields survive any combination of failures
		if record.Browser.UnwrapOr("") != "Chrome" {
			t.Fatal("unexpected browser")
		}
		if record.OS.UnwrapOr("") != "Windows" {
			t.Fatal("unexpected os")
		}
		if record.Timezone.IsNone() || record.LocalTime.IsNone() {
			t.Fatal("expected time fields")
		}
	})

	t.Run("coordinates come only from the probe", func(t *testing.T) {
		primary := &fakeAddressResolver{partial: model.AddressPartial{
			Country: optional.Some("Vietnam"),
			City:    optional.Some("Ho Chi Minh City"),
		}}
		resolver := &Resolver{
			Primary: primary,
			Prober:  workingProber(),
		}
		record := resolver.ResolveLocation(context.Background(), testDescriptor)

		if record.Latitude.UnwrapOr(0) != 10.7769 {
			t.Fatal("unexpected latitude")
		}
		if record.Longitude.UnwrapOr(0) != 106.7009 {
			t.Fatal("unexpected longitude")
		}
		if record.Accuracy.UnwrapOr(0) != 25.0 {
			t.Fatal("unexpected accuracy")
		}
	})

	t.Run("the primary resolver outranks the secondary", func(t *testing.T) {
		primary := &fakeAddressResolver{partial: model.AddressPartial{
			Country: optional.Some("Vietnam"),
			City:    optional.Some("A"),
		}}
		secondary := &fakeAddressResolver{partial: model.AddressPartial{
			City:       optional.Some("B"),
			PostalCode: optional.Some("700000"),
		}}
		resolver := &Resolver{
			Primary:   primary,
			Secondary: secondary,
			Prober:    workingProber(),
		}
		record := resolver.ResolveLocation(context.Background(), testDescriptor)

		if record.City.UnwrapOr("") != "A" {
			t.Fatal("unexpected city", record.City.UnwrapOr(""))
		}
		// the secondary still fills the gaps the primary left
		if record.PostalCode.UnwrapOr("") != "700000" {
			t.Fatal("unexpected postal code")
		}
	})

	t.Run("a resolved country gates the network fallback", func(t *testing.T) {
		network := &fakeNetworkResolver{}
		resolver := &Resolver{
			Primary: &fakeAddressResolver{partial: model.AddressPartial{
				Country: optional.Some("Vietnam"),
				Region:  optional.Some("Ho Chi Minh"),
				City:    optional.Some("Ho Chi Minh City"),
			}},
			Prober:  workingProber(),
			Network: network,
		}
		resolver.ResolveLocation(context.Background(), testDescriptor)

		if network.calls.Load() != 0 {
			t.Fatal("the network fallback should not have been invoked")
		}
	})

	t.Run("a missing country triggers the network fallback", func(t *testing.T) {
		network := &fakeNetworkResolver{partial: model.NetworkPartial{
			Address: model.AddressPartial{
				Country:     optional.Some("Vietnam"),
				CountryCode: optional.Some("VN"),
			},
			IP:  optional.Some("203.0.113.7"),
			ISP: optional.Some("VNPT"),
		}}
		resolver := &Resolver{
			Primary: &fakeAddressResolver{partial: model.AddressPartial{
				City: optional.Some("Ho Chi Minh City"),
			}},
			Prober:  workingProber(),
			Network: network,
		}
		record := resolver.ResolveLocation(context.Background(), testDescriptor)

		if network.calls.Load() != 1 {
			t.Fatal("expected a single network fallback call")
		}
		if record.Country.UnwrapOr("") != "Vietnam" {
			t.Fatal("unexpected country")
		}
		// the fallback must not overwrite the city the primary found
		if record.City.UnwrapOr("") != "Ho Chi Minh City" {
			t.Fatal("unexpected city")
		}
		if record.IP.UnwrapOr("") != "203.0.113.7" {
			t.Fatal("unexpected ip")
		}
	})

	t.Run("a hanging probe times out and falls back", func(t *testing.T) {
		network := &fakeNetworkResolver{partial: model.NetworkPartial{
			Address: model.AddressPartial{Country: optional.Some("Vietnam")},
		}}
		primary := &fakeAddressResolver{}
		resolver := &Resolver{
			Primary: primary,
			Prober: &coordprobe.Prober{
				Timeout: 50 * time.Millisecond,
				Source: &mocks.CoordinateSource{
					MockCurrentCoordinate: func(
						ctx context.Context, options *model.CoordinateOptions) (*model.Coordinate, error) {
						<-ctx.Done()
						return nil, ctx.Err()
					},
				},
			},
			Network: network,
		}
		record := resolver.ResolveLocation(context.Background(), testDescriptor)

		if record.Latitude.IsSome() {
			t.Fatal("expected no coordinate")
		}
		if primary.calls.Load() != 0 {
			t.Fatal("address resolution requires a coordinate")
		}
		if network.calls.Load() != 1 {
			t.Fatal("expected the network fallback to run")
		}
		if record.Country.UnwrapOr("") != "Vietnam" {
			t.Fatal("unexpected country")
		}
	})

	t.Run("the configured clock stamps lastUpdated", func(t *testing.T) {
		zeroTime := time.Date(2024, time.January, 6, 10, 0, 0, 0, time.UTC)
		resolver := &Resolver{
			Clock: testingx.NewTimeDeterministic(zeroTime),
		}
		record := resolver.ResolveLocation(context.Background(), testDescriptor)

		// the device collector reads the clock once before the final
		// merge stamp, hence the one-second skew
		if expect := zeroTime.Add(time.Second); !record.LastUpdated.Equal(expect) {
			t.Fatal("unexpected lastUpdated", record.LastUpdated)
		}
		if record.Timezone.UnwrapOr("") != "UTC" {
			t.Fatal("unexpected timezone")
		}
	})

	t.Run("a missing coordinate records skipped address outcomes", func(t *testing.T) {
		primarySkipped := metricSourceOutcomes.WithLabelValues("primary_address", "skipped")
		secondarySkipped := metricSourceOutcomes.WithLabelValues("secondary_address", "skipped")
		primaryBefore := testutil.ToFloat64(primarySkipped)
		secondaryBefore := testutil.ToFloat64(secondarySkipped)

		primary := &fakeAddressResolver{}
		resolver := &Resolver{
			Primary:   primary,
			Secondary: &fakeAddressResolver{},
			// no prober: the coordinate step is skipped
		}
		resolver.ResolveLocation(context.Background(), testDescriptor)

		if primary.calls.Load() != 0 {
			t.Fatal("address resolution requires a coordinate")
		}
		if testutil.ToFloat64(primarySkipped) != primaryBefore+1 {
			t.Fatal("expected a skipped outcome for the primary resolver")
		}
		if testutil.ToFloat64(secondarySkipped) != secondaryBefore+1 {
			t.Fatal("expected a skipped outcome for the secondary resolver")
		}
	})

	t.Run("with a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		network := &fakeNetworkResolver{}
		resolver := &Resolver{
			Prober:  workingProber(),
			Network: network,
		}
		record := resolver.ResolveLocation(ctx, testDescriptor)

		// cancellation skips the remaining sources but the record
		// still carries the device context
		if network.calls.Load() != 0 {
			t.Fatal("expected no network call")
		}
		if record.Browser.UnwrapOr("") != "Chrome" {
			t.Fatal("unexpected browser")
		}
		if record.LastUpdated.IsZero() {
			t.Fatal("expected a resolution timestamp")
		}
	})
}

package coordprobe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lengocduc195/geovisit/internal/mocks"
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/optional"
)

func TestProber(t *testing.T) {

	t.Run("with a working source", func(t *testing.T) {
		prober := &Prober{
			Source: &mocks.CoordinateSource{
				MockCurrentCoordinate: func(
					ctx context.Context, options *model.CoordinateOptions) (*model.Coordinate, error) {
					// the probe must request a fresh, maximum accuracy fix
					if !options.HighAccuracy {
						t.Fatal("expected a high accuracy request")
					}
					if options.MaximumAge != 0 {
						t.Fatal("expected a zero maximum age")
					}
					return &model.Coordinate{
						Latitude:  10.7769,
						Longitude: 106.7009,
						Accuracy:  optional.Some(12.5),
					}, nil
				},
			},
		}
		coordinate := prober.Probe(context.Background())
		if coordinate.IsNone() {
			t.Fatal("expected a coordinate")
		}
		if coordinate.Unwrap().Latitude != 10.7769 {
			t.Fatal("unexpected latitude")
		}
	})

	t.Run("with a nil source", func(t *testing.T) {
		prober := &Prober{}
		if prober.Probe(context.Background()).IsSome() {
			t.Fatal("expected no coordinate")
		}
	})

	t.Run("with permission denied", func(t *testing.T) {
		prober := &Prober{
			Source: &mocks.CoordinateSource{
				MockCurrentCoordinate: func(
					ctx context.Context, options *model.CoordinateOptions) (*model.Coordinate, error) {
					return nil, errors.New("permission denied")
				},
			},
		}
		if prober.Probe(context.Background()).IsSome() {
			t.Fatal("expected no coordinate")
		}
	})

	t.Run("with a source that never resolves", func(t *testing.T) {
		prober := &Prober{
			Timeout: 50 * time.Millisecond,
			Source: &mocks.CoordinateSource{
				MockCurrentCoordinate: func(
					ctx context.Context, options *model.CoordinateOptions) (*model.Coordinate, error) {
					<-ctx.Done()
					return nil, ctx.Err()
				},
			},
		}
		start := time.Now()
		coordinate := prober.Probe(context.Background())
		if coordinate.IsSome() {
			t.Fatal("expected no coordinate")
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Fatal("the probe did not time out", elapsed)
		}
	})

	t.Run("with a source returning nil without error", func(t *testing.T) {
		prober := &Prober{
			Source: &mocks.CoordinateSource{
				MockCurrentCoordinate: func(
					ctx context.Context, options *model.CoordinateOptions) (*model.Coordinate, error) {
					return nil, nil
				},
			},
		}
		if prober.Probe(context.Background()).IsSome() {
			t.Fatal("expected no coordinate")
		}
	})
}

package mocks

import (
	"context"

	"github.com/lengocduc195/geovisit/internal/model"
)

// CoordinateSource is a mockable coordinate source.
type CoordinateSource struct {
	MockCurrentCoordinate func(
		ctx context.Context, options *model.CoordinateOptions) (*model.Coordinate, error)
}

// CurrentCoordinate calls MockCurrentCoordinate.
func (s *CoordinateSource) CurrentCoordinate(
	ctx context.Context, options *model.CoordinateOptions) (*model.Coordinate, error) {
	return s.MockCurrentCoordinate(ctx, options)
}

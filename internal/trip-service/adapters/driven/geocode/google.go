package geocode

import (
	"context"
	"fmt"

	"trackmate/internal/maps"
	"trackmate/internal/trip-service/core/domain/dto"
	"trackmate/internal/trip-service/core/myerrors"
)

type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(client *maps.Client) *GoogleGeocoder {
	return &GoogleGeocoder{client: client}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	loc, err := g.client.Geocode(ctx, address)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", myerrors.ErrDependency, err)
	}
	return loc.Lat, loc.Lng, nil
}

func (g *GoogleGeocoder) Route(ctx context.Context, originLat, originLng, destLat, destLng float64) (dto.RouteDto, error) {
	route, err := g.client.Directions(ctx,
		maps.LatLng{Lat: originLat, Lng: originLng},
		maps.LatLng{Lat: destLat, Lng: destLng},
	)
	if err != nil {
		return dto.RouteDto{}, fmt.Errorf("%w: %v", myerrors.ErrDependency, err)
	}

	path := make([]dto.PointDto, 0, len(route.Path))
	for _, p := range route.Path {
		path = append(path, dto.PointDto{Lat: p.Lat, Lng: p.Lng})
	}
	return dto.RouteDto{
		Path:         path,
		DistanceText: route.DistanceText,
		DurationText: route.DurationText,
	}, nil
}

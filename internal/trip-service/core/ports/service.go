package ports

import (
	"context"

	"trackmate/internal/trip-service/core/domain/dto"
)

type ITripService interface {
	CreateTrip(ctx context.Context, creatorId string, req dto.CreateTripRequest) (dto.TripDto, error)
	ListTrips(ctx context.Context, userId string) ([]dto.TripSummaryDto, error)
	GetTrip(ctx context.Context, tripId string) (dto.TripDto, error)
	UpdateDestination(ctx context.Context, tripId, userId string, req dto.UpdateTripRequest) (dto.TripDto, error)
	DeleteTrip(ctx context.Context, tripId, userId string) error
}

type IInvitationService interface {
	GetInvitation(ctx context.Context, participantId string) (dto.InvitationDto, error)
	Respond(ctx context.Context, participantId, userId string, req dto.InvitationActionRequest) (dto.InvitationDto, error)
}

type IGeocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

type IRouter interface {
	Route(ctx context.Context, originLat, originLng, destLat, destLng float64) (dto.RouteDto, error)
}

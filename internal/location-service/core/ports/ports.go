package ports

import (
	"context"

	"trackmate/internal/location-service/core/domain/dto"
	"trackmate/internal/location-service/core/domain/model"
)

type ILocationRepo interface {
	GetParticipant(ctx context.Context, participantId string) (model.Participant, error)
	GetTrip(ctx context.Context, tripId string) (model.Trip, error)
	// GetMembership returns the caller's participant row for the trip, or
	// myerrors.ErrForbidden when the user is not a participant of any status.
	GetMembership(ctx context.Context, tripId, userId string) (model.Participant, error)
	InsertSample(ctx context.Context, sample model.LocationSample) (model.LocationSample, error)
	LatestSample(ctx context.Context, participantId string) (*model.LocationSample, error)
	// LatestByTrip returns every ACCEPTED participant of the trip with its
	// most recent sample (nil when the participant never reported), ordered
	// by participant id.
	LatestByTrip(ctx context.Context, tripId string) ([]model.Participant, map[string]*model.LocationSample, error)
}

type ILocationService interface {
	Record(ctx context.Context, userId, participantId string, req dto.RecordLocationRequest) (dto.RecordLocationResponse, error)
	ParticipantLocation(ctx context.Context, userId, participantId string) (dto.ParticipantDto, error)
	TripLocations(ctx context.Context, userId, tripId string) (dto.TripLocationsDto, error)
}

// ILocationStream fans accepted samples out to live subscribers. The polling
// endpoint stays the primary propagation path; the stream is best-effort.
type ILocationStream interface {
	Broadcast(tripId string, location dto.ParticipantLocationDto)
}

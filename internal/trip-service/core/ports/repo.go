package ports

import (
	"context"

	"trackmate/internal/trip-service/core/domain/model"
)

type ITripsRepo interface {
	// CreateTrip inserts the trip together with the creator's auto-accepted
	// participant row in one transaction, returning the trip id.
	CreateTrip(ctx context.Context, destination, creatorId string) (string, error)
	GetTrip(ctx context.Context, tripId string) (model.Trip, model.UserInfo, error)
	ListTripsForUser(ctx context.Context, userId string) ([]model.Trip, []string, error)
	UpdateDestination(ctx context.Context, tripId, destination string) error
	DeleteTrip(ctx context.Context, tripId string) error
}

type IParticipantsRepo interface {
	CreateParticipant(ctx context.Context, tripId, userId, status string) (string, error)
	GetParticipant(ctx context.Context, participantId string) (model.Participant, error)
	ListByTrip(ctx context.Context, tripId string) ([]model.Participant, error)
	UpdateStatus(ctx context.Context, participantId, status string) error
	GetUserByEmail(ctx context.Context, email string) (model.UserInfo, bool, error)
}

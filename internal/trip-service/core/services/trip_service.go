package services

import (
	"context"
	"fmt"
	"strings"

	"trackmate/internal/mylogger"
	"trackmate/internal/trip-service/core/domain/dto"
	messagebrokerdto "trackmate/internal/trip-service/core/domain/message_broker_dto"
	"trackmate/internal/trip-service/core/domain/model"
	"trackmate/internal/trip-service/core/myerrors"
	"trackmate/internal/trip-service/core/ports"

	"github.com/go-playground/validator/v10"
)

type TripService struct {
	ctx              context.Context
	mylog            mylogger.Logger
	tripsRepo        ports.ITripsRepo
	participantsRepo ports.IParticipantsRepo
	broker           ports.IInviteBroker
	validate         *validator.Validate
}

func NewTripService(
	ctx context.Context,
	mylog mylogger.Logger,
	tripsRepo ports.ITripsRepo,
	participantsRepo ports.IParticipantsRepo,
	broker ports.IInviteBroker,
) *TripService {
	return &TripService{
		ctx:              ctx,
		mylog:            mylog,
		tripsRepo:        tripsRepo,
		participantsRepo: participantsRepo,
		broker:           broker,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateTrip creates the trip, auto-accepts the creator and invites every
// registered friend email with a PENDING participant plus a queued invite
// email. Unknown emails are skipped with a log.
func (ts *TripService) CreateTrip(ctx context.Context, creatorId string, req dto.CreateTripRequest) (dto.TripDto, error) {
	mylog := ts.mylog.Action("CreateTrip")

	if err := ts.validate.Struct(req); err != nil {
		return dto.TripDto{}, fmt.Errorf("%w: %v", myerrors.ErrValidation, err)
	}

	tripId, err := ts.tripsRepo.CreateTrip(ctx, req.Destination, creatorId)
	if err != nil {
		mylog.Error("Failed to create trip", err)
		return dto.TripDto{}, fmt.Errorf("cannot create trip: %w", err)
	}

	for _, email := range req.FriendEmails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}

		invited, found, err := ts.participantsRepo.GetUserByEmail(ctx, email)
		if err != nil {
			mylog.Error("Failed to look up invited user", err, "email", email)
			continue
		}
		if !found {
			// Invitations only work for registered users.
			mylog.Warn("Invited user not registered, skipping", "email", email)
			continue
		}

		participantId, err := ts.participantsRepo.CreateParticipant(ctx, tripId, invited.UserId, model.StatusPending)
		if err != nil {
			mylog.Error("Failed to create participant", err, "email", email)
			continue
		}

		msg := messagebrokerdto.InviteEmail{
			RecipientEmail: invited.Email,
			RecipientName:  invited.Name,
			TripId:         tripId,
			Destination:    req.Destination,
			ParticipantId:  participantId,
		}
		if err := ts.broker.PublishInviteEmail(ctx, msg); err != nil {
			// Delivery is best effort; the participant row already exists.
			mylog.Error("Failed to queue invite email", err, "email", email)
		}
	}

	trip, err := ts.GetTrip(ctx, tripId)
	if err != nil {
		return dto.TripDto{}, err
	}

	mylog.Info("Trip created and invitations queued", "trip_id", tripId)
	return trip, nil
}

func (ts *TripService) ListTrips(ctx context.Context, userId string) ([]dto.TripSummaryDto, error) {
	trips, statuses, err := ts.tripsRepo.ListTripsForUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TripSummaryDto, 0, len(trips))
	for i, t := range trips {
		out = append(out, dto.TripSummaryDto{
			Id:          t.TripId,
			Destination: t.Destination,
			CreatedAt:   t.CreatedAt,
			Status:      statuses[i],
		})
	}
	return out, nil
}

func (ts *TripService) GetTrip(ctx context.Context, tripId string) (dto.TripDto, error) {
	trip, creator, err := ts.tripsRepo.GetTrip(ctx, tripId)
	if err != nil {
		return dto.TripDto{}, err
	}

	participants, err := ts.participantsRepo.ListByTrip(ctx, tripId)
	if err != nil {
		return dto.TripDto{}, err
	}

	out := dto.TripDto{
		Id:          trip.TripId,
		Destination: trip.Destination,
		CreatedAt:   trip.CreatedAt,
		Creator: dto.UserDto{
			Id:    creator.UserId,
			Name:  creator.Name,
			Email: creator.Email,
		},
	}

	for _, p := range participants {
		pd := dto.ParticipantDto{
			Id:     p.ParticipantId,
			Status: p.Status,
			User: dto.UserDto{
				Id:    p.User.UserId,
				Name:  p.User.Name,
				Email: p.User.Email,
			},
		}
		out.Participants = append(out.Participants, pd)

		switch p.Status {
		case model.StatusAccepted:
			out.ParticipantsByStatus.Accepted = append(out.ParticipantsByStatus.Accepted, pd)
			out.Stats.Accepted++
		case model.StatusPending:
			out.ParticipantsByStatus.Pending = append(out.ParticipantsByStatus.Pending, pd)
			out.Stats.Pending++
		case model.StatusRejected:
			out.ParticipantsByStatus.Rejected = append(out.ParticipantsByStatus.Rejected, pd)
			out.Stats.Rejected++
		}
	}
	out.Stats.Total = len(participants)

	return out, nil
}

// UpdateDestination is restricted to the trip creator.
func (ts *TripService) UpdateDestination(ctx context.Context, tripId, userId string, req dto.UpdateTripRequest) (dto.TripDto, error) {
	if err := ts.validate.Struct(req); err != nil {
		return dto.TripDto{}, fmt.Errorf("%w: %v", myerrors.ErrValidation, err)
	}

	trip, _, err := ts.tripsRepo.GetTrip(ctx, tripId)
	if err != nil {
		return dto.TripDto{}, err
	}
	if trip.CreatorId != userId {
		return dto.TripDto{}, fmt.Errorf("%w: only the trip creator can update this trip", myerrors.ErrForbidden)
	}

	if err := ts.tripsRepo.UpdateDestination(ctx, tripId, req.Destination); err != nil {
		return dto.TripDto{}, err
	}

	return ts.GetTrip(ctx, tripId)
}

// DeleteTrip is restricted to the trip creator. Participants go first, then
// the trip itself.
func (ts *TripService) DeleteTrip(ctx context.Context, tripId, userId string) error {
	trip, _, err := ts.tripsRepo.GetTrip(ctx, tripId)
	if err != nil {
		return err
	}
	if trip.CreatorId != userId {
		return fmt.Errorf("%w: only the trip creator can delete this trip", myerrors.ErrForbidden)
	}

	return ts.tripsRepo.DeleteTrip(ctx, tripId)
}

package services

import (
	"context"
	"fmt"

	"trackmate/internal/mylogger"
	"trackmate/internal/trip-service/core/domain/dto"
	"trackmate/internal/trip-service/core/domain/model"
	"trackmate/internal/trip-service/core/myerrors"
	"trackmate/internal/trip-service/core/ports"

	"github.com/go-playground/validator/v10"
)

type InvitationService struct {
	ctx              context.Context
	mylog            mylogger.Logger
	tripsRepo        ports.ITripsRepo
	participantsRepo ports.IParticipantsRepo
	validate         *validator.Validate
}

func NewInvitationService(
	ctx context.Context,
	mylog mylogger.Logger,
	tripsRepo ports.ITripsRepo,
	participantsRepo ports.IParticipantsRepo,
) *InvitationService {
	return &InvitationService{
		ctx:              ctx,
		mylog:            mylog,
		tripsRepo:        tripsRepo,
		participantsRepo: participantsRepo,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
	}
}

// GetInvitation loads a still-open invitation for the invite landing page.
// A decided invitation is no longer viewable: the page exists to collect the
// one allowed response.
func (is *InvitationService) GetInvitation(ctx context.Context, participantId string) (dto.InvitationDto, error) {
	participant, err := is.participantsRepo.GetParticipant(ctx, participantId)
	if err != nil {
		return dto.InvitationDto{}, err
	}

	if participant.Status != model.StatusPending {
		return dto.InvitationDto{}, myerrors.ErrAlreadyDecided
	}

	trip, creator, err := is.tripsRepo.GetTrip(ctx, participant.TripId)
	if err != nil {
		return dto.InvitationDto{}, err
	}

	return dto.InvitationDto{
		Id:          participant.ParticipantId,
		Status:      participant.Status,
		TripId:      trip.TripId,
		Destination: trip.Destination,
		Creator:     dto.UserDto{Id: creator.UserId, Name: creator.Name, Email: creator.Email},
		User:        dto.UserDto{Id: participant.User.UserId, Name: participant.User.Name, Email: participant.User.Email},
	}, nil
}

// Respond applies the single allowed PENDING -> ACCEPTED/REJECTED transition.
// Only the invited user may decide, and only once.
func (is *InvitationService) Respond(ctx context.Context, participantId, userId string, req dto.InvitationActionRequest) (dto.InvitationDto, error) {
	mylog := is.mylog.Action("RespondInvitation")

	if err := is.validate.Struct(req); err != nil {
		return dto.InvitationDto{}, fmt.Errorf("%w: %v", myerrors.ErrValidation, err)
	}

	participant, err := is.participantsRepo.GetParticipant(ctx, participantId)
	if err != nil {
		return dto.InvitationDto{}, err
	}

	if participant.UserId != userId {
		return dto.InvitationDto{}, fmt.Errorf("%w: invitation belongs to another user", myerrors.ErrForbidden)
	}

	if participant.Status != model.StatusPending {
		return dto.InvitationDto{}, myerrors.ErrAlreadyDecided
	}

	newStatus := model.StatusAccepted
	if req.Action == "REJECT" {
		newStatus = model.StatusRejected
	}

	if err := is.participantsRepo.UpdateStatus(ctx, participantId, newStatus); err != nil {
		mylog.Error("Failed to update invitation status", err, "participant_id", participantId)
		return dto.InvitationDto{}, err
	}

	mylog.Info("Invitation decided", "participant_id", participantId, "status", newStatus)
	return is.GetInvitation(ctx, participantId)
}

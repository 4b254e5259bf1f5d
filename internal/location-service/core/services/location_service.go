package services

import (
	"context"
	"fmt"
	"time"

	"trackmate/internal/location-service/core/domain/dto"
	"trackmate/internal/location-service/core/domain/model"
	"trackmate/internal/location-service/core/myerrors"
	"trackmate/internal/location-service/core/ports"
	"trackmate/internal/mylogger"

	"github.com/go-playground/validator/v10"
)

type LocationService struct {
	ctx      context.Context
	mylog    mylogger.Logger
	repo     ports.ILocationRepo
	stream   ports.ILocationStream
	validate *validator.Validate
}

func NewLocationService(
	ctx context.Context,
	mylog mylogger.Logger,
	repo ports.ILocationRepo,
	stream ports.ILocationStream,
) *LocationService {
	return &LocationService{
		ctx:      ctx,
		mylog:    mylog,
		repo:     repo,
		stream:   stream,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Record appends one position report for the participant. Every accepted
// report becomes a new row: no deduplication, no rate limiting. Writers never
// contend because rows are immutable and independent.
func (ls *LocationService) Record(ctx context.Context, userId, participantId string, req dto.RecordLocationRequest) (dto.RecordLocationResponse, error) {
	if userId == "" {
		return dto.RecordLocationResponse{}, myerrors.ErrUnauthenticated
	}
	if err := ls.validate.Struct(req); err != nil {
		return dto.RecordLocationResponse{}, fmt.Errorf("%w: %v", myerrors.ErrValidation, err)
	}

	participant, err := ls.repo.GetParticipant(ctx, participantId)
	if err != nil {
		return dto.RecordLocationResponse{}, err
	}
	if participant.UserId != userId {
		return dto.RecordLocationResponse{}, fmt.Errorf("%w: location can only be reported for your own participant record", myerrors.ErrForbidden)
	}

	sample, err := ls.repo.InsertSample(ctx, model.LocationSample{
		ParticipantId: participantId,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		Accuracy:      req.Accuracy,
		Heading:       req.Heading,
		Speed:         req.Speed,
		CapturedAt:    time.Now().UTC(),
	})
	if err != nil {
		return dto.RecordLocationResponse{}, err
	}

	location := toLocationDto(sample)
	if ls.stream != nil {
		ls.stream.Broadcast(participant.TripId, dto.ParticipantLocationDto{
			ParticipantId:  participant.ParticipantId,
			UserId:         participant.UserId,
			UserName:       participant.UserName,
			UserEmail:      participant.UserEmail,
			LatestLocation: &location,
		})
	}

	return dto.RecordLocationResponse{Success: true, Location: location}, nil
}

// ParticipantLocation returns one participant with its most recent sample.
// Visibility is gated on trip membership, any invitation status.
func (ls *LocationService) ParticipantLocation(ctx context.Context, userId, participantId string) (dto.ParticipantDto, error) {
	if userId == "" {
		return dto.ParticipantDto{}, myerrors.ErrUnauthenticated
	}

	participant, err := ls.repo.GetParticipant(ctx, participantId)
	if err != nil {
		return dto.ParticipantDto{}, err
	}
	if participant.UserId != userId {
		if _, err := ls.repo.GetMembership(ctx, participant.TripId, userId); err != nil {
			return dto.ParticipantDto{}, err
		}
	}

	latest, err := ls.repo.LatestSample(ctx, participantId)
	if err != nil {
		return dto.ParticipantDto{}, err
	}

	result := dto.ParticipantDto{
		ParticipantId: participant.ParticipantId,
		TripId:        participant.TripId,
		UserId:        participant.UserId,
		Status:        participant.Status,
	}
	if latest != nil {
		location := toLocationDto(*latest)
		result.LatestLocation = &location
	}
	return result, nil
}

// TripLocations returns the latest known position of every ACCEPTED
// participant of the trip. Participants who never reported appear with a
// null latestLocation so the caller can still list them.
func (ls *LocationService) TripLocations(ctx context.Context, userId, tripId string) (dto.TripLocationsDto, error) {
	if userId == "" {
		return dto.TripLocationsDto{}, myerrors.ErrUnauthenticated
	}

	trip, err := ls.repo.GetTrip(ctx, tripId)
	if err != nil {
		return dto.TripLocationsDto{}, err
	}
	if _, err := ls.repo.GetMembership(ctx, tripId, userId); err != nil {
		return dto.TripLocationsDto{}, err
	}

	participants, latest, err := ls.repo.LatestByTrip(ctx, tripId)
	if err != nil {
		return dto.TripLocationsDto{}, err
	}

	result := dto.TripLocationsDto{
		TripId:               trip.TripId,
		Destination:          trip.Destination,
		ParticipantLocations: make([]dto.ParticipantLocationDto, 0, len(participants)),
	}
	for _, p := range participants {
		pl := dto.ParticipantLocationDto{
			ParticipantId: p.ParticipantId,
			UserId:        p.UserId,
			UserName:      p.UserName,
			UserEmail:     p.UserEmail,
		}
		if sample := latest[p.ParticipantId]; sample != nil {
			location := toLocationDto(*sample)
			pl.LatestLocation = &location
		}
		result.ParticipantLocations = append(result.ParticipantLocations, pl)
	}
	return result, nil
}

func toLocationDto(sample model.LocationSample) dto.LocationDto {
	return dto.LocationDto{
		Id:            sample.SampleId,
		ParticipantId: sample.ParticipantId,
		Latitude:      sample.Latitude,
		Longitude:     sample.Longitude,
		Accuracy:      sample.Accuracy,
		Heading:       sample.Heading,
		Speed:         sample.Speed,
		CapturedAt:    sample.CapturedAt,
	}
}

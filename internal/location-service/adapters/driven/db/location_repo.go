package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trackmate/internal/location-service/core/domain/model"
	"trackmate/internal/location-service/core/myerrors"
	"trackmate/internal/location-service/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LocationRepo struct {
	db *DB
}

func NewLocationRepo(db *DB) ports.ILocationRepo {
	return &LocationRepo{db: db}
}

func (lr *LocationRepo) GetParticipant(ctx context.Context, participantId string) (model.Participant, error) {
	q := `
	SELECT
		p.participant_id,
		p.trip_id,
		p.user_id,
		p.status,
		u.name,
		u.email
	FROM
		participants p
	JOIN users u ON u.user_id = p.user_id
	WHERE
		p.participant_id = $1
	`

	var p model.Participant
	err := lr.db.Pool().QueryRow(ctx, q, participantId).Scan(
		&p.ParticipantId,
		&p.TripId,
		&p.UserId,
		&p.Status,
		&p.UserName,
		&p.UserEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Participant{}, myerrors.ErrParticipantNotFound
		}
		return model.Participant{}, err
	}
	return p, nil
}

func (lr *LocationRepo) GetTrip(ctx context.Context, tripId string) (model.Trip, error) {
	q := `SELECT trip_id, destination, creator_id FROM trips WHERE trip_id = $1`

	var t model.Trip
	err := lr.db.Pool().QueryRow(ctx, q, tripId).Scan(&t.TripId, &t.Destination, &t.CreatorId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Trip{}, myerrors.ErrTripNotFound
		}
		return model.Trip{}, err
	}
	return t, nil
}

func (lr *LocationRepo) GetMembership(ctx context.Context, tripId, userId string) (model.Participant, error) {
	q := `
	SELECT
		p.participant_id,
		p.trip_id,
		p.user_id,
		p.status,
		u.name,
		u.email
	FROM
		participants p
	JOIN users u ON u.user_id = p.user_id
	WHERE
		p.trip_id = $1 AND p.user_id = $2
	`

	var p model.Participant
	err := lr.db.Pool().QueryRow(ctx, q, tripId, userId).Scan(
		&p.ParticipantId,
		&p.TripId,
		&p.UserId,
		&p.Status,
		&p.UserName,
		&p.UserEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Participant{}, fmt.Errorf("%w: not a participant of this trip", myerrors.ErrForbidden)
		}
		return model.Participant{}, err
	}
	return p, nil
}

func (lr *LocationRepo) InsertSample(ctx context.Context, sample model.LocationSample) (model.LocationSample, error) {
	q := `
	INSERT INTO location_samples(sample_id, participant_id, latitude, longitude, accuracy_meters, heading_degrees, speed_kmh, captured_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING sample_id, captured_at
	`

	sample.SampleId = uuid.NewString()
	err := lr.db.Pool().QueryRow(ctx, q,
		sample.SampleId,
		sample.ParticipantId,
		sample.Latitude,
		sample.Longitude,
		sample.Accuracy,
		sample.Heading,
		sample.Speed,
		sample.CapturedAt,
	).Scan(&sample.SampleId, &sample.CapturedAt)
	if err != nil {
		return model.LocationSample{}, err
	}
	return sample, nil
}

func (lr *LocationRepo) LatestSample(ctx context.Context, participantId string) (*model.LocationSample, error) {
	q := `
	SELECT sample_id, participant_id, latitude, longitude, accuracy_meters, heading_degrees, speed_kmh, captured_at
	FROM location_samples
	WHERE participant_id = $1
	ORDER BY captured_at DESC
	LIMIT 1
	`

	var s model.LocationSample
	err := lr.db.Pool().QueryRow(ctx, q, participantId).Scan(
		&s.SampleId,
		&s.ParticipantId,
		&s.Latitude,
		&s.Longitude,
		&s.Accuracy,
		&s.Heading,
		&s.Speed,
		&s.CapturedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// LatestByTrip selects the top-1 latest sample per ACCEPTED participant with
// a LATERAL join, so the database does the per-group scan, not the caller.
func (lr *LocationRepo) LatestByTrip(ctx context.Context, tripId string) ([]model.Participant, map[string]*model.LocationSample, error) {
	q := `
	SELECT
		p.participant_id,
		p.trip_id,
		p.user_id,
		p.status,
		u.name,
		u.email,
		ls.sample_id,
		ls.latitude,
		ls.longitude,
		ls.accuracy_meters,
		ls.heading_degrees,
		ls.speed_kmh,
		ls.captured_at
	FROM participants p
	JOIN users u ON u.user_id = p.user_id
	LEFT JOIN LATERAL (
		SELECT sample_id, latitude, longitude, accuracy_meters, heading_degrees, speed_kmh, captured_at
		FROM location_samples
		WHERE participant_id = p.participant_id
		ORDER BY captured_at DESC
		LIMIT 1
	) ls ON true
	WHERE p.trip_id = $1 AND p.status = 'ACCEPTED'
	ORDER BY p.participant_id
	`

	rows, err := lr.db.Pool().Query(ctx, q, tripId)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var participants []model.Participant
	latest := make(map[string]*model.LocationSample)
	for rows.Next() {
		var p model.Participant
		var sampleId *string
		var lat, lng *float64
		var accuracy, heading, speed *float64
		var capturedAt *time.Time
		if err := rows.Scan(
			&p.ParticipantId,
			&p.TripId,
			&p.UserId,
			&p.Status,
			&p.UserName,
			&p.UserEmail,
			&sampleId,
			&lat,
			&lng,
			&accuracy,
			&heading,
			&speed,
			&capturedAt,
		); err != nil {
			return nil, nil, err
		}
		participants = append(participants, p)
		if sampleId != nil {
			latest[p.ParticipantId] = &model.LocationSample{
				SampleId:      *sampleId,
				ParticipantId: p.ParticipantId,
				Latitude:      *lat,
				Longitude:     *lng,
				Accuracy:      accuracy,
				Heading:       heading,
				Speed:         speed,
				CapturedAt:    *capturedAt,
			}
		}
	}
	return participants, latest, rows.Err()
}

package db

import (
	"context"
	"errors"
	"fmt"

	"trackmate/internal/trip-service/core/domain/model"
	"trackmate/internal/trip-service/core/myerrors"
	"trackmate/internal/trip-service/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TripsRepo struct {
	db *DB
}

func NewTripsRepo(db *DB) ports.ITripsRepo {
	return &TripsRepo{db: db}
}

func (tr *TripsRepo) CreateTrip(ctx context.Context, destination, creatorId string) (string, error) {
	conn := tr.db.Pool()
	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	q1 := `INSERT INTO trips(trip_id, destination, creator_id) VALUES ($1, $2, $3) RETURNING trip_id`

	tripId := ""
	row := tx.QueryRow(ctx, q1, uuid.NewString(), destination, creatorId)
	if err := row.Scan(&tripId); err != nil {
		return "", fmt.Errorf("failed to insert trip: %w", err)
	}

	// The creator joins their own trip accepted from the start.
	q2 := `INSERT INTO participants(participant_id, trip_id, user_id, status) VALUES ($1, $2, $3, 'ACCEPTED')`

	if _, err := tx.Exec(ctx, q2, uuid.NewString(), tripId, creatorId); err != nil {
		return "", fmt.Errorf("failed to insert creator participant: %w", err)
	}

	return tripId, tx.Commit(ctx)
}

func (tr *TripsRepo) GetTrip(ctx context.Context, tripId string) (model.Trip, model.UserInfo, error) {
	q := `
	SELECT
		t.trip_id,
		t.destination,
		t.creator_id,
		t.created_at,
		u.name,
		u.email
	FROM
		trips t
	JOIN users u ON u.user_id = t.creator_id
	WHERE
		t.trip_id = $1
	`

	var (
		trip    model.Trip
		creator model.UserInfo
	)
	err := tr.db.Pool().QueryRow(ctx, q, tripId).Scan(
		&trip.TripId,
		&trip.Destination,
		&trip.CreatorId,
		&trip.CreatedAt,
		&creator.Name,
		&creator.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Trip{}, model.UserInfo{}, myerrors.ErrTripNotFound
		}
		return model.Trip{}, model.UserInfo{}, err
	}
	creator.UserId = trip.CreatorId

	return trip, creator, nil
}

func (tr *TripsRepo) ListTripsForUser(ctx context.Context, userId string) ([]model.Trip, []string, error) {
	q := `
	SELECT
		t.trip_id,
		t.destination,
		t.creator_id,
		t.created_at,
		p.status
	FROM
		trips t
	JOIN participants p ON p.trip_id = t.trip_id
	WHERE
		p.user_id = $1
	ORDER BY t.created_at DESC
	`

	rows, err := tr.db.Pool().Query(ctx, q, userId)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var (
		trips    []model.Trip
		statuses []string
	)
	for rows.Next() {
		var (
			t      model.Trip
			status string
		)
		if err := rows.Scan(&t.TripId, &t.Destination, &t.CreatorId, &t.CreatedAt, &status); err != nil {
			return nil, nil, err
		}
		trips = append(trips, t)
		statuses = append(statuses, status)
	}
	return trips, statuses, rows.Err()
}

func (tr *TripsRepo) UpdateDestination(ctx context.Context, tripId, destination string) error {
	q := `UPDATE trips SET destination = $2 WHERE trip_id = $1`

	tag, err := tr.db.Pool().Exec(ctx, q, tripId, destination)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrTripNotFound
	}
	return nil
}

func (tr *TripsRepo) DeleteTrip(ctx context.Context, tripId string) error {
	conn := tr.db.Pool()
	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	// Location samples hang off participants, so they go first.
	if _, err := tx.Exec(ctx, `DELETE FROM location_samples WHERE participant_id IN (SELECT participant_id FROM participants WHERE trip_id = $1)`, tripId); err != nil {
		return fmt.Errorf("failed to delete location samples: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM participants WHERE trip_id = $1`, tripId); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM trips WHERE trip_id = $1`, tripId)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrTripNotFound
	}

	return tx.Commit(ctx)
}

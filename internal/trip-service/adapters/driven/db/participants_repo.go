package db

import (
	"context"
	"errors"

	"trackmate/internal/trip-service/core/domain/model"
	"trackmate/internal/trip-service/core/myerrors"
	"trackmate/internal/trip-service/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ParticipantsRepo struct {
	db *DB
}

func NewParticipantsRepo(db *DB) ports.IParticipantsRepo {
	return &ParticipantsRepo{db: db}
}

func (pr *ParticipantsRepo) CreateParticipant(ctx context.Context, tripId, userId, status string) (string, error) {
	q := `INSERT INTO participants(participant_id, trip_id, user_id, status) VALUES ($1, $2, $3, $4) RETURNING participant_id`

	participantId := ""
	row := pr.db.Pool().QueryRow(ctx, q, uuid.NewString(), tripId, userId, status)
	if err := row.Scan(&participantId); err != nil {
		return "", err
	}
	return participantId, nil
}

func (pr *ParticipantsRepo) GetParticipant(ctx context.Context, participantId string) (model.Participant, error) {
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
	err := pr.db.Pool().QueryRow(ctx, q, participantId).Scan(
		&p.ParticipantId,
		&p.TripId,
		&p.UserId,
		&p.Status,
		&p.User.Name,
		&p.User.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Participant{}, myerrors.ErrInviteNotFound
		}
		return model.Participant{}, err
	}
	p.User.UserId = p.UserId

	return p, nil
}

func (pr *ParticipantsRepo) ListByTrip(ctx context.Context, tripId string) ([]model.Participant, error) {
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
		p.trip_id = $1
	ORDER BY p.status, p.participant_id
	`

	rows, err := pr.db.Pool().Query(ctx, q, tripId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(
			&p.ParticipantId,
			&p.TripId,
			&p.UserId,
			&p.Status,
			&p.User.Name,
			&p.User.Email,
		); err != nil {
			return nil, err
		}
		p.User.UserId = p.UserId
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// UpdateStatus only moves rows still PENDING; the transition is terminal.
func (pr *ParticipantsRepo) UpdateStatus(ctx context.Context, participantId, status string) error {
	q := `UPDATE participants SET status = $2 WHERE participant_id = $1 AND status = 'PENDING'`

	tag, err := pr.db.Pool().Exec(ctx, q, participantId, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrAlreadyDecided
	}
	return nil
}

func (pr *ParticipantsRepo) GetUserByEmail(ctx context.Context, email string) (model.UserInfo, bool, error) {
	q := `SELECT user_id, name, email FROM users WHERE email = $1`

	var u model.UserInfo
	err := pr.db.Pool().QueryRow(ctx, q, email).Scan(&u.UserId, &u.Name, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserInfo{}, false, nil
		}
		return model.UserInfo{}, false, err
	}
	return u, true, nil
}

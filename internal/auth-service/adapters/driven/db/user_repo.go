package db

import (
	"context"
	"errors"
	"fmt"

	"trackmate/internal/auth-service/core/domain/models"
	"trackmate/internal/auth-service/core/myerrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type AuthRepo struct {
	db *DB
}

func NewAuthRepo(db *DB) *AuthRepo {
	return &AuthRepo{db: db}
}

func (ar *AuthRepo) Create(ctx context.Context, user models.User) (string, error) {
	q := `INSERT INTO users (user_id, name, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING user_id`

	id := ""
	row := ar.db.Pool().QueryRow(ctx, q, uuid.NewString(), user.Name, user.Email, user.PasswordHash)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", myerrors.ErrEmailRegistered
		}
		return "", fmt.Errorf("failed to insert user: %v", err)
	}

	return id, nil
}

func (ar *AuthRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	q := `
		SELECT
			u.user_id,
			u.name,
			u.email,
			u.password_hash,
			u.created_at
		FROM
			users u
		WHERE
			u.email = $1
	`

	var u models.User
	err := ar.db.Pool().QueryRow(ctx, q, email).Scan(
		&u.UserId,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, myerrors.ErrUnknownEmail
		}
		return models.User{}, err
	}

	return u, nil
}

func (ar *AuthRepo) GetById(ctx context.Context, userId string) (models.User, error) {
	q := `
		SELECT
			u.user_id,
			u.name,
			u.email,
			u.password_hash,
			u.created_at
		FROM
			users u
		WHERE
			u.user_id = $1
	`

	var u models.User
	err := ar.db.Pool().QueryRow(ctx, q, userId).Scan(
		&u.UserId,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, myerrors.ErrUnknownUser
		}
		return models.User{}, err
	}

	return u, nil
}

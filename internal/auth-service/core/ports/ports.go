package ports

import (
	"context"

	"trackmate/internal/auth-service/core/domain/dto"
	"trackmate/internal/auth-service/core/domain/models"
)

type IAuthRepo interface {
	Create(ctx context.Context, user models.User) (string, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetById(ctx context.Context, userId string) (models.User, error)
}

type IAuthService interface {
	Register(ctx context.Context, regReq dto.UserRegistrationRequest) (dto.UserResponse, error)
	Login(ctx context.Context, authReq dto.UserAuthRequest) (dto.UserResponse, string, error)
	CurrentUser(ctx context.Context, userId string) (dto.UserResponse, error)
}

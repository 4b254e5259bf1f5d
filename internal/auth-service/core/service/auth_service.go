package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trackmate/internal/auth-service/core/domain/dto"
	"trackmate/internal/auth-service/core/domain/models"
	"trackmate/internal/auth-service/core/myerrors"
	"trackmate/internal/auth-service/core/ports"
	"trackmate/internal/config"
	"trackmate/internal/mylogger"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt"
)

const TokenTTL = 48 * time.Hour

type AuthService struct {
	ctx      context.Context
	cfg      *config.Config
	authRepo ports.IAuthRepo
	validate *validator.Validate
	mylog    mylogger.Logger
}

func NewAuthService(
	ctx context.Context,
	cfg *config.Config,
	authRepo ports.IAuthRepo,
	mylog mylogger.Logger,
) *AuthService {
	return &AuthService{
		ctx:      ctx,
		cfg:      cfg,
		authRepo: authRepo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		mylog:    mylog,
	}
}

func (as *AuthService) Register(ctx context.Context, regReq dto.UserRegistrationRequest) (dto.UserResponse, error) {
	mylog := as.mylog.Action("Register")

	if err := as.validate.Struct(regReq); err != nil {
		return dto.UserResponse{}, fmt.Errorf("%w: %v", myerrors.ErrValidation, err)
	}

	hashedPassword, err := hashPassword(regReq.Password)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:         regReq.Name,
		Email:        regReq.Email,
		PasswordHash: hashedPassword,
	}

	id, err := as.authRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, myerrors.ErrEmailRegistered) {
			mylog.Warn("Failed to register, email already registered")
			return dto.UserResponse{}, err
		}
		mylog.Error("Failed to save user in db", err)
		return dto.UserResponse{}, fmt.Errorf("cannot save user in db: %w", err)
	}

	mylog.Info("User registered successfully", "user_id", id)
	return dto.UserResponse{Id: id, Name: regReq.Name, Email: regReq.Email}, nil
}

// Login verifies credentials and returns the user together with a signed
// access token. The handler decides how the token travels (cookie).
func (as *AuthService) Login(ctx context.Context, authReq dto.UserAuthRequest) (dto.UserResponse, string, error) {
	mylog := as.mylog.Action("Login")

	if err := as.validate.Struct(authReq); err != nil {
		return dto.UserResponse{}, "", fmt.Errorf("%w: %v", myerrors.ErrValidation, err)
	}

	user, err := as.authRepo.GetByEmail(ctx, authReq.Email)
	if err != nil {
		if errors.Is(err, myerrors.ErrUnknownEmail) {
			mylog.Warn("Failed to login, unknown email")
			return dto.UserResponse{}, "", myerrors.ErrUnknownEmail
		}
		mylog.Error("Failed to load user from db", err)
		return dto.UserResponse{}, "", fmt.Errorf("cannot load user from db: %w", err)
	}

	if !checkPassword(user.PasswordHash, authReq.Password) {
		mylog.Debug("Failed to login, wrong password")
		return dto.UserResponse{}, "", myerrors.ErrPasswordUnknown
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.UserId,
		"email":   user.Email,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})

	accessTokenString, err := accessToken.SignedString([]byte(as.cfg.App.JwtSecret))
	if err != nil {
		mylog.Error("failed to sign jwt token", err)
		return dto.UserResponse{}, "", err
	}

	mylog.Info("User login successfully", "user_id", user.UserId)
	return dto.UserResponse{Id: user.UserId, Name: user.Name, Email: user.Email}, accessTokenString, nil
}

// CurrentUser resolves the "who am I" lookup for a verified token subject.
func (as *AuthService) CurrentUser(ctx context.Context, userId string) (dto.UserResponse, error) {
	user, err := as.authRepo.GetById(ctx, userId)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.UserResponse{Id: user.UserId, Name: user.Name, Email: user.Email}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"trackmate/internal/auth-service/core/domain/dto"
	"trackmate/internal/auth-service/core/domain/models"
	"trackmate/internal/auth-service/core/myerrors"
	"trackmate/internal/config"
	"trackmate/internal/mylogger"

	"github.com/golang-jwt/jwt"
)

type fakeAuthRepo struct {
	users  map[string]models.User // keyed by email
	nextId int
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[string]models.User)}
}

func (f *fakeAuthRepo) Create(_ context.Context, user models.User) (string, error) {
	if _, ok := f.users[user.Email]; ok {
		return "", myerrors.ErrEmailRegistered
	}
	f.nextId++
	user.UserId = fmt.Sprintf("user-%d", f.nextId)
	user.CreatedAt = time.Now()
	f.users[user.Email] = user
	return user.UserId, nil
}

func (f *fakeAuthRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return models.User{}, myerrors.ErrUnknownEmail
	}
	return user, nil
}

func (f *fakeAuthRepo) GetById(_ context.Context, userId string) (models.User, error) {
	for _, user := range f.users {
		if user.UserId == userId {
			return user, nil
		}
	}
	return models.User{}, myerrors.ErrUnknownUser
}

func newAuthFixture() (*AuthService, *fakeAuthRepo) {
	repo := newFakeAuthRepo()
	cfg := &config.Config{App: &config.Appconfig{JwtSecret: "test-secret"}}
	svc := NewAuthService(context.Background(), cfg, repo, mylogger.NewDiscard())
	return svc, repo
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newAuthFixture()

	resp, err := svc.Register(context.Background(), dto.UserRegistrationRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "hunter2x",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Id == "" || resp.Name != "Asha" || resp.Email != "asha@example.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	stored := repo.users["asha@example.com"]
	if string(stored.PasswordHash) == "hunter2x" {
		t.Fatal("password stored in plain text")
	}
	if !checkPassword(stored.PasswordHash, "hunter2x") {
		t.Fatal("stored hash does not verify against the original password")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	req := dto.UserRegistrationRequest{Name: "Asha", Email: "asha@example.com", Password: "hunter2x"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, myerrors.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestRegisterValidatesRequest(t *testing.T) {
	svc, _ := newAuthFixture()

	cases := []struct {
		name string
		req  dto.UserRegistrationRequest
	}{
		{"missing name", dto.UserRegistrationRequest{Email: "a@example.com", Password: "hunter2x"}},
		{"bad email", dto.UserRegistrationRequest{Name: "Asha", Email: "not-an-email", Password: "hunter2x"}},
		{"short password", dto.UserRegistrationRequest{Name: "Asha", Email: "a@example.com", Password: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			if !errors.Is(err, myerrors.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestLoginReturnsSignedToken(t *testing.T) {
	svc, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), dto.UserRegistrationRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "hunter2x",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, token, err := svc.Login(context.Background(), dto.UserAuthRequest{
		Email:    "asha@example.com",
		Password: "hunter2x",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Id != reg.Id {
		t.Fatalf("login user id = %q, want %q", resp.Id, reg.Id)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"] != reg.Id {
		t.Fatalf("user_id claim = %v, want %q", claims["user_id"], reg.Id)
	}
	if claims["email"] != "asha@example.com" {
		t.Fatalf("email claim = %v", claims["email"])
	}
	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	if remaining := time.Until(exp); remaining < TokenTTL-time.Minute || remaining > TokenTTL {
		t.Fatalf("token expiry %v away, want about %v", remaining, TokenTTL)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, _, err := svc.Login(context.Background(), dto.UserAuthRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, myerrors.ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), dto.UserRegistrationRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "hunter2x",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), dto.UserAuthRequest{
		Email:    "asha@example.com",
		Password: "not-it",
	})
	if !errors.Is(err, myerrors.ErrPasswordUnknown) {
		t.Fatalf("expected ErrPasswordUnknown, got %v", err)
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), dto.UserRegistrationRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "hunter2x",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.CurrentUser(context.Background(), reg.Id)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if got != reg {
		t.Fatalf("CurrentUser = %+v, want %+v", got, reg)
	}

	if _, err := svc.CurrentUser(context.Background(), "no-such-user"); !errors.Is(err, myerrors.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

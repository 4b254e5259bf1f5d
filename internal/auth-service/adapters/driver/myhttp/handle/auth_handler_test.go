package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trackmate/internal/auth-service/core/domain/dto"
	"trackmate/internal/auth-service/core/myerrors"
	"trackmate/internal/mylogger"
)

type fakeAuthService struct {
	registerErr error
	loginErr    error
	user        dto.UserResponse
	token       string
}

func (f *fakeAuthService) Register(_ context.Context, _ dto.UserRegistrationRequest) (dto.UserResponse, error) {
	return f.user, f.registerErr
}

func (f *fakeAuthService) Login(_ context.Context, _ dto.UserAuthRequest) (dto.UserResponse, string, error) {
	return f.user, f.token, f.loginErr
}

func (f *fakeAuthService) CurrentUser(_ context.Context, userId string) (dto.UserResponse, error) {
	if userId != f.user.Id {
		return dto.UserResponse{}, myerrors.ErrUnknownUser
	}
	return f.user, nil
}

func newHandlerFixture() (*AuthHandler, *fakeAuthService) {
	svc := &fakeAuthService{
		user:  dto.UserResponse{Id: "user-1", Name: "Asha", Email: "asha@example.com"},
		token: "signed-token",
	}
	return NewAuthHandler(svc, mylogger.NewDiscard()), svc
}

func TestLoginSetsAuthCookie(t *testing.T) {
	handler, _ := newHandlerFixture()

	body := `{"email":"asha@example.com","password":"hunter2x"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == AuthCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no auth_token cookie set")
	}
	if cookie.Value != "signed-token" {
		t.Fatalf("cookie value = %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatal("auth cookie must be HttpOnly")
	}
	if cookie.MaxAge != cookieMaxAge {
		t.Fatalf("cookie max age = %d, want %d", cookie.MaxAge, cookieMaxAge)
	}
}

func TestLoginBadCredentialsIs401(t *testing.T) {
	handler, svc := newHandlerFixture()
	svc.loginErr = myerrors.ErrPasswordUnknown

	body := `{"email":"asha@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login()(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	// The response must not reveal whether email or password was wrong.
	if resp["error"] != "invalid email or password" {
		t.Fatalf("error = %v", resp["error"])
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookie should be set on failed login")
	}
}

func TestLoginMalformedBodyIs400(t *testing.T) {
	handler, _ := newHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Login()(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegisterDuplicateEmailIs400(t *testing.T) {
	handler, svc := newHandlerFixture()
	svc.registerErr = myerrors.ErrEmailRegistered

	body := `{"name":"Asha","email":"asha@example.com","password":"hunter2x"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register()(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	handler, _ := newHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == AuthCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("logout must overwrite the auth cookie")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("cookie not expired: value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestMeRequiresVerifiedSubject(t *testing.T) {
	handler, _ := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.Me()(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without X-UserId = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("X-UserId", "user-1")
	rec = httptest.NewRecorder()
	handler.Me()(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		User dto.UserResponse `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.User.Id != "user-1" || resp.User.Email != "asha@example.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestMeUnknownUserIs401(t *testing.T) {
	handler, _ := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("X-UserId", "gone-user")
	rec := httptest.NewRecorder()
	handler.Me()(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret, userId string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId,
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func wrapped(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seenUserId string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserId = r.Header.Get("X-UserId")
		w.WriteHeader(http.StatusOK)
	})
	return NewAuthMiddleware(testSecret).Wrap(next), &seenUserId
}

func TestWrapAcceptsCookieToken(t *testing.T) {
	handler, seen := wrapped(t)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.AddCookie(&http.Cookie{
		Name:  authCookieName,
		Value: signedToken(t, testSecret, "user-1", time.Now().Add(time.Hour)),
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *seen != "user-1" {
		t.Fatalf("X-UserId = %q, want user-1", *seen)
	}
}

func TestWrapAcceptsBearerToken(t *testing.T) {
	handler, seen := wrapped(t)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, "user-2", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *seen != "user-2" {
		t.Fatalf("X-UserId = %q, want user-2", *seen)
	}
}

func TestWrapRejectsMissingToken(t *testing.T) {
	handler, _ := wrapped(t)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWrapRejectsExpiredToken(t *testing.T) {
	handler, _ := wrapped(t)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.AddCookie(&http.Cookie{
		Name:  authCookieName,
		Value: signedToken(t, testSecret, "user-1", time.Now().Add(-time.Hour)),
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWrapRejectsWrongSecret(t *testing.T) {
	handler, _ := wrapped(t)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", "user-1", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

// A forged payload header never overrides the verified token subject.
func TestWrapOverwritesSpoofedUserIdHeader(t *testing.T) {
	handler, seen := wrapped(t)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("X-UserId", "attacker")
	req.AddCookie(&http.Cookie{
		Name:  authCookieName,
		Value: signedToken(t, testSecret, "user-1", time.Now().Add(time.Hour)),
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if *seen != "user-1" {
		t.Fatalf("X-UserId = %q, want user-1", *seen)
	}
}

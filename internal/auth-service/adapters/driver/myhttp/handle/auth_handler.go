package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"trackmate/internal/auth-service/core/domain/dto"
	"trackmate/internal/auth-service/core/myerrors"
	"trackmate/internal/auth-service/core/ports"
	"trackmate/internal/mylogger"
)

const (
	AuthCookieName = "auth_token"
	cookieMaxAge   = 60 * 60 * 24 * 2 // 2 days, matches the token TTL
)

type AuthHandler struct {
	authService ports.IAuthService
	mylog       mylogger.Logger
}

func NewAuthHandler(authService ports.IAuthService, mylog mylogger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		mylog:       mylog,
	}
}

func (ah *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var regReq dto.UserRegistrationRequest

		mylog := ah.mylog.Action("Register")

		if err := json.NewDecoder(r.Body).Decode(&regReq); err != nil {
			mylog.Error("Failed to parse registration body", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		user, err := ah.authService.Register(ctx, regReq)
		if err != nil {
			if errors.Is(err, myerrors.ErrEmailRegistered) || errors.Is(err, myerrors.ErrValidation) {
				jsonError(w, http.StatusBadRequest, err)
				return
			}
			jsonError(w, http.StatusInternalServerError, err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "User created successfully",
			"user":    user,
		})
		mylog.Info("Successfully registered!")
	}
}

// Login verifies credentials and hands the access token to the browser as an
// HttpOnly cookie.
func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var authReq dto.UserAuthRequest

		mylog := ah.mylog.Action("Login")

		if err := json.NewDecoder(r.Body).Decode(&authReq); err != nil {
			mylog.Error("Failed to parse login body", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		user, accessToken, err := ah.authService.Login(ctx, authReq)
		if err != nil {
			if errors.Is(err, myerrors.ErrUnknownEmail) || errors.Is(err, myerrors.ErrPasswordUnknown) {
				jsonError(w, http.StatusUnauthorized, errors.New("invalid email or password"))
				return
			}
			if errors.Is(err, myerrors.ErrValidation) {
				jsonError(w, http.StatusBadRequest, err)
				return
			}
			jsonError(w, http.StatusInternalServerError, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     AuthCookieName,
			Value:    accessToken,
			HttpOnly: true,
			Path:     "/",
			MaxAge:   cookieMaxAge,
			SameSite: http.SameSiteLaxMode,
		})

		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user":    user,
		})
		mylog.Info("Successfully login!")
	}
}

func (ah *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     AuthCookieName,
			Value:    "",
			HttpOnly: true,
			Path:     "/",
			MaxAge:   -1,
		})
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Logged out",
		})
	}
}

// Me answers the session "who am I" lookup. The auth middleware has already
// verified the token and stashed the subject in X-UserId.
func (ah *AuthHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := r.Header.Get("X-UserId")
		if userId == "" {
			jsonError(w, http.StatusUnauthorized, myerrors.ErrUnauthenticated)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		user, err := ah.authService.CurrentUser(ctx, userId)
		if err != nil {
			if errors.Is(err, myerrors.ErrUnknownUser) {
				jsonError(w, http.StatusUnauthorized, myerrors.ErrUnauthenticated)
				return
			}
			jsonError(w, http.StatusInternalServerError, err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{"user": user})
	}
}

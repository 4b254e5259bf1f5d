package handle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trackmate/internal/mylogger"
	"trackmate/internal/trip-service/core/domain/dto"
	"trackmate/internal/trip-service/core/ports"
)

type InvitationsHandler struct {
	invitationService ports.IInvitationService
	log               mylogger.Logger
}

func NewInvitationsHandler(is ports.IInvitationService, log mylogger.Logger) *InvitationsHandler {
	return &InvitationsHandler{
		invitationService: is,
		log:               log,
	}
}

func (ih *InvitationsHandler) GetInvitation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantId := r.PathValue("participant_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		invitation, err := ih.invitationService.GetInvitation(ctx, participantId)
		if err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{"invitation": invitation})
	}
}

func (ih *InvitationsHandler) Respond() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantId := r.PathValue("participant_id")

		req := dto.InvitationActionRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		invitation, err := ih.invitationService.Respond(ctx, participantId, r.Header.Get("X-UserId"), req)
		if err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"message":     fmt.Sprintf("Invitation %sed successfully", strings.ToLower(req.Action)),
			"participant": invitation,
		})
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"

	"trackmate/internal/email-worker/core/domain/dto"
	"trackmate/internal/email-worker/core/ports"
	"trackmate/internal/mylogger"
)

type InviteWorker struct {
	mylog  mylogger.Logger
	mailer ports.IMailer
}

func NewInviteWorker(mylog mylogger.Logger, mailer ports.IMailer) *InviteWorker {
	return &InviteWorker{
		mylog:  mylog,
		mailer: mailer,
	}
}

// HandleDelivery decodes one invite message and sends the email. A malformed
// payload is dropped (redelivery cannot fix it); a send failure is returned
// so the broker requeues the delivery.
func (iw *InviteWorker) HandleDelivery(ctx context.Context, body []byte) error {
	mylog := iw.mylog.Action("handle_invite_email")

	var invite dto.InviteEmail
	if err := json.Unmarshal(body, &invite); err != nil {
		mylog.Error("Dropping malformed invite message", err)
		return nil
	}
	if invite.RecipientEmail == "" || invite.ParticipantId == "" {
		mylog.Warn("Dropping invite message without recipient or participant",
			"tripId", invite.TripId)
		return nil
	}

	if err := iw.mailer.SendInvite(ctx, invite); err != nil {
		mylog.Error("Failed to send invite email", err,
			"recipient", invite.RecipientEmail, "tripId", invite.TripId)
		return fmt.Errorf("send invite email: %w", err)
	}

	mylog.Info("Invite email sent",
		"recipient", invite.RecipientEmail, "tripId", invite.TripId)
	return nil
}

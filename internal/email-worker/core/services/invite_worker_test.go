package services

import (
	"context"
	"errors"
	"testing"

	"trackmate/internal/email-worker/core/domain/dto"
	"trackmate/internal/mylogger"
)

type fakeMailer struct {
	sent []dto.InviteEmail
	err  error
}

func (f *fakeMailer) SendInvite(_ context.Context, invite dto.InviteEmail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, invite)
	return nil
}

func TestHandleDeliverySendsEmail(t *testing.T) {
	mailer := &fakeMailer{}
	worker := NewInviteWorker(mylogger.NewDiscard(), mailer)

	body := []byte(`{"recipientEmail":"ravi@example.com","recipientName":"Ravi","tripId":"trip-1","destination":"Jaipur","participantId":"part-2"}`)
	if err := worker.HandleDelivery(context.Background(), body); err != nil {
		t.Fatalf("HandleDelivery returned error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(mailer.sent))
	}
	if mailer.sent[0].ParticipantId != "part-2" {
		t.Errorf("unexpected invite payload: %+v", mailer.sent[0])
	}
}

func TestHandleDeliveryDropsMalformedPayload(t *testing.T) {
	mailer := &fakeMailer{}
	worker := NewInviteWorker(mylogger.NewDiscard(), mailer)

	// Not redeliverable; must not be requeued.
	if err := worker.HandleDelivery(context.Background(), []byte("not json")); err != nil {
		t.Fatalf("malformed payload must be dropped, got error: %v", err)
	}
	if err := worker.HandleDelivery(context.Background(), []byte(`{"tripId":"trip-1"}`)); err != nil {
		t.Fatalf("payload without recipient must be dropped, got error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("expected no emails, got %d", len(mailer.sent))
	}
}

func TestHandleDeliveryReturnsSendFailures(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("resend is down")}
	worker := NewInviteWorker(mylogger.NewDiscard(), mailer)

	body := []byte(`{"recipientEmail":"ravi@example.com","participantId":"part-2"}`)
	if err := worker.HandleDelivery(context.Background(), body); err == nil {
		t.Fatal("expected an error so the delivery gets requeued")
	}
}

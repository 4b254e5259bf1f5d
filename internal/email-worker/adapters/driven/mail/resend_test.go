package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trackmate/internal/email-worker/core/domain/dto"
)

func TestSendInvite(t *testing.T) {
	var got struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		HTML    string   `json:"html"`
	}
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer srv.Close()

	mailer := NewResendMailer("rs-key", "trips@trackmate.dev", "https://trackmate.dev", WithBaseURL(srv.URL))
	err := mailer.SendInvite(context.Background(), dto.InviteEmail{
		RecipientEmail: "ravi@example.com",
		RecipientName:  "Ravi",
		TripId:         "trip-1",
		Destination:    "Jaipur",
		ParticipantId:  "part-2",
	})
	if err != nil {
		t.Fatalf("SendInvite returned error: %v", err)
	}

	if auth != "Bearer rs-key" {
		t.Errorf("unexpected authorization header %q", auth)
	}
	if got.From != "trips@trackmate.dev" {
		t.Errorf("unexpected from %q", got.From)
	}
	if len(got.To) != 1 || got.To[0] != "ravi@example.com" {
		t.Errorf("unexpected recipients %v", got.To)
	}
	if !strings.Contains(got.HTML, "https://trackmate.dev/invite/part-2") {
		t.Errorf("invite link missing from body: %q", got.HTML)
	}
	if !strings.Contains(got.Subject, "Jaipur") {
		t.Errorf("destination missing from subject: %q", got.Subject)
	}
}

func TestSendInviteAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	mailer := NewResendMailer("rs-key", "bad", "https://trackmate.dev", WithBaseURL(srv.URL))
	err := mailer.SendInvite(context.Background(), dto.InviteEmail{
		RecipientEmail: "ravi@example.com",
		ParticipantId:  "part-2",
	})
	if err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"trackmate/internal/email-worker/core/domain/dto"
	"trackmate/internal/email-worker/core/ports"
)

const defaultBaseURL = "https://api.resend.com"

// ResendMailer delivers invitation emails through the Resend HTTP API.
type ResendMailer struct {
	apiKey     string
	from       string
	appURL     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*ResendMailer)

// WithBaseURL points the mailer at a different API host. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(m *ResendMailer) { m.baseURL = baseURL }
}

func NewResendMailer(apiKey, from, appURL string, opts ...Option) ports.IMailer {
	m := &ResendMailer{
		apiKey:     apiKey,
		from:       from,
		appURL:     appURL,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *ResendMailer) SendInvite(ctx context.Context, invite dto.InviteEmail) error {
	inviteURL := fmt.Sprintf("%s/invite/%s", m.appURL, invite.ParticipantId)

	payload := map[string]interface{}{
		"from":    m.from,
		"to":      []string{invite.RecipientEmail},
		"subject": fmt.Sprintf("You're invited to a trip to %s", invite.Destination),
		"html": fmt.Sprintf(
			"<p>Hi %s,</p><p>You have been invited to join a trip to <strong>%s</strong>.</p>"+
				"<p><a href=%q>View your invitation</a></p>",
			invite.RecipientName, invite.Destination, inviteURL),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}

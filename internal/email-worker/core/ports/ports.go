package ports

import (
	"context"

	"trackmate/internal/email-worker/core/domain/dto"
)

type IMailer interface {
	SendInvite(ctx context.Context, invite dto.InviteEmail) error
}

type IInviteWorker interface {
	// HandleDelivery processes one raw queue message. A returned error means
	// the delivery must be redelivered.
	HandleDelivery(ctx context.Context, body []byte) error
}

package ports

import (
	"context"

	messagebrokerdto "trackmate/internal/trip-service/core/domain/message_broker_dto"
)

type IInviteBroker interface {
	PublishInviteEmail(ctx context.Context, msg messagebrokerdto.InviteEmail) error
	Close() error
}

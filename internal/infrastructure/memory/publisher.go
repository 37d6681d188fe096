package memory

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/logger"
)

// NoopPublisher drops mail events. Used when no broker is configured so
// registration still works in local setups.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishVerificationEmail(_ context.Context, evt account.VerificationEmailEvent) error {
	logger.Logger.Debug().
		Str("user_id", evt.UserID).
		Str("email", evt.Email).
		Msg("mail broker not configured, dropping verification email event")
	return nil
}

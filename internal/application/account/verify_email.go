package account

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// VerifyEmailConfirm marks the token's subject as verified. The token must be
// of the verify_email type; an access token does not pass here. A vanished
// subject is reported exactly like an invalid token.
func (s *Service) VerifyEmailConfirm(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrMissingField("token")
	}

	userID, err := s.codec.Verify(token, TokenVerifyEmail)
	if err != nil {
		return err
	}

	if err := s.users.SetVerified(ctx, userID); err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.ErrTokenExpiredOrInvalid()
		}
		return err
	}
	return nil
}

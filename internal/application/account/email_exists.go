package account

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// CheckEmailExists is public and unauthenticated. It answers existence only;
// the record itself is never exposed, which keeps the endpoint usable for
// client-side pre-validation without leaking account data.
func (s *Service) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, domain.ErrMissingField("email")
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

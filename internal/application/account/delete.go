package account

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// Delete permanently removes the principal's own record. The target is always
// the principal itself, never a client-supplied id.
func (s *Service) Delete(ctx context.Context, p *Principal) error {
	if p == nil {
		return domain.ErrTokenMissing()
	}
	return s.users.Delete(ctx, p.ID)
}

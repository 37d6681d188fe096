package account

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// GetSelf returns the principal's own current record. The record can vanish
// between token issuance and lookup; that surfaces as not found.
func (s *Service) GetSelf(ctx context.Context, p *Principal) (domain.User, error) {
	if p == nil {
		return domain.User{}, domain.ErrTokenMissing()
	}
	return s.users.GetByID(ctx, p.ID)
}

// GetByEmail looks up any user by email. Admins may target anyone, other
// principals only themselves. The gate runs before the lookup so a forbidden
// caller learns nothing about existence.
func (s *Service) GetByEmail(ctx context.Context, p *Principal, email string) (domain.User, error) {
	if err := CanViewByEmail(p, email); err != nil {
		return domain.User{}, err
	}
	return s.users.GetByEmail(ctx, strings.TrimSpace(email))
}

// ListAll returns every user. Order is store-defined; any authenticated
// principal may call it.
func (s *Service) ListAll(ctx context.Context, p *Principal) ([]domain.User, error) {
	if err := CanListAll(p); err != nil {
		return nil, err
	}
	return s.users.ListAll(ctx)
}

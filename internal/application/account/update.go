package account

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// UpdateInput is a partial patch of the principal's own record. Nil pointer
// fields are left untouched. Email, role, verification state, id and
// timestamps are never client-mutable and therefore have no field here.
type UpdateInput struct {
	FirstName *string
	LastName  *string

	// Password set requires OldPassword matching the stored hash.
	Password    string
	OldPassword string
}

// Update patches the principal's own record (self-service only). First and
// last name apply unconditionally when present. A password change demands the
// old password and a policy-compliant new one; the new password is hashed
// exactly once, immediately before persistence.
func (s *Service) Update(ctx context.Context, p *Principal, in UpdateInput) (domain.User, error) {
	if p == nil {
		return domain.User{}, domain.ErrTokenMissing()
	}

	u, err := s.users.GetByID(ctx, p.ID)
	if err != nil {
		return domain.User{}, err
	}

	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}

	if in.Password != "" {
		if in.OldPassword == "" {
			return domain.User{}, domain.ErrOldPasswordRequired()
		}
		if err := s.hasher.Compare(u.PasswordHash, in.OldPassword); err != nil {
			return domain.User{}, domain.ErrInvalidCredentials()
		}
		if violations := domain.ValidatePassword(in.Password); len(violations) > 0 {
			return domain.User{}, domain.ErrValidationFailed(violations)
		}

		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return domain.User{}, domain.ErrHashFailed(err)
		}
		u.PasswordHash = hash
	}

	return s.users.Update(ctx, u)
}

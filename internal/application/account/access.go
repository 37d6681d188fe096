package account

import (
	"strings"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// Stateless authorization decisions. Each takes the acting principal (nil =
// unauthenticated) and answers allow (nil) or deny (a domain error).
// Authorization is always checked before existence so a forbidden caller
// cannot learn whether the target exists.
//
// Self-service operations (view/update/delete own record) have no decision
// function on purpose: their target id is derived from the principal itself,
// never from a client-supplied id.

// CanRegister denies registration through this path for a logged-in session.
func CanRegister(p *Principal) error {
	if p != nil {
		return domain.ErrAlreadyAuthenticated()
	}
	return nil
}

// CanViewByEmail allows admins to look up anyone and everyone to look up
// their own record.
func CanViewByEmail(p *Principal, targetEmail string) error {
	if p == nil {
		return domain.ErrTokenMissing()
	}
	if p.IsAdmin() {
		return nil
	}
	if strings.EqualFold(p.Email, strings.TrimSpace(targetEmail)) {
		return nil
	}
	return domain.ErrForbidden()
}

// CanSearch allows only roles ranked above the base user role.
func CanSearch(p *Principal) error {
	if p == nil {
		return domain.ErrTokenMissing()
	}
	if domain.RoleRank(p.Role) <= domain.RoleRank(string(domain.RoleUser)) {
		return domain.ErrForbidden()
	}
	return nil
}

// CanListAll requires an authenticated principal, nothing more.
func CanListAll(p *Principal) error {
	if p == nil {
		return domain.ErrTokenMissing()
	}
	return nil
}

package account

import "github.com/baechuer/real-time-ressys/services/user-service/internal/domain"

// Principal is the acting identity for authorization decisions: the user
// resolved from a verified access token. A nil *Principal means the request
// is unauthenticated.
type Principal struct {
	ID    string
	Email string
	Role  string
}

func PrincipalFromUser(u domain.User) *Principal {
	return &Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == string(domain.RoleAdmin)
}

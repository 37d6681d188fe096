package account

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// bcrypt hash of an unguessable throwaway value, never a real credential.
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

type LoginResult struct {
	User   domain.User
	Tokens AuthTokens
}

// Login authenticates a user and issues a fresh access token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials. Burn a compare against a
		// throwaway hash so both failure paths cost a bcrypt round.
		_ = s.hasher.Compare(dummyPasswordHash, password)
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	access, err := s.codec.Issue(u.ID, TokenAccess, s.accessTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		User: u,
		Tokens: AuthTokens{
			AccessToken: access,
			TokenType:   "Bearer",
			ExpiresIn:   int64(s.accessTTL.Seconds()),
		},
	}, nil
}

package account

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// SearchByName performs a case-insensitive substring match against first OR
// last name, ordered by (first name, last name) ascending. An empty term
// matches all users. Elevated roles only.
func (s *Service) SearchByName(ctx context.Context, p *Principal, term string) ([]domain.User, error) {
	if err := CanSearch(p); err != nil {
		return nil, err
	}
	return s.users.SearchByName(ctx, strings.TrimSpace(term))
}

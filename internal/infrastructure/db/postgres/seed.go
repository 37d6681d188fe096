package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// SeedAdmin inserts a verified admin account for local development.
// Inserting is conditional on the email, so repeated boots are harmless.
func SeedAdmin(ctx context.Context, db *sql.DB, email, passwordHash string) error {
	const q = `
INSERT INTO users (id, first_name, last_name, email, password_hash, role, is_verified)
VALUES ($1, 'Admin', 'User', $2, $3, $4, TRUE)
ON CONFLICT (email) DO NOTHING;
`
	_, err := db.ExecContext(ctx, q, uuid.NewString(), normalizeEmail(email), passwordHash, string(domain.RoleAdmin))
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

package account

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the account service needs, not HOW it's stored.
The store is the sole point of mutation serialization and must enforce
email uniqueness atomically.
*/
type UserRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// SearchByName matches the term case-insensitively against first OR last
	// name and returns results ordered by (first_name, last_name) ascending.
	// An empty term matches all users.
	SearchByName(ctx context.Context, term string) ([]domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)

	// Update persists first name, last name and password hash and refreshes
	// updated_at. Email, role and verification state are not touched here.
	Update(ctx context.Context, u domain.User) (domain.User, error)
	SetVerified(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenType / TokenCodec
----------------------
Signed, expiring, typed tokens. A token minted for one purpose never
verifies as another; every verification failure is the same opaque error.
*/
type TokenType string

const (
	TokenAccess      TokenType = "access"
	TokenVerifyEmail TokenType = "verify_email"
)

type TokenCodec interface {
	Issue(subjectID string, typ TokenType, ttl time.Duration) (string, error)
	Verify(token string, want TokenType) (subjectID string, err error)
}

/*
MailPublisher
-------------
The mail-sender collaborator. The platform's email-service consumes these
events and sends the actual mail; this service never sends email directly,
and a publish failure never fails the triggering operation.
*/
type MailPublisher interface {
	PublishVerificationEmail(ctx context.Context, evt VerificationEmailEvent) error
}

type VerificationEmailEvent struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	URL       string `json:"url"`
}

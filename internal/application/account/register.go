package account

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/logger"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a new, unverified account. The caller must not already be
// authenticated. The password is checked against the full policy (all
// violations reported together), hashed exactly once, and the plaintext is
// discarded. A verification mail event is dispatched best-effort; its outcome
// never affects the result.
func (s *Service) Register(ctx context.Context, p *Principal, in RegisterInput) (domain.User, error) {
	if err := CanRegister(p); err != nil {
		return domain.User{}, err
	}

	if violations := domain.ValidatePassword(in.Password); len(violations) > 0 {
		return domain.User{}, domain.ErrValidationFailed(violations)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         string(domain.RoleUser),
		IsVerified:   false,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}

	s.sendVerificationMail(created)
	return created, nil
}

func (s *Service) sendVerificationMail(u domain.User) {
	token, err := s.codec.Issue(u.ID, TokenVerifyEmail, s.verifyEmailTTL)
	if err != nil {
		logger.Logger.Warn().Err(err).Str("user_id", u.ID).Msg("verify token mint failed")
		return
	}

	s.publishMail(VerificationEmailEvent{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		URL:       s.verifyEmailBaseURL + token,
	})
}

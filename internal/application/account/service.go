package account

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/logger"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	codec  TokenCodec
	mail   MailPublisher

	accessTTL      time.Duration
	verifyEmailTTL time.Duration

	// URL prefix for links sent via the email-service; the verify token is
	// appended.
	verifyEmailBaseURL string

	// publishMail dispatches the verification mail event. Fire-and-forget:
	// overridden in tests to run synchronously.
	publishMail func(evt VerificationEmailEvent)
}

type Config struct {
	AccessTTL          time.Duration
	VerifyEmailTTL     time.Duration
	VerifyEmailBaseURL string
}

func NewService(users UserRepo, hasher PasswordHasher, codec TokenCodec, mail MailPublisher, cfg Config) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 60 * time.Minute
	}
	verifyTTL := cfg.VerifyEmailTTL
	if verifyTTL <= 0 {
		verifyTTL = 24 * time.Hour
	}

	s := &Service{
		users:  users,
		hasher: hasher,
		codec:  codec,
		mail:   mail,

		accessTTL:          accessTTL,
		verifyEmailTTL:     verifyTTL,
		verifyEmailBaseURL: cfg.VerifyEmailBaseURL,
	}
	s.publishMail = s.publishMailAsync
	return s
}

// WithSyncMail makes mail dispatch synchronous. Tests only.
func (s *Service) WithSyncMail() *Service {
	s.publishMail = func(evt VerificationEmailEvent) {
		if err := s.mail.PublishVerificationEmail(context.Background(), evt); err != nil {
			logger.Logger.Warn().Err(err).Str("email", evt.Email).Msg("verification mail publish failed")
		}
	}
	return s
}

// AuthTokens is the common token output for handlers/DTO mapping.
type AuthTokens struct {
	AccessToken string
	ExpiresIn   int64  // seconds
	TokenType   string // "Bearer"
}

// publishMailAsync publishes out-of-band. The outcome never affects the
// completion of the operation that triggered it.
func (s *Service) publishMailAsync(evt VerificationEmailEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.mail.PublishVerificationEmail(ctx, evt); err != nil {
			logger.Logger.Warn().Err(err).Str("email", evt.Email).Msg("verification mail publish failed")
		}
	}()
}

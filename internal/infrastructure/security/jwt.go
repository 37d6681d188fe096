package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// DefaultAccessTTL is the access token lifetime when the caller does not
// override it.
const DefaultAccessTTL = 60 * time.Minute

// TokenCodec issues and verifies signed, expiring, typed tokens (HS256 JWT).
// Tokens are self-contained and never stored server-side: validity is purely
// a function of signature + expiry + (caller-checked) subject existence.
type TokenCodec struct {
	secret []byte
	issuer string
}

// NewTokenCodec fails when the signing secret is unset. The secret is
// injected explicitly so no token logic reads the ambient environment.
func NewTokenCodec(secret string, issuer string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token codec: signing secret is not set")
	}
	return &TokenCodec{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

type tokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Issue embeds the subject id, the token type and an absolute expiry
// (now + ttl) into a signed token.
func (c *TokenCodec) Issue(subjectID string, typ account.TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		TokenType: string(typ),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

// Verify checks signature, expiry and token type, and returns the subject id.
// Every failure mode collapses into the same token_expired_or_invalid error so
// callers cannot probe which check failed. Subject existence is not checked
// here; the caller resolves the subject and treats "not found" identically to
// an invalid token.
func (c *TokenCodec) Verify(token string, want account.TokenType) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenExpiredOrInvalid()
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", domain.ErrTokenExpiredOrInvalid()
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return "", domain.ErrTokenExpiredOrInvalid()
	}
	if claims.TokenType != string(want) || claims.Subject == "" {
		return "", domain.ErrTokenExpiredOrInvalid()
	}
	return claims.Subject, nil
}

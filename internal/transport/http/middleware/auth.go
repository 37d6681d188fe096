package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

type TokenVerifier interface {
	Verify(token string, want account.TokenType) (string, error)
}

// UserReader resolves the token subject against the source of truth.
// A subject that no longer exists is treated like an invalid token.
type UserReader interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth verifies Authorization: Bearer <access_token>, resolves the subject
// and injects the principal into the request context.
func Auth(verifier TokenVerifier, users UserReader, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeErr(w, r, domain.ErrTokenExpiredOrInvalid())
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				writeErr(w, r, domain.ErrTokenExpiredOrInvalid())
				return
			}

			subjectID, err := verifier.Verify(raw, account.TokenAccess)
			if err != nil {
				writeErr(w, r, err)
				return
			}
			if strings.TrimSpace(subjectID) == "" {
				writeErr(w, r, domain.ErrTokenExpiredOrInvalid())
				return
			}

			u, err := users.GetByID(r.Context(), subjectID)
			if err != nil {
				// A vanished subject must look exactly like a bad token.
				if domain.Is(err, "user_not_found") {
					writeErr(w, r, domain.ErrTokenExpiredOrInvalid())
					return
				}
				writeErr(w, r, err)
				return
			}

			ctx := WithPrincipal(r.Context(), account.PrincipalFromUser(u))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves a principal when a token is present but lets
// anonymous requests through with a nil principal. Routes that must deny
// authenticated callers (register, login) use this.
func OptionalAuth(verifier TokenVerifier, users UserReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				next.ServeHTTP(w, r)
				return
			}

			subjectID, err := verifier.Verify(strings.TrimSpace(parts[1]), account.TokenAccess)
			if err != nil {
				// A broken token is not an authenticated caller.
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.GetByID(r.Context(), subjectID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithPrincipal(r.Context(), account.PrincipalFromUser(u))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

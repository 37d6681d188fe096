package middleware

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/application/account"
)

type ctxKey string

const ctxPrincipal ctxKey = "principal"

func WithPrincipal(ctx context.Context, p *account.Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// PrincipalFromContext returns the authenticated caller, or nil when the
// request carried no valid token.
func PrincipalFromContext(ctx context.Context) *account.Principal {
	p, _ := ctx.Value(ctxPrincipal).(*account.Principal)
	return p
}

package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	// Registration / authentication
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)

	// Open probe
	IsEmailExists(w http.ResponseWriter, r *http.Request)

	// Self-service
	Me(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
	DeleteMe(w http.ResponseWriter, r *http.Request)

	// Directory
	ListUsers(w http.ResponseWriter, r *http.Request)
	GetByEmail(w http.ResponseWriter, r *http.Request)
	SearchByName(w http.ResponseWriter, r *http.Request)

	// Email verification
	VerifyEmailConfirm(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Users  UserHandler

	RequestIDMW func(http.Handler) http.Handler
	AuthMW      func(http.Handler) http.Handler
	OptAuthMW   func(http.Handler) http.Handler
	ModMW       func(http.Handler) http.Handler

	RegisterLimitMW func(http.Handler) http.Handler
	LoginLimitMW    func(http.Handler) http.Handler

	// Applied to every route when set: security headers, CORS, body cap.
	HardeningMW []func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("nil Users handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.OptAuthMW == nil {
		return nil, fmt.Errorf("nil OptionalAuth middleware")
	}
	if deps.ModMW == nil {
		return nil, fmt.Errorf("nil Mod middleware")
	}

	passthrough := func(next http.Handler) http.Handler { return next }
	if deps.RegisterLimitMW == nil {
		deps.RegisterLimitMW = passthrough
	}
	if deps.LoginLimitMW == nil {
		deps.LoginLimitMW = passthrough
	}

	r := chi.NewRouter()
	if deps.RequestIDMW != nil {
		r.Use(deps.RequestIDMW)
	}
	for _, mw := range deps.HardeningMW {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/users/v1", func(r chi.Router) {
		// --- Open endpoints ---
		// Register sees the principal when a token is attached so it can
		// reject already-authenticated callers.
		r.With(deps.OptAuthMW, deps.RegisterLimitMW).Post("/register", deps.Users.Register)
		r.With(deps.LoginLimitMW).Post("/login", deps.Users.Login)
		r.Get("/is-email-exists/{email}", deps.Users.IsEmailExists)
		r.Post("/verify-email/confirm", deps.Users.VerifyEmailConfirm)

		// --- Self-service ---
		r.With(deps.AuthMW).Get("/me", deps.Users.Me)
		r.With(deps.AuthMW).Put("/me", deps.Users.UpdateMe)
		r.With(deps.AuthMW).Delete("/me", deps.Users.DeleteMe)

		// --- Directory ---
		r.With(deps.AuthMW).Get("/users", deps.Users.ListUsers)
		r.With(deps.AuthMW).Get("/users/by-email/{email}", deps.Users.GetByEmail)
		r.With(deps.AuthMW, deps.ModMW).Get("/users/search/{name}", deps.Users.SearchByName)
	})

	return r, nil
}

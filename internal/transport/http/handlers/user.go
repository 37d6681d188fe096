package http_handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/response"
)

type UserHandler struct {
	svc *account.Service
}

func NewUserHandler(svc *account.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register handles POST /users/v1/register. Authenticated callers are
// rejected by the service; OptionalAuth supplies the principal when a valid
// token is attached.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p := middleware.PrincipalFromContext(r.Context())
	u, err := h.svc.Register(r.Context(), p, account.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Str("email", u.Email).
		Msg("user_registered")

	response.Created(w, "User created. Check your email to verify the account.", dto.NewUserView(u))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, "Login successful.", dto.AuthData{
		User: dto.NewUserView(res.User),
		Tokens: dto.TokensView{
			AccessToken: res.Tokens.AccessToken,
			TokenType:   res.Tokens.TokenType,
			ExpiresIn:   res.Tokens.ExpiresIn,
		},
	})
}

// IsEmailExists handles GET /users/v1/is-email-exists/{email}. Open probe;
// it only confirms presence, never returns account data.
func (h *UserHandler) IsEmailExists(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(chi.URLParam(r, "email"))

	exists, err := h.svc.CheckEmailExists(r.Context(), email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	msg := "Email does not exist."
	if exists {
		msg = "Email exists."
	}
	response.OK(w, msg, dto.EmailExistsData{Exists: exists})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())

	u, err := h.svc.GetSelf(r.Context(), p)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, "Fetched user.", dto.NewUserView(u))
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateMeRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	p := middleware.PrincipalFromContext(r.Context())
	u, err := h.svc.Update(r.Context(), p, account.UpdateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		OldPassword: req.OldPassword,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Msg("user_updated")

	response.OK(w, "User updated.", dto.NewUserView(u))
}

// DeleteMe permanently removes the caller's account.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), p); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if p != nil {
		logger.WithCtx(r.Context()).Info().
			Str("user_id", p.ID).
			Msg("user_deleted")
	}

	response.NoContent(w)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())

	users, err := h.svc.ListAll(r.Context(), p)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, "Fetched users.", dto.NewUserViews(users))
}

func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(chi.URLParam(r, "email"))
	if email == "" {
		response.WriteError(w, r, domain.ErrMissingField("email"))
		return
	}

	p := middleware.PrincipalFromContext(r.Context())
	u, err := h.svc.GetByEmail(r.Context(), p, email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, "Fetched user.", dto.NewUserView(u))
}

func (h *UserHandler) SearchByName(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "name")

	p := middleware.PrincipalFromContext(r.Context())
	users, err := h.svc.SearchByName(r.Context(), p, term)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, "Fetched users.", dto.NewUserViews(users))
}

func (h *UserHandler) VerifyEmailConfirm(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailConfirmRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.VerifyEmailConfirm(r.Context(), req.Token); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, "Email verified.", map[string]string{"status": "verified"})
}

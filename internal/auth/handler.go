package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/AhmedDR200/Library-API/internal/platform/httpx"
	"github.com/AhmedDR200/Library-API/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Get("/forgot-password", h.showForgotPassword)
	r.Post("/forgot-password", h.handleForgotPassword)
	r.Get("/reset-password/{id}/{token}", h.showResetPassword)
	r.Post("/reset-password/{id}/{token}", h.handleResetPassword)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateEmail) {
			httpx.Fail(w, http.StatusBadRequest, "user already registered")
			return
		}
		h.logger.Error("register user", slog.Any("error", err))
		httpx.Internal(w)
		return
	}

	httpx.SuccessMessage(w, http.StatusOK, "user registered successfully",
		CredentialsResponse{PublicUser: user.Public(), Token: token})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Fail(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("login user", slog.Any("error", err))
		httpx.Internal(w)
		return
	}

	httpx.SuccessMessage(w, http.StatusOK, "logged in successfully",
		CredentialsResponse{PublicUser: user.Public(), Token: token})
}

func (h *Handler) showForgotPassword(w http.ResponseWriter, r *http.Request) {
	httpx.SuccessMessage(w, http.StatusOK,
		"post your registered email to receive a reset link", nil)
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}

	link, err := h.service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("forgot password", slog.Any("error", err))
		httpx.Internal(w)
		return
	}

	// Same message for known and unknown emails.
	var data any
	if link != "" {
		data = map[string]string{"resetLink": link}
	}
	httpx.SuccessMessage(w, http.StatusOK, "reset link sent to your email", data)
}

func (h *Handler) showResetPassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resetUserID(w, r)
	if !ok {
		return
	}
	user, err := h.service.ValidateReset(r.Context(), userID, chi.URLParam(r, "token"))
	if err != nil {
		h.failReset(w, err)
		return
	}
	httpx.Success(w, http.StatusOK, map[string]string{"email": user.Email})
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resetUserID(w, r)
	if !ok {
		return
	}
	var req ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}

	if err := h.service.ResetPassword(r.Context(), userID, chi.URLParam(r, "token"), req.Password); err != nil {
		h.failReset(w, err)
		return
	}
	httpx.SuccessMessage(w, http.StatusOK, "password reset successfully", nil)
}

func (h *Handler) resetUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func (h *Handler) failReset(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "user not found")
	case errors.Is(err, shared.ErrInvalidToken):
		httpx.Fail(w, http.StatusBadRequest, "invalid token")
	default:
		h.logger.Error("reset password", slog.Any("error", err))
		httpx.Internal(w)
	}
}

package users

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/AhmedDR200/Library-API/internal/auth"
	"github.com/AhmedDR200/Library-API/internal/platform/httpx"
	"github.com/AhmedDR200/Library-API/internal/shared"
)

// Handler wires HTTP endpoints for user management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     *auth.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard *auth.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// MountRoutes registers user routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.RequireAdmin).Get("/users", h.list)
	r.Route("/users/{id}", func(r chi.Router) {
		r.Use(h.guard.RequireOwnerOrAdmin("id"))
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Delete("/", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.Internal(w)
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{"users": list})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get user")
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}
	user, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, err, "update user")
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "delete user")
		return
	}
	httpx.SuccessMessage(w, http.StatusOK, "user deleted successfully", nil)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "user not found")
	case errors.Is(err, shared.ErrDuplicateEmail):
		httpx.Fail(w, http.StatusBadRequest, "email already in use")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Internal(w)
	}
}

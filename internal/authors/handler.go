package authors

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

const defaultPerPage = 10

// Handler wires HTTP endpoints for the authors catalog.
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

// MountRoutes registers author routes. Reads are public, mutations are
// admin-gated.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/authors", h.list)
	r.Get("/authors/{id}", h.get)
	r.With(h.guard.RequireAdmin).Post("/authors", h.create)
	r.With(h.guard.RequireAdmin).Put("/authors/{id}", h.update)
	r.With(h.guard.RequireAdmin).Delete("/authors/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("pageNumber"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	list, meta, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		h.logger.Error("list authors", slog.Any("error", err))
		httpx.Internal(w)
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{"authors": list, "pagination": meta})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	author, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get author")
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{"author": author})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateAuthorRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}
	author, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create author", slog.Any("error", err))
		httpx.Internal(w)
		return
	}
	httpx.Success(w, http.StatusCreated, map[string]any{"author": author})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req UpdateAuthorRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}
	author, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, err, "update author")
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{"author": author})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "delete author")
		return
	}
	httpx.SuccessMessage(w, http.StatusOK, "author deleted successfully", nil)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid author id")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Fail(w, http.StatusNotFound, "author not found")
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.Internal(w)
}

package books

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

// Handler wires HTTP endpoints for the books catalog.
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

// MountRoutes registers book routes. Reads are public, mutations are
// admin-gated.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/books", h.list)
	r.Get("/books/{id}", h.get)
	r.With(h.guard.RequireAdmin).Post("/books", h.create)
	r.With(h.guard.RequireAdmin).Put("/books/{id}", h.update)
	r.With(h.guard.RequireAdmin).Delete("/books/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list books", slog.Any("error", err))
		httpx.Internal(w)
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{"books": list})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	book, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, "get book")
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{"book": book})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}
	book, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, err, "create book")
		return
	}
	httpx.Success(w, http.StatusCreated, map[string]any{"book": book})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req UpdateBookRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}
	book, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, err, "update book")
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{"book": book})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "delete book")
		return
	}
	httpx.SuccessMessage(w, http.StatusOK, "book deleted successfully", nil)
}

func parseFilter(r *http.Request) (ListFilter, error) {
	var filter ListFilter
	q := r.URL.Query()
	price := func(name string) (*float64, error) {
		raw := q.Get(name)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("invalid " + name)
		}
		return &v, nil
	}
	rate := func(name string) (*int, error) {
		raw := q.Get(name)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("invalid " + name)
		}
		return &v, nil
	}

	var err error
	if filter.MinPrice, err = price("minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = price("maxPrice"); err != nil {
		return filter, err
	}
	if filter.MinRate, err = rate("minRate"); err != nil {
		return filter, err
	}
	if filter.MaxRate, err = rate("maxRate"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid book id")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "book not found")
	case errors.Is(err, ErrUnknownAuthor):
		httpx.Fail(w, http.StatusBadRequest, "author does not exist")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Internal(w)
	}
}

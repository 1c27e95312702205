// Package uploads stores book cover and author images on local disk.
package uploads

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AhmedDR200/Library-API/internal/auth"
	"github.com/AhmedDR200/Library-API/internal/platform/httpx"
)

const maxUploadBytes = 8 << 20

// Handler accepts multipart image uploads.
type Handler struct {
	logger *slog.Logger
	guard  *auth.Middleware
	dir    string
}

// NewHandler constructs a Handler storing files under dir.
func NewHandler(logger *slog.Logger, guard *auth.Middleware, dir string) *Handler {
	return &Handler{logger: logger, guard: guard, dir: dir}
}

// MountRoutes registers the upload route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.RequireAdmin).Post("/upload", h.upload)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	name := uuid.NewString() + "-" + sanitizeFilename(header.Filename)
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		h.logger.Error("create upload dir", slog.Any("error", err))
		httpx.Internal(w)
		return
	}
	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		h.logger.Error("create upload file", slog.Any("error", err))
		httpx.Internal(w)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.Error("write upload file", slog.Any("error", err))
		httpx.Internal(w)
		return
	}

	httpx.SuccessMessage(w, http.StatusOK, "file uploaded successfully",
		map[string]string{"filename": name})
}

// sanitizeFilename strips path components and normalises the name the
// way the public image URLs expect.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

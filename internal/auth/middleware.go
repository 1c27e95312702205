package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedDR200/Library-API/internal/platform/httpx"
)

// TokenHeader is the request header carrying the bearer token. The plain
// `token` header is kept for compatibility with existing clients instead
// of the standard Authorization scheme.
const TokenHeader = "token"

type claimsContextKey struct{}

// ContextWithClaims stores verified session claims in the context.
func ContextWithClaims(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts session claims from the context.
func ClaimsFromContext(ctx context.Context) *SessionClaims {
	claims, _ := ctx.Value(claimsContextKey{}).(*SessionClaims)
	return claims
}

// Middleware gates protected routes on a verified session token.
type Middleware struct {
	tokens *TokenService
	logger *slog.Logger
}

// NewMiddleware constructs the access guard middleware.
func NewMiddleware(tokens *TokenService, logger *slog.Logger) *Middleware {
	return &Middleware{tokens: tokens, logger: logger}
}

// Authenticate verifies the token header and attaches the claims to the
// request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(TokenHeader)
		if raw == "" {
			httpx.Fail(w, http.StatusBadRequest, "token not provided")
			return
		}
		claims, err := m.tokens.VerifySession(raw)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid token")
			return
		}
		ctx := ContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin permits only requests whose claims carry the admin flag.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || !claims.IsAdmin {
			httpx.Fail(w, http.StatusForbidden, "only admin can access this data")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RequireOwnerOrAdmin permits requests whose authenticated id matches the
// named URL parameter, or whose claims carry the admin flag.
func (m *Middleware) RequireOwnerOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				httpx.Fail(w, http.StatusForbidden, "you are not allowed to perform this action")
				return
			}
			targetID, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "invalid "+param)
				return
			}
			if claims.UserID != targetID && !claims.IsAdmin {
				httpx.Fail(w, http.StatusForbidden, "you are not allowed to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

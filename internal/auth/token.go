package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AhmedDR200/Library-API/internal/shared"
)

// SessionClaims is the payload of a bearer session token. IsAdmin is a
// snapshot at issuance and is trusted for the token's full lifetime.
type SessionClaims struct {
	UserID  int64 `json:"id"`
	IsAdmin bool  `json:"isAdmin"`
	jwt.RegisteredClaims
}

// ResetClaims is the payload of a password-reset token.
type ResetClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited tokens.
type TokenService struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

// NewTokenService constructs a TokenService around a server-wide secret.
func NewTokenService(secret []byte, sessionTTL, resetTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     secret,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
		now:        time.Now,
	}
}

// IssueSession signs a session token for the given user.
func (t *TokenService) IssueSession(userID int64, isAdmin bool) (string, error) {
	now := t.now()
	claims := SessionClaims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// VerifySession validates signature and expiry and returns the claims.
func (t *TokenService) VerifySession(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid {
		return nil, shared.ErrInvalidToken
	}
	return claims, nil
}

// IssueReset signs a one-time password-reset token for the given user.
// The signing secret includes the user's current password hash, so the
// token stops verifying as soon as the password changes.
func (t *TokenService) IssueReset(userID int64, email, passwordHash string) (string, error) {
	now := t.now()
	claims := ResetClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.resetTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.resetSecret(passwordHash))
}

// VerifyReset validates a reset token against the user's current password
// hash. A token issued before a password change fails here.
func (t *TokenService) VerifyReset(token, passwordHash string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.resetSecret(passwordHash), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid {
		return nil, shared.ErrInvalidToken
	}
	return claims, nil
}

// resetSecret derives the composite per-user secret.
func (t *TokenService) resetSecret(passwordHash string) []byte {
	secret := make([]byte, 0, len(t.secret)+len(passwordHash))
	secret = append(secret, t.secret...)
	secret = append(secret, passwordHash...)
	return secret
}

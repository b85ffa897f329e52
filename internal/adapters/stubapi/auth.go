package stubapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"atlas_travel/internal/domain"
)

const tokenTTL = 24 * time.Hour

// issueToken signs an HS256 token for the authenticated admin.
func (s *Server) issueToken(u domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		Issuer:    "atlas-stub",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// verifyToken parses the bearer token and resolves its subject.
func (s *Server) verifyToken(raw string) (domain.User, bool) {
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return domain.User{}, false
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return domain.User{}, false
	}
	return s.store.User(claims.Subject)
}

// callerUser extracts the authenticated user from the request, if any.
func (s *Server) callerUser(r *http.Request) (domain.User, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return domain.User{}, false
	}
	return s.verifyToken(strings.TrimPrefix(h, "Bearer "))
}

// requireAuth guards the admin routes.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.callerUser(r); !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

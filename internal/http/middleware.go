package http

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iEkal8fGe/warehouse/internal/auth"
	"github.com/iEkal8fGe/warehouse/internal/http/handlers"
	rl "github.com/iEkal8fGe/warehouse/internal/http/rate_limiter"
)

func errorDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// RequestLogger emits one line per request with method, path, and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   clientIP(r),
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// AuthMiddleware validates the bearer token, rejects revoked and inactive
// sessions, and stores the decoded claims on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			errorDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			errorDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		if revoker := handlers.TokenRevoker(); revoker != nil {
			revoked, err := revoker.IsRevoked(r.Context(), claims.JTI)
			if err != nil {
				log.WithError(err).Warn("revocation check failed")
				errorDetail(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}
			if revoked {
				errorDetail(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}
		}

		user, err := handlers.UserRepo().GetByID(r.Context(), claims.UserID)
		if err != nil {
			errorDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		if !user.IsActive {
			errorDetail(w, http.StatusBadRequest, "Inactive user")
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.ContextWithClaims(r.Context(), claims)))
	})
}

// RequireAdmin rejects requests whose claims do not carry the admin role.
// It must run after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := handlers.ClaimsFromContext(r.Context())
		if !ok || !claims.Role.IsAdmin() {
			errorDetail(w, http.StatusForbidden, "Not enough permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginRateLimit applies the per-IP budget to credential endpoints.
func LoginRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := rl.GetVisitor(clientIP(r))
		if !limiter.Allow() {
			errorDetail(w, http.StatusTooManyRequests, "Too many login attempts")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAPIKey gates the external sync endpoints behind a shared key.
func RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := handlers.ExternalAPIKey()
		if key == "" || r.Header.Get("X-API-Key") != key {
			errorDetail(w, http.StatusForbidden, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

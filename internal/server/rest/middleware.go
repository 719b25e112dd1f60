package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/daylog/internal/logging"
	"github.com/dmitrijs2005/daylog/internal/server/auth"
)

type contextKey string

const ownerKey contextKey = "owner"

// SessionCookieName is the cookie the browser carries between requests.
const SessionCookieName = "session"

// OwnerFromContext returns the authenticated owner identity set by
// AuthMiddleware.
func OwnerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey).(string)
	return owner
}

// AuthMiddleware validates the session cookie and stores the owner identity
// in the request context.
func AuthMiddleware(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "missing session")
				return
			}

			username, err := auth.GetUsernameFromToken(cookie.Value, secretKey)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggerMiddleware logs one line per request with method, path, status and
// duration.
func LoggerMiddleware(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

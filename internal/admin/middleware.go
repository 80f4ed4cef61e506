package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/studyhall/studyhall/internal/platform/httpx"
	"github.com/studyhall/studyhall/internal/shared"
)

// RequireAdmin gates protected routes behind a valid admin session.
// A missing artifact, an unknown/expired/corrupt one, a non-admin
// session and a session whose admin no longer exists all end in 403;
// the response does not reveal which check failed beyond presence.
// On success the resolved session is placed in the request context and
// handlers must take identity from there.
func RequireAdmin(sessions *shared.SessionManager, service *Service, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Resolve(r.Context(), r)
			if err != nil {
				switch {
				case errors.Is(err, shared.ErrNoSession):
					httpx.Error(w, http.StatusForbidden, "Admin access required")
				case errors.Is(err, shared.ErrSessionInvalid):
					httpx.Error(w, http.StatusForbidden, "Invalid admin session")
				default:
					logger.Error("resolve session", slog.Any("error", err))
					httpx.Error(w, http.StatusInternalServerError, "Internal Server Error")
				}
				return
			}
			if sess.Role != shared.RoleAdmin {
				httpx.Error(w, http.StatusForbidden, "Admin access required")
				return
			}
			if _, err := service.GetAdmin(r.Context(), sess.AccountID); err != nil {
				if errors.Is(err, httpx.ErrNotFound) {
					httpx.Error(w, http.StatusForbidden, "Invalid admin session")
					return
				}
				logger.Error("load admin for session", slog.Any("error", err))
				httpx.Error(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithSession(r.Context(), sess)))
		})
	}
}

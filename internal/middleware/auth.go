package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
	"github.com/AnshRaj112/blogverse-backend/internal/services"
)

// TokenVerifier is the part of services.TokenService the gate needs.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// RequireToken rejects requests without a valid session cookie with 401 and otherwise puts
// the decoded identity in the request context.
func RequireToken(tokens TokenVerifier, denylist services.TokenDenylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(services.TokenCookieName)
			if err != nil || cookie.Value == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			id, err := tokens.Verify(cookie.Value)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			revoked, err := denylist.IsRevoked(r.Context(), id.TokenID)
			if err != nil {
				// Redis outage: let the request through rather than lock everyone out.
				log.Printf("token denylist lookup failed: %v", err)
			} else if revoked {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

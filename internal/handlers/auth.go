package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
	"github.com/AnshRaj112/blogverse-backend/internal/services"
)

// IssueToken handles POST /jwt. The body is the signed-in user as the client knows it.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var user models.Identity
	if !decodeBody(w, r, &user) {
		return
	}

	token, _, err := h.tokens.Issue(user)
	if errors.Is(err, services.ErrMissingEmail) {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}
	if err != nil {
		log.Printf("issue token: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Printf("Issued token for %s", user.Email)
	http.SetCookie(w, h.tokenCookie(token, 0))
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Logout handles POST /logout. It always clears the cookie; a still-valid token is also
// revoked so a copied cookie stops working.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(services.TokenCookieName); err == nil && cookie.Value != "" {
		if id, err := h.tokens.Verify(cookie.Value); err == nil {
			ctx, cancel := storeContext(r)
			if err := h.denylist.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
				log.Printf("revoke token for %s: %v", id.Email, err)
			}
			cancel()
			log.Printf("Logging out %s", id.Email)
		}
	}

	http.SetCookie(w, h.tokenCookie("", -1))
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// tokenCookie builds the session cookie. The client runs on another site, so the cookie
// must be SameSite=None, which browsers only accept together with Secure.
func (h *Handler) tokenCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     services.TokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

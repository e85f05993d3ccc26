package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/blogverse-backend/internal/middleware"
	"github.com/AnshRaj112/blogverse-backend/internal/models"
)

// CreateWishlistItem handles POST /create-wishlist.
func (h *Handler) CreateWishlistItem(w http.ResponseWriter, r *http.Request) {
	var item models.WishlistItem
	if !decodeBody(w, r, &item) {
		return
	}
	item.ID = primitive.NilObjectID

	ctx, cancel := storeContext(r)
	defer cancel()

	result, err := h.store.CreateWishlistItem(ctx, &item)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// authorizeOwner compares the requested owner with the caller. A present owner must equal
// the caller's email, even when it is empty. An absent owner means "no owner filter".
//
// NOTE: without ?email= any signed-in user gets every wishlist entry. The web client always
// sends its own email, and this behaviour is kept for compatibility.
func authorizeOwner(id models.Identity, owner string, present bool) bool {
	return !present || owner == id.Email
}

// Wishlist handles GET /wishlist?email= (gated).
func (h *Handler) Wishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	query := r.URL.Query()
	owner := query.Get("email")
	if !authorizeOwner(id, owner, query.Has("email")) {
		writeMessage(w, http.StatusForbidden, "Forbidden access")
		return
	}

	ctx, cancel := storeContext(r)
	defer cancel()

	items, err := h.store.ListWishlist(ctx, owner)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// RemoveWishlistItem handles DELETE /remove-wishlist/{id}.
func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	result, err := h.store.DeleteWishlistItem(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

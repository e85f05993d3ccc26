package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
)

// AddComment handles POST /add-blog-comment.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var comment models.Comment
	if !decodeBody(w, r, &comment) {
		return
	}
	comment.ID = primitive.NilObjectID
	added := h.now().UTC()
	comment.AddedTime = &added

	ctx, cancel := storeContext(r)
	defer cancel()

	result, err := h.store.CreateComment(ctx, &comment)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CommentsForPost handles GET /comment/{id} where id is the post id.
func (h *Handler) CommentsForPost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	comments, err := h.store.ListCommentsByPost(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// DeleteComment handles DELETE /delete-comment/{id}.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	result, err := h.store.DeleteComment(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

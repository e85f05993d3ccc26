package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
	"github.com/AnshRaj112/blogverse-backend/internal/services"
	"github.com/AnshRaj112/blogverse-backend/internal/store"
)

// CreateBlog handles POST /create-new-blog. The server assigns the id and addedTime.
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var blog models.Blog
	if !decodeBody(w, r, &blog) {
		return
	}
	blog.ID = primitive.NilObjectID
	added := h.now().UTC()
	blog.AddedTime = &added

	ctx, cancel := storeContext(r)
	defer cancel()

	result, err := h.store.CreateBlog(ctx, &blog)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) listBlogs(w http.ResponseWriter, r *http.Request, q store.BlogQuery) {
	ctx, cancel := storeContext(r)
	defer cancel()

	blogs, err := h.store.ListBlogs(ctx, q)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

// RecentBlogs handles GET /recent-blogs: the newest posts first.
func (h *Handler) RecentBlogs(w http.ResponseWriter, r *http.Request) {
	h.listBlogs(w, r, store.BlogQuery{NewestFirst: true, Limit: services.RecentBlogsLimit})
}

// AllBlogs handles GET /all-blogs?q=&category=.
func (h *Handler) AllBlogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	h.listBlogs(w, r, store.BlogQuery{
		Filter: services.BuildBlogFilter(query.Get("q"), query.Get("category")),
	})
}

// TrendingBlogs handles GET /trending-blogs.
func (h *Handler) TrendingBlogs(w http.ResponseWriter, r *http.Request) {
	h.listBlogs(w, r, store.BlogQuery{Skip: services.TrendingBlogsSkip, Limit: services.TrendingBlogsLimit})
}

// BannerBlogs handles GET /banner-blogs.
func (h *Handler) BannerBlogs(w http.ResponseWriter, r *http.Request) {
	h.listBlogs(w, r, store.BlogQuery{Limit: services.BannerBlogsLimit})
}

// FeaturedBlogs handles GET /featured-blogs.
func (h *Handler) FeaturedBlogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	blogs, err := h.store.ListBlogs(ctx, store.BlogQuery{})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, services.FeaturedBlogs(blogs, services.FeaturedBlogsLimit))
}

// BlogDetails handles GET /blog-details/{id} (gated). A missing post is returned as null.
func (h *Handler) BlogDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	blog, err := h.store.GetBlog(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

// BlogByID handles GET /blog/{id}. The client expects an array with zero or one post.
func (h *Handler) BlogByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	blog, err := h.store.GetBlog(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	blogs := []models.Blog{}
	if blog != nil {
		blogs = append(blogs, *blog)
	}
	writeJSON(w, http.StatusOK, blogs)
}

// UpdateBlog handles PUT /update-blog/{id} (gated) with upsert semantics.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var update models.BlogUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	ctx, cancel := storeContext(r)
	defer cancel()

	result, err := h.store.UpsertBlog(ctx, chi.URLParam(r, "id"), update)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

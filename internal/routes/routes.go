package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/AnshRaj112/blogverse-backend/internal/handlers"
	"github.com/AnshRaj112/blogverse-backend/internal/middleware"
)

// NewRouter builds the full HTTP surface. extra middlewares (rate limits, security headers)
// run after CORS so preflight requests are never rate limited.
func NewRouter(h *handlers.Handler, requireToken func(http.Handler) http.Handler, allowedOrigins []string, extra ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.CORS(allowedOrigins))
	for _, mw := range extra {
		r.Use(mw)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server is running."))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		SetupRoutes(r, h, requireToken)
	})
	return r
}

func SetupRoutes(r chi.Router, h *handlers.Handler, requireToken func(http.Handler) http.Handler) {
	// Auth routes
	r.Post("/jwt", h.IssueToken)
	r.Post("/logout", h.Logout)

	// Blog routes
	r.Post("/create-new-blog", h.CreateBlog)
	r.Get("/recent-blogs", h.RecentBlogs)
	r.Get("/all-blogs", h.AllBlogs)
	r.Get("/featured-blogs", h.FeaturedBlogs)
	r.Get("/trending-blogs", h.TrendingBlogs)
	r.Get("/banner-blogs", h.BannerBlogs)
	r.Get("/blog/{id}", h.BlogByID)

	// Comment routes
	r.Post("/add-blog-comment", h.AddComment)
	r.Get("/comment/{id}", h.CommentsForPost)
	r.Delete("/delete-comment/{id}", h.DeleteComment)

	// Wishlist routes
	r.Post("/create-wishlist", h.CreateWishlistItem)
	r.Delete("/remove-wishlist/{id}", h.RemoveWishlistItem)

	// Routes behind the session token gate
	r.Group(func(r chi.Router) {
		r.Use(requireToken)
		r.Get("/blog-details/{id}", h.BlogDetails)
		r.Put("/update-blog/{id}", h.UpdateBlog)
		r.Get("/wishlist", h.Wishlist)
		r.Post("/upload-image", h.UploadImage)
	})
}

package store

import (
	"context"
	"errors"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
)

var (
	ErrInvalidID = errors.New("invalid id")
)

// Collection names inside the blog database.
const (
	BlogCollection     = "blogCollection"
	CommentCollection  = "commentCollection"
	WishlistCollection = "wishlistCollection"
)

// BlogFilter narrows a blog listing. Empty fields do not filter.
type BlogFilter struct {
	// TitleContains is matched case-insensitively as a literal substring.
	TitleContains string
	Category      string
}

// BlogQuery describes one page of a blog listing.
type BlogQuery struct {
	Filter BlogFilter
	// NewestFirst sorts by addedTime descending; otherwise natural (insertion) order.
	NewestFirst bool
	Skip        int64
	Limit       int64 // 0 means no limit
}

type Store interface {
	BlogStore
	CommentStore
	WishlistStore
	EnsureIndexes(ctx context.Context) error
}

type BlogStore interface {
	CreateBlog(ctx context.Context, blog *models.Blog) (models.InsertResult, error)
	ListBlogs(ctx context.Context, q BlogQuery) ([]models.Blog, error)
	// GetBlog returns nil, nil when no post has the id.
	GetBlog(ctx context.Context, id string) (*models.Blog, error)
	UpsertBlog(ctx context.Context, id string, update models.BlogUpdate) (models.UpdateResult, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) (models.InsertResult, error)
	ListCommentsByPost(ctx context.Context, postID string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id string) (models.DeleteResult, error)
}

type WishlistStore interface {
	CreateWishlistItem(ctx context.Context, item *models.WishlistItem) (models.InsertResult, error)
	// ListWishlist scopes to owner when it is non-empty and returns every entry otherwise.
	ListWishlist(ctx context.Context, owner string) ([]models.WishlistItem, error)
	DeleteWishlistItem(ctx context.Context, id string) (models.DeleteResult, error)
}

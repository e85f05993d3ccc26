// Package memstore is an in-process store.Store with the same query semantics as
// mongostore. It backs the tests and STORE_DRIVER=memory local runs.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
	"github.com/AnshRaj112/blogverse-backend/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	blogs    []models.Blog
	comments []models.Comment
	wishlist []models.WishlistItem
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) EnsureIndexes(ctx context.Context) error { return nil }

func (s *Store) CreateBlog(ctx context.Context, blog *models.Blog) (models.InsertResult, error) {
	if blog.ID.IsZero() {
		blog.ID = primitive.NewObjectID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blogs = append(s.blogs, *blog)
	return models.InsertResult{Acknowledged: true, InsertedID: blog.ID}, nil
}

func matchesBlog(b models.Blog, f store.BlogFilter) bool {
	if f.Category != "" && b.Category != f.Category {
		return false
	}
	if f.TitleContains != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(f.TitleContains)) {
		return false
	}
	return true
}

func (s *Store) ListBlogs(ctx context.Context, q store.BlogQuery) ([]models.Blog, error) {
	s.mu.RLock()
	out := []models.Blog{}
	for _, b := range s.blogs {
		if matchesBlog(b, q.Filter) {
			out = append(out, b)
		}
	}
	s.mu.RUnlock()

	if q.NewestFirst {
		// Missing addedTime sorts last, as it does in Mongo for a descending sort.
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].AddedTime, out[j].AddedTime
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			return a.After(*b)
		})
	}

	if q.Skip > 0 {
		if q.Skip >= int64(len(out)) {
			return []models.Blog{}, nil
		}
		out = out[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < int64(len(out)) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Store) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.blogs {
		if b.ID == oid {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) UpsertBlog(ctx context.Context, id string, u models.BlogUpdate) (models.UpdateResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}

	apply := func(b *models.Blog) {
		b.Title = u.Title
		b.BlogImage = u.BlogImage
		b.Category = u.Category
		b.ShortDescription = u.ShortDescription
		b.LongDescription = u.LongDescription
		b.UserName = u.DisplayName
		b.UserMail = u.Email
		b.UserPhoto = u.PhotoURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.blogs {
		if s.blogs[i].ID != oid {
			continue
		}
		before := s.blogs[i]
		apply(&s.blogs[i])
		var modified int64
		if !sameBlog(before, s.blogs[i]) {
			modified = 1
		}
		return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
	}

	b := models.Blog{ID: oid}
	apply(&b)
	s.blogs = append(s.blogs, b)
	return models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &oid}, nil
}

func sameBlog(a, b models.Blog) bool {
	if (a.AddedTime == nil) != (b.AddedTime == nil) {
		return false
	}
	if a.AddedTime != nil && !a.AddedTime.Equal(*b.AddedTime) {
		return false
	}
	a.AddedTime, b.AddedTime = nil, nil
	return a == b
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) (models.InsertResult, error) {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, *comment)
	return models.InsertResult{Acknowledged: true, InsertedID: comment.ID}, nil
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) (models.DeleteResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.comments {
		if c.ID == oid {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return models.DeleteResult{Acknowledged: true}, nil
}

func (s *Store) CreateWishlistItem(ctx context.Context, item *models.WishlistItem) (models.InsertResult, error) {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = append(s.wishlist, *item)
	return models.InsertResult{Acknowledged: true, InsertedID: item.ID}, nil
}

func (s *Store) ListWishlist(ctx context.Context, owner string) ([]models.WishlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.WishlistItem{}
	for _, w := range s.wishlist {
		if owner == "" || w.UserMail == owner {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *Store) DeleteWishlistItem(ctx context.Context, id string) (models.DeleteResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.wishlist {
		if w.ID == oid {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return models.DeleteResult{Acknowledged: true}, nil
}

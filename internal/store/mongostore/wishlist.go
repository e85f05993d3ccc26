package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
)

func (s *Store) CreateWishlistItem(ctx context.Context, item *models.WishlistItem) (models.InsertResult, error) {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	res, err := s.wishlist.InsertOne(ctx, item)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert wishlist item: %w", err)
	}
	return insertResult(res), nil
}

func (s *Store) ListWishlist(ctx context.Context, owner string) ([]models.WishlistItem, error) {
	filter := bson.M{}
	if owner != "" {
		filter["userMail"] = owner
	}

	cursor, err := s.wishlist.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find wishlist: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.WishlistItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	return items, nil
}

func (s *Store) DeleteWishlistItem(ctx context.Context, id string) (models.DeleteResult, error) {
	return deleteOne(ctx, s.wishlist, id)
}

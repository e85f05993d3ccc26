// Package mongostore implements store.Store on top of the MongoDB Go driver.
package mongostore

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
	"github.com/AnshRaj112/blogverse-backend/internal/store"
)

type Store struct {
	blogs    *mongo.Collection
	comments *mongo.Collection
	wishlist *mongo.Collection
}

var _ store.Store = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{
		blogs:    db.Collection(store.BlogCollection),
		comments: db.Collection(store.CommentCollection),
		wishlist: db.Collection(store.WishlistCollection),
	}
}

// EnsureIndexes creates the indexes the listing routes rely on. Safe to call on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		col   *mongo.Collection
		model mongo.IndexModel
	}{
		{s.blogs, mongo.IndexModel{
			Keys:    bson.D{{Key: "addedTime", Value: -1}},
			Options: options.Index().SetName("idx_added_time"),
		}},
		{s.blogs, mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		}},
		{s.comments, mongo.IndexModel{
			Keys:    bson.D{{Key: "postID", Value: 1}},
			Options: options.Index().SetName("idx_post_id"),
		}},
		{s.wishlist, mongo.IndexModel{
			Keys:    bson.D{{Key: "userMail", Value: 1}},
			Options: options.Index().SetName("idx_user_mail"),
		}},
	}

	for _, idx := range indexes {
		if _, err := idx.col.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.col.Name(), err)
		}
	}
	return nil
}

// blogFilter translates a store.BlogFilter into a Mongo query document.
func blogFilter(f store.BlogFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.TitleContains != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(f.TitleContains),
			Options: "i",
		}}
	}
	return filter
}

func insertResult(res *mongo.InsertOneResult) models.InsertResult {
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return models.InsertResult{Acknowledged: true, InsertedID: oid}
}

func deleteOne(ctx context.Context, col *mongo.Collection, id string) (models.DeleteResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete from %s: %w", col.Name(), err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

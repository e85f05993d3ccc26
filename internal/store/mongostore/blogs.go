package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
	"github.com/AnshRaj112/blogverse-backend/internal/store"
)

func (s *Store) CreateBlog(ctx context.Context, blog *models.Blog) (models.InsertResult, error) {
	if blog.ID.IsZero() {
		blog.ID = primitive.NewObjectID()
	}
	res, err := s.blogs.InsertOne(ctx, blog)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert blog: %w", err)
	}
	return insertResult(res), nil
}

func (s *Store) ListBlogs(ctx context.Context, q store.BlogQuery) ([]models.Blog, error) {
	findOptions := options.Find()
	if q.NewestFirst {
		findOptions.SetSort(bson.M{"addedTime": -1})
	}
	if q.Skip > 0 {
		findOptions.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		findOptions.SetLimit(q.Limit)
	}

	cursor, err := s.blogs.Find(ctx, blogFilter(q.Filter), findOptions)
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	defer cursor.Close(ctx)

	blogs := []models.Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return blogs, nil
}

func (s *Store) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return nil, err
	}

	var blog models.Blog
	err = s.blogs.FindOne(ctx, bson.M{"_id": oid}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog %s: %w", id, err)
	}
	return &blog, nil
}

// UpsertBlog replaces the editable fields of a post, creating the post when the id is unknown.
func (s *Store) UpsertBlog(ctx context.Context, id string, u models.BlogUpdate) (models.UpdateResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}

	update := bson.M{"$set": bson.M{
		"title":            u.Title,
		"blogImage":        u.BlogImage,
		"category":         u.Category,
		"shortDescription": u.ShortDescription,
		"longDescription":  u.LongDescription,
		"userName":         u.DisplayName,
		"userMail":         u.Email,
		"userPhoto":        u.PhotoURL,
	}}

	res, err := s.blogs.UpdateOne(ctx, bson.M{"_id": oid}, update, options.Update().SetUpsert(true))
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("upsert blog %s: %w", id, err)
	}

	result := models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if upserted, ok := res.UpsertedID.(primitive.ObjectID); ok {
		result.UpsertedID = &upserted
	}
	return result, nil
}

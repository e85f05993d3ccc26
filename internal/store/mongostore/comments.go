package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
)

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) (models.InsertResult, error) {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	res, err := s.comments.InsertOne(ctx, comment)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert comment: %w", err)
	}
	return insertResult(res), nil
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	cursor, err := s.comments.Find(ctx, bson.M{"postID": postID})
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes one comment. The post it belongs to is not touched.
func (s *Store) DeleteComment(ctx context.Context, id string) (models.DeleteResult, error) {
	return deleteOne(ctx, s.comments, id)
}

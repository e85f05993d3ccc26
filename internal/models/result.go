package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Write results are shaped like the driver results the web client was built against.

type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool                `json:"acknowledged"`
	MatchedCount  int64               `json:"matchedCount"`
	ModifiedCount int64               `json:"modifiedCount"`
	UpsertedCount int64               `json:"upsertedCount"`
	UpsertedID    *primitive.ObjectID `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

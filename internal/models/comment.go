package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment belongs to a blog post through PostID (the post's hex id, stored as a string).
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PostID    string             `bson:"postID" json:"postID"`
	Comment   string             `bson:"comment" json:"comment"`
	UserName  string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserMail  string             `bson:"userMail,omitempty" json:"userMail,omitempty"`
	UserPhoto string             `bson:"userPhoto,omitempty" json:"userPhoto,omitempty"`
	AddedTime *time.Time         `bson:"addedTime,omitempty" json:"addedTime,omitempty"`
}

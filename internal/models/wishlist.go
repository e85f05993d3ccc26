package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem links an owner (UserMail) to a blog post. The post fields are a snapshot
// taken by the client when the entry is created.
type WishlistItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserMail string             `bson:"userMail" json:"userMail"`
	BlogID   string             `bson:"blogId" json:"blogId"`

	Title            string `bson:"title,omitempty" json:"title,omitempty"`
	BlogImage        string `bson:"blogImage,omitempty" json:"blogImage,omitempty"`
	Category         string `bson:"category,omitempty" json:"category,omitempty"`
	ShortDescription string `bson:"shortDescription,omitempty" json:"shortDescription,omitempty"`
}

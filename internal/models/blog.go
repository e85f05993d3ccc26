package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a post in blogCollection. Field names match what the web client sends.
type Blog struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title            string             `bson:"title" json:"title"`
	BlogImage        string             `bson:"blogImage,omitempty" json:"blogImage,omitempty"`
	Category         string             `bson:"category" json:"category"`
	ShortDescription string             `bson:"shortDescription" json:"shortDescription"`
	LongDescription  string             `bson:"longDescription" json:"longDescription"`

	// Author
	UserName  string `bson:"userName,omitempty" json:"userName,omitempty"`
	UserMail  string `bson:"userMail,omitempty" json:"userMail,omitempty"`
	UserPhoto string `bson:"userPhoto,omitempty" json:"userPhoto,omitempty"`

	// Nil until the server stamps it on create. Upserted posts never get one.
	AddedTime *time.Time `bson:"addedTime,omitempty" json:"addedTime,omitempty"`
}

// BlogUpdate is the body of PUT /update-blog/{id}. The author fields arrive under the
// names the client's auth provider uses and are stored as userName/userMail/userPhoto.
type BlogUpdate struct {
	Title            string `json:"title"`
	BlogImage        string `json:"blogImage"`
	Category         string `json:"category"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
	DisplayName      string `json:"displayName"`
	Email            string `json:"email"`
	PhotoURL         string `json:"photoURL"`
}

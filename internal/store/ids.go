package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID converts a hex id from a URL into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

package models

import (
	"fmt"

	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID converts a 24-hex path parameter into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", hex, apierror.ErrInvalidID)
	}
	return id, nil
}

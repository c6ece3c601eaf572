package repository

import (
	"context"

	"github.com/eatsexchange/eats-exchange-server/internal/listing"
	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository is the storage contract for food listings. Each method is a
// single round-trip against the backing store.
type Repository interface {
	Find(ctx context.Context, q listing.Query) ([]*listing.Listing, error)
	Get(ctx context.Context, id primitive.ObjectID) (*listing.Listing, error)
	Insert(ctx context.Context, l *listing.Listing) (models.InsertAck, error)
	Upsert(ctx context.Context, id primitive.ObjectID, f listing.Fields) (models.UpdateAck, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteAck, error)
}

package repository

import (
	"context"

	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"github.com/eatsexchange/eats-exchange-server/internal/request"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository is the storage contract for pickup requests.
type Repository interface {
	Insert(ctx context.Context, r *request.Request) (models.InsertAck, error)
	ListByRequester(ctx context.Context, email string) ([]*request.Request, error)
	ListByFood(ctx context.Context, foodID string) ([]*request.Request, error)
	// SetStatus writes only the Status field and never upserts.
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.UpdateAck, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteAck, error)
}

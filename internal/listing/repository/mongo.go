package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"github.com/eatsexchange/eats-exchange-server/internal/listing"
	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores listings in the foods collection.
type MongoRepo struct {
	col *mongo.Collection
}

// NewMongoRepo wraps col and makes sure the listing indexes exist. Index
// creation failures are logged, not fatal: queries still work without them.
func NewMongoRepo(ctx context.Context, col *mongo.Collection) *MongoRepo {
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "Donator.Email", Value: 1}}},
		{Keys: bson.D{{Key: "ExpiredDateTime", Value: 1}}},
		{Keys: bson.D{{Key: "FoodQuantity", Value: -1}}},
	}
	if _, err := col.Indexes().CreateMany(ctx, idx); err != nil {
		logger.Warnf("foods: ensure indexes: %v", err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Find(ctx context.Context, q listing.Query) ([]*listing.Listing, error) {
	cur, err := m.col.Find(ctx, q.Filter(), q.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	out := []*listing.Listing{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) Get(ctx context.Context, id primitive.ObjectID) (*listing.Listing, error) {
	var l listing.Listing
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("listing %s: %w", id.Hex(), apierror.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", id.Hex(), err)
	}
	return &l, nil
}

func (m *MongoRepo) Insert(ctx context.Context, l *listing.Listing) (models.InsertAck, error) {
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	res, err := m.col.InsertOne(ctx, l)
	if err != nil {
		return models.InsertAck{}, fmt.Errorf("insert listing: %w", err)
	}
	return models.InsertAckFrom(res), nil
}

func (m *MongoRepo) Upsert(ctx context.Context, id primitive.ObjectID, f listing.Fields) (models.UpdateAck, error) {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": f}, options.Update().SetUpsert(true))
	if err != nil {
		return models.UpdateAck{}, fmt.Errorf("upsert listing %s: %w", id.Hex(), err)
	}
	return models.UpdateAckFrom(res), nil
}

func (m *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteAck, error) {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.DeleteAck{}, fmt.Errorf("delete listing %s: %w", id.Hex(), err)
	}
	return models.DeleteAckFrom(res), nil
}

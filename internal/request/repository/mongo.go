package repository

import (
	"context"
	"fmt"

	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"github.com/eatsexchange/eats-exchange-server/internal/request"
	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepo stores pickup requests in the requests collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) *MongoRepo {
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "Requester.Email", Value: 1}}},
		{Keys: bson.D{{Key: "FoodId", Value: 1}}},
	}
	if _, err := col.Indexes().CreateMany(ctx, idx); err != nil {
		logger.Warnf("requests: ensure indexes: %v", err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, r *request.Request) (models.InsertAck, error) {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	res, err := m.col.InsertOne(ctx, r)
	if err != nil {
		return models.InsertAck{}, fmt.Errorf("insert request: %w", err)
	}
	return models.InsertAckFrom(res), nil
}

func (m *MongoRepo) ListByRequester(ctx context.Context, email string) ([]*request.Request, error) {
	return m.find(ctx, bson.D{{Key: "Requester.Email", Value: email}})
}

func (m *MongoRepo) ListByFood(ctx context.Context, foodID string) ([]*request.Request, error) {
	return m.find(ctx, bson.D{{Key: "FoodId", Value: foodID}})
}

func (m *MongoRepo) find(ctx context.Context, filter bson.D) ([]*request.Request, error) {
	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find requests: %w", err)
	}
	out := []*request.Request{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.UpdateAck, error) {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"Status": status}})
	if err != nil {
		return models.UpdateAck{}, fmt.Errorf("update request %s: %w", id.Hex(), err)
	}
	return models.UpdateAckFrom(res), nil
}

func (m *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteAck, error) {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.DeleteAck{}, fmt.Errorf("delete request %s: %w", id.Hex(), err)
	}
	return models.DeleteAckFrom(res), nil
}

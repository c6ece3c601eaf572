package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/eatsexchange/eats-exchange-server/internal/database"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Runs against a real server only when MONGODB_TEST_URI is set.
func TestMongoRepo_Integration(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, database.Options{URI: uri, Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	col := client.Database("eatsExchangeTest_" + primitive.NewObjectID().Hex()).Collection(database.RequestsCollection)
	defer col.Database().Drop(context.Background())

	exercise(t, NewMongoRepo(ctx, col))

	n, err := col.CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"github.com/eatsexchange/eats-exchange-server/internal/listing"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestService_CreateDefaultsAndFreshID(t *testing.T) {
	svc := NewMemoryService()
	ctx := context.Background()
	forged := primitive.NewObjectID()
	l := &listing.Listing{ID: forged, FoodName: "Dal", FoodQuantity: 1, ExpiredDateTime: time.Now()}

	ack, err := svc.Create(ctx, l)
	require.NoError(t, err)
	require.NotEqual(t, forged.Hex(), ack.InsertedID)

	got, err := svc.Get(ctx, ack.InsertedID)
	require.NoError(t, err)
	require.Equal(t, listing.StatusAvailable, got.FoodStatus)
}

func TestService_MalformedIDs(t *testing.T) {
	svc := NewMemoryService()
	ctx := context.Background()

	_, err := svc.Get(ctx, "nope")
	require.ErrorIs(t, err, apierror.ErrInvalidID)
	_, err = svc.Replace(ctx, "nope", listing.Fields{})
	require.ErrorIs(t, err, apierror.ErrInvalidID)
	_, err = svc.Delete(ctx, "nope")
	require.ErrorIs(t, err, apierror.ErrInvalidID)
}

func TestService_GetMissing(t *testing.T) {
	_, err := NewMemoryService().Get(context.Background(), primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, apierror.ErrNotFound)
}

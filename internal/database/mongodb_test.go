package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestClientOptions_StableAPI(t *testing.T) {
	opts := clientOptions(Options{URI: "mongodb://localhost:27017", StableAPI: true})
	require.NotNil(t, opts.ServerAPIOptions)
	require.Equal(t, options.ServerAPIVersion1, opts.ServerAPIOptions.ServerAPIVersion)
	require.True(t, *opts.ServerAPIOptions.Strict)
	require.True(t, *opts.ServerAPIOptions.DeprecationErrors)

	plain := clientOptions(Options{URI: "mongodb://localhost:27017"})
	require.Nil(t, plain.ServerAPIOptions)
}

func TestConnectWithRetry_InvalidURI(t *testing.T) {
	_, err := ConnectWithRetry(context.Background(), Options{URI: "not-a-mongo-uri", Timeout: time.Second}, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "after 1 attempts")
}

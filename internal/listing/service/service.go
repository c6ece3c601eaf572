package service

import (
	"context"

	"github.com/eatsexchange/eats-exchange-server/internal/listing"
	"github.com/eatsexchange/eats-exchange-server/internal/listing/repository"
	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service defines the listing operations used by the handler layer. Ids are
// taken as the raw path parameter; a malformed one yields apierror.ErrInvalidID.
type Service interface {
	List(ctx context.Context, q listing.Query) ([]*listing.Listing, error)
	Get(ctx context.Context, id string) (*listing.Listing, error)
	Create(ctx context.Context, l *listing.Listing) (models.InsertAck, error)
	Replace(ctx context.Context, id string, f listing.Fields) (models.UpdateAck, error)
	Delete(ctx context.Context, id string) (models.DeleteAck, error)
}

// New returns a Service over repo.
func New(repo repository.Repository) Service {
	return &service{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller owns the client the collection came from.
func NewMongoService(ctx context.Context, col *mongo.Collection) Service {
	return New(repository.NewMongoRepo(ctx, col))
}

type service struct {
	repo repository.Repository
}

func (s *service) List(ctx context.Context, q listing.Query) ([]*listing.Listing, error) {
	return s.repo.Find(ctx, q)
}

func (s *service) Get(ctx context.Context, id string) (*listing.Listing, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

// Create stores l under a fresh id; any client-supplied id is discarded.
func (s *service) Create(ctx context.Context, l *listing.Listing) (models.InsertAck, error) {
	l.ID = primitive.NilObjectID
	if l.FoodStatus == "" {
		l.FoodStatus = listing.StatusAvailable
	}
	return s.repo.Insert(ctx, l)
}

func (s *service) Replace(ctx context.Context, id string, f listing.Fields) (models.UpdateAck, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return models.UpdateAck{}, err
	}
	return s.repo.Upsert(ctx, oid, f)
}

func (s *service) Delete(ctx context.Context, id string) (models.DeleteAck, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return models.DeleteAck{}, err
	}
	return s.repo.Delete(ctx, oid)
}

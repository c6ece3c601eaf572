package service

import (
	"context"
	"time"

	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"github.com/eatsexchange/eats-exchange-server/internal/request"
	"github.com/eatsexchange/eats-exchange-server/internal/request/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service defines the pickup request operations used by the handler layer.
type Service interface {
	Create(ctx context.Context, r *request.Request) (models.InsertAck, error)
	ListForRequester(ctx context.Context, email string) ([]*request.Request, error)
	ListForFood(ctx context.Context, foodID string) ([]*request.Request, error)
	UpdateStatus(ctx context.Context, id, status string) (models.UpdateAck, error)
	Delete(ctx context.Context, id string) (models.DeleteAck, error)
}

func New(repo repository.Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

func NewMongoService(ctx context.Context, col *mongo.Collection) Service {
	return New(repository.NewMongoRepo(ctx, col))
}

type service struct {
	repo repository.Repository
	now  func() time.Time
}

// Create stores r under a fresh id. A missing status becomes pending and a
// missing request date becomes now.
func (s *service) Create(ctx context.Context, r *request.Request) (models.InsertAck, error) {
	r.ID = primitive.NilObjectID
	if r.Status == "" {
		r.Status = request.StatusPending
	}
	if r.RequestDate.IsZero() {
		r.RequestDate = s.now().UTC()
	}
	return s.repo.Insert(ctx, r)
}

func (s *service) ListForRequester(ctx context.Context, email string) ([]*request.Request, error) {
	return s.repo.ListByRequester(ctx, email)
}

// ListForFood matches FoodId as stored, so an id that was never valid simply
// matches nothing.
func (s *service) ListForFood(ctx context.Context, foodID string) ([]*request.Request, error) {
	return s.repo.ListByFood(ctx, foodID)
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (models.UpdateAck, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return models.UpdateAck{}, err
	}
	return s.repo.SetStatus(ctx, oid, status)
}

func (s *service) Delete(ctx context.Context, id string) (models.DeleteAck, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return models.DeleteAck{}, err
	}
	return s.repo.Delete(ctx, oid)
}

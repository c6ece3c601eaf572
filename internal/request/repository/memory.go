package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"github.com/eatsexchange/eats-exchange-server/internal/request"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps requests in insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	items []*request.Request
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Insert(_ context.Context, r *request.Request) (models.InsertAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if m.indexOf(r.ID) >= 0 {
		return models.InsertAck{}, fmt.Errorf("insert request: duplicate key %s", r.ID.Hex())
	}
	cp := *r
	m.items = append(m.items, &cp)
	return models.InsertAck{Acknowledged: true, InsertedID: r.ID.Hex()}, nil
}

func (m *MemoryRepo) ListByRequester(_ context.Context, email string) ([]*request.Request, error) {
	return m.filter(func(r *request.Request) bool { return r.Requester.Email == email }), nil
}

func (m *MemoryRepo) ListByFood(_ context.Context, foodID string) ([]*request.Request, error) {
	return m.filter(func(r *request.Request) bool { return r.FoodId == foodID }), nil
}

func (m *MemoryRepo) filter(keep func(*request.Request) bool) []*request.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*request.Request{}
	for _, r := range m.items {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}

func (m *MemoryRepo) SetStatus(_ context.Context, id primitive.ObjectID, status string) (models.UpdateAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return models.UpdateAck{Acknowledged: true}, nil
	}
	ack := models.UpdateAck{Acknowledged: true, MatchedCount: 1}
	if m.items[i].Status != status {
		m.items[i].Status = status
		ack.ModifiedCount = 1
	}
	return ack, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return models.DeleteAck{Acknowledged: true}, nil
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return models.DeleteAck{Acknowledged: true, DeletedCount: 1}, nil
}

// caller holds mu
func (m *MemoryRepo) indexOf(id primitive.ObjectID) int {
	for i, r := range m.items {
		if r.ID == id {
			return i
		}
	}
	return -1
}

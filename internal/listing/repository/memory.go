package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"github.com/eatsexchange/eats-exchange-server/internal/listing"
	"github.com/eatsexchange/eats-exchange-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-process Repository used when no MongoDB URI is
// configured and in tests. Iteration follows insertion order, like a
// collection scan on a fresh Mongo collection.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	store map[primitive.ObjectID]*listing.Listing
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]*listing.Listing)}
}

func (m *MemoryRepo) Find(_ context.Context, q listing.Query) ([]*listing.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*listing.Listing{}
	for _, id := range m.order {
		l := m.store[id]
		if q.Match(l) {
			cp := *l
			out = append(out, &cp)
		}
	}
	if q.SortKey != "" {
		sort.SliceStable(out, func(i, j int) bool { return q.Less(out[i], out[j]) })
	}
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemoryRepo) Get(_ context.Context, id primitive.ObjectID) (*listing.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", id.Hex(), apierror.ErrNotFound)
	}
	cp := *l
	return &cp, nil
}

func (m *MemoryRepo) Insert(_ context.Context, l *listing.Listing) (models.InsertAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	if _, dup := m.store[l.ID]; dup {
		return models.InsertAck{}, fmt.Errorf("insert listing: duplicate key %s", l.ID.Hex())
	}
	cp := *l
	m.store[l.ID] = &cp
	m.order = append(m.order, l.ID)
	return models.InsertAck{Acknowledged: true, InsertedID: l.ID.Hex()}, nil
}

func (m *MemoryRepo) Upsert(_ context.Context, id primitive.ObjectID, f listing.Fields) (models.UpdateAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.store[id]
	if !ok {
		l = &listing.Listing{ID: id}
		f.Apply(l)
		m.store[id] = l
		m.order = append(m.order, id)
		hex := id.Hex()
		return models.UpdateAck{Acknowledged: true, UpsertedCount: 1, UpsertedID: &hex}, nil
	}
	ack := models.UpdateAck{Acknowledged: true, MatchedCount: 1}
	if !sameFields(l, f) {
		f.Apply(l)
		ack.ModifiedCount = 1
	}
	return ack, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return models.DeleteAck{Acknowledged: true}, nil
	}
	delete(m.store, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return models.DeleteAck{Acknowledged: true, DeletedCount: 1}, nil
}

func sameFields(l *listing.Listing, f listing.Fields) bool {
	return l.FoodImage == f.FoodImage &&
		l.FoodName == f.FoodName &&
		l.Donator == f.Donator &&
		l.FoodQuantity == f.FoodQuantity &&
		l.PickupLocation == f.PickupLocation &&
		l.ExpiredDateTime.Equal(f.ExpiredDateTime) &&
		l.AdditionalNotes == f.AdditionalNotes
}

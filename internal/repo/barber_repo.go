package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cutconnect/internal/domain"
	"cutconnect/internal/store"
)

type BarberRepo struct {
	s     store.Store
	cache *ListCache
}

// NewBarberRepo wires the repo to s; cache may be nil.
func NewBarberRepo(s store.Store, cache *ListCache) *BarberRepo {
	return &BarberRepo{s: s, cache: cache}
}

func (r *BarberRepo) Create(ctx context.Context, b *domain.Barber) (string, error) {
	b.Normalize()
	id, err := r.s.Insert(ctx, domain.BarberCollection, b)
	if err != nil {
		return "", err
	}
	r.cache.invalidate(ctx, domain.BarberCollection)
	return id.Hex(), nil
}

func (r *BarberRepo) List(ctx context.Context, limit int) ([]domain.BarberDocument, error) {
	key := fmt.Sprintf("limit=%d", limit)
	return cachedList(ctx, r.cache, domain.BarberCollection, key, func(ctx context.Context) ([]domain.BarberDocument, error) {
		var out []domain.BarberDocument
		err := r.s.Find(ctx, domain.BarberCollection, nil, limit, &out)
		return out, err
	})
}

func (r *BarberRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.s.Exists(ctx, domain.BarberCollection, store.Filter{"_id": id})
}

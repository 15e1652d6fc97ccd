package repo

import (
	"context"
	"fmt"

	"cutconnect/internal/domain"
	"cutconnect/internal/store"
)

type AppointmentRepo struct {
	s     store.Store
	cache *ListCache
}

func NewAppointmentRepo(s store.Store, cache *ListCache) *AppointmentRepo {
	return &AppointmentRepo{s: s, cache: cache}
}

func (r *AppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (string, error) {
	a.Normalize()
	id, err := r.s.Insert(ctx, domain.AppointmentCollection, a)
	if err != nil {
		return "", err
	}
	r.cache.invalidate(ctx, domain.AppointmentCollection)
	return id.Hex(), nil
}

func (r *AppointmentRepo) List(ctx context.Context, barberID string, limit int) ([]domain.AppointmentDocument, error) {
	var filter store.Filter
	if barberID != "" {
		filter = store.Filter{"barber_id": barberID}
	}
	key := fmt.Sprintf("barber_id=%q:limit=%d", barberID, limit)
	return cachedList(ctx, r.cache, domain.AppointmentCollection, key, func(ctx context.Context) ([]domain.AppointmentDocument, error) {
		var out []domain.AppointmentDocument
		err := r.s.Find(ctx, domain.AppointmentCollection, filter, limit, &out)
		return out, err
	})
}

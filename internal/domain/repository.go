package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BarberRepository interface {
	Create(ctx context.Context, b *Barber) (string, error)
	List(ctx context.Context, limit int) ([]BarberDocument, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) (string, error)
	// List filters on the stored barber_id string when barberID is non-empty.
	List(ctx context.Context, barberID string, limit int) ([]AppointmentDocument, error)
}

package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cutconnect/internal/domain"
)

// BookingService holds the one cross-collection rule: an appointment must
// reference a barber that exists when it is created.
type BookingService struct {
	barbers      domain.BarberRepository
	appointments domain.AppointmentRepository
	log          *zap.Logger
}

func NewBookingService(b domain.BarberRepository, a domain.AppointmentRepository, l *zap.Logger) *BookingService {
	return &BookingService{barbers: b, appointments: a, log: l}
}

func (s *BookingService) RegisterBarber(ctx context.Context, b *domain.Barber) (string, error) {
	id, err := s.barbers.Create(ctx, b)
	if err != nil {
		return "", err
	}
	s.log.Info("barber created", zap.String("barber_id", id))
	return id, nil
}

func (s *BookingService) ListBarbers(ctx context.Context, limit int) ([]domain.BarberDocument, error) {
	return s.barbers.List(ctx, limit)
}

// CreateAppointment checks the barber then inserts. The two steps are not
// atomic; barbers cannot be deleted through this API.
func (s *BookingService) CreateAppointment(ctx context.Context, a *domain.Appointment) (string, error) {
	oid, err := primitive.ObjectIDFromHex(a.BarberID)
	if err != nil {
		return "", fmt.Errorf("barber_id %q: %w", a.BarberID, domain.ErrInvalidArgument)
	}
	ok, err := s.barbers.Exists(ctx, oid)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("barber %s: %w", oid.Hex(), domain.ErrNotFound)
	}
	id, err := s.appointments.Create(ctx, a)
	if err != nil {
		return "", err
	}
	s.log.Info("appointment created",
		zap.String("appointment_id", id),
		zap.String("barber_id", a.BarberID),
		zap.String("status", string(a.CurrentStatus())),
	)
	return id, nil
}

// ListAppointments filters on the raw barber_id string; it is not parsed
// as an identifier the way CreateAppointment parses it.
func (s *BookingService) ListAppointments(ctx context.Context, barberID string, limit int) ([]domain.AppointmentDocument, error) {
	return s.appointments.List(ctx, barberID, limit)
}

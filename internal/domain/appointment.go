package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const AppointmentCollection = "appointment"

type LocationType string

const (
	LocationInStore LocationType = "in_store"
	LocationAtHome  LocationType = "at_home"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type Client struct {
	Name  string  `json:"name"  bson:"name"  binding:"required"`
	Email string  `json:"email" bson:"email" binding:"required,email"`
	Phone *string `json:"phone" bson:"phone"`
}

// Location.Address is expected for at_home visits but never enforced.
type Location struct {
	Type    LocationType `json:"type"    bson:"type"    binding:"required,oneof=in_store at_home"`
	Address *string      `json:"address" bson:"address"`
}

// Appointment is the inbound shape of POST /api/appointments. BarberID is kept
// as the client sent it; reads filter on that exact string.
type Appointment struct {
	BarberID    string    `json:"barber_id"    bson:"barber_id"    binding:"required"`
	Client      Client    `json:"client"       bson:"client"`
	ServiceName string    `json:"service_name" bson:"service_name" binding:"required"`
	StartTime   time.Time `json:"start_time"   bson:"start_time"   binding:"required"`
	Location    Location  `json:"location"     bson:"location"`
	Notes       *string   `json:"notes"        bson:"notes"`
	Status      *Status   `json:"status"       bson:"status"       binding:"omitnil,oneof=pending confirmed cancelled"`
}

// CurrentStatus is the status as stored: pending when the client sent none.
func (a *Appointment) CurrentStatus() Status {
	if a.Status == nil {
		return StatusPending
	}
	return *a.Status
}

// Normalize defaults an absent status. An explicit empty status is left for
// the validator to reject.
func (a *Appointment) Normalize() {
	s := a.CurrentStatus()
	a.Status = &s
}

type AppointmentDocument struct {
	ID          primitive.ObjectID `json:"_id"        bson:"_id"`
	Appointment `bson:",inline"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

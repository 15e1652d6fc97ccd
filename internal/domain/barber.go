package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const BarberCollection = "barber"

type Service struct {
	Name            string   `json:"name"             bson:"name"             binding:"required"`
	DurationMinutes *int     `json:"duration_minutes" bson:"duration_minutes" binding:"required,min=5,max=600"`
	Price           *float64 `json:"price"            bson:"price"            binding:"required,min=0"`
	Description     *string  `json:"description"      bson:"description"`
}

type PortfolioItem struct {
	ImageURL string  `json:"image_url" bson:"image_url" binding:"required"`
	Caption  *string `json:"caption"   bson:"caption"`
}

// Barber is the inbound shape of POST /api/barbers and the stored body of a
// barber document.
type Barber struct {
	Name        string          `json:"name"         bson:"name"         binding:"required"`
	Bio         *string         `json:"bio"          bson:"bio"`
	AvatarURL   *string         `json:"avatar_url"   bson:"avatar_url"`
	ShopName    *string         `json:"shop_name"    bson:"shop_name"`
	ShopAddress *string         `json:"shop_address" bson:"shop_address"`
	Services    []Service       `json:"services"     bson:"services"     binding:"dive"`
	Portfolio   []PortfolioItem `json:"portfolio"    bson:"portfolio"    binding:"dive"`
	Rating      *float64        `json:"rating"       bson:"rating"       binding:"omitempty,min=0,max=5"`
}

// Normalize fills the documented defaults: empty lists and a zero rating.
func (b *Barber) Normalize() {
	if b.Services == nil {
		b.Services = []Service{}
	}
	if b.Portfolio == nil {
		b.Portfolio = []PortfolioItem{}
	}
	if b.Rating == nil {
		zero := 0.0
		b.Rating = &zero
	}
}

// BarberDocument is a stored barber as returned by reads. The ObjectID
// marshals to its hex string form.
type BarberDocument struct {
	ID        primitive.ObjectID `json:"_id"        bson:"_id"`
	Barber    `bson:",inline"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

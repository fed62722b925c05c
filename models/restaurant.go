package models

import (
	"time"

	"dishdash-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Restaurant struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name            string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug            string    `json:"slug"`
	Latitude        float64   `gorm:"not null" json:"latitude"`
	Longitude       float64   `gorm:"not null" json:"longitude"`
	Description     string    `gorm:"not null" json:"description"`
	CuisineType     string    `gorm:"not null" json:"cuisineType"`
	RatingsAverage  float64   `gorm:"default:4.5" json:"ratingsAverage"` // 1..5, one decimal
	RatingsQuantity int       `gorm:"default:0" json:"ratingsQuantity"`
	Phone           string    `json:"phone"`
	ImageCover      string    `gorm:"not null" json:"imageCover"`
	DeliveryPrice   float64   `gorm:"default:0" json:"deliveryPrice"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	Owner           User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	OpeningHours []OpeningHour `gorm:"foreignKey:RestaurantID" json:"openingHours,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Restaurant) BeforeSave(tx *gorm.DB) error {
	if r.Name != "" {
		r.Slug = utils.Slugify(r.Name)
	}
	return nil
}

type OpeningHour struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index" json:"restaurantId"`
	DayOfWeek    string    `gorm:"not null" json:"dayOfWeek"` // Monday..Sunday
	StartTime    string    `gorm:"not null" json:"startTime"`
	EndTime      string    `gorm:"not null" json:"endTime"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (o *OpeningHour) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

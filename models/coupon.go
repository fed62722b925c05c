package models

import (
	"strings"
	"time"

	"dishdash-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Coupon struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string     `gorm:"uniqueIndex;not null" json:"name"` // stored uppercase
	Slug         string     `json:"slug"`
	Discount     float64    `gorm:"not null" json:"discount"` // percentage
	ExpiresAt    time.Time  `gorm:"not null" json:"expiresAt"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null;index" json:"restaurantId"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Coupon) BeforeSave(tx *gorm.DB) error {
	if c.Name != "" {
		c.Name = strings.ToUpper(c.Name)
		c.Slug = utils.Slugify(c.Name)
	}
	return nil
}

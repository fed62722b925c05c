package models

import (
	"time"

	"dishdash-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Slug         string     `json:"slug"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null;index" json:"restaurantId"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Items        []Item     `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Name != "" {
		c.Slug = utils.Slugify(c.Name)
	}
	return nil
}

package models

import (
	"time"

	"dishdash-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Menu struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Slug         string     `json:"slug"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null;index" json:"restaurantId"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Items        []Item     `gorm:"many2many:menu_items" json:"items,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Menu) BeforeSave(tx *gorm.DB) error {
	if m.Name != "" {
		m.Slug = utils.Slugify(m.Name)
	}
	return nil
}

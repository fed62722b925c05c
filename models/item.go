package models

import (
	"time"

	"dishdash-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxItemPrice is the hard cap on a single item's price.
const MaxItemPrice = 2000

type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `json:"slug"`
	Price       float64   `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"default:0" json:"quantity"`
	Sold        int       `gorm:"default:0" json:"sold"`
	Calories    string    `json:"calories"`
	Description string    `gorm:"not null" json:"description"`
	ImageCover  string    `json:"imageCover"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Item) BeforeSave(tx *gorm.DB) error {
	if i.Name != "" {
		i.Slug = utils.Slugify(i.Name)
	}
	return nil
}

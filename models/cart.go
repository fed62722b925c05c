package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart holds the current basket of a single user. Each user has at most
// one cart; entries keep the unit price captured when the item was added.
type Cart struct {
	ID                      uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID                  uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	User                    User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Entries                 []CartEntry `gorm:"foreignKey:CartID" json:"cartItems"`
	TotalPrice              float64     `gorm:"default:0" json:"totalCartPrice"`
	TotalPriceAfterDiscount *float64    `json:"totalPriceAfterDiscount,omitempty"`
	CreatedAt               time.Time   `json:"createdAt"`
	UpdatedAt               time.Time   `json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// RecalcTotal recomputes the cart total from its entries. A previously
// applied coupon discount is dropped because the base total changed.
func (c *Cart) RecalcTotal() {
	var total float64
	for _, e := range c.Entries {
		total += e.Price * float64(e.Quantity)
	}
	c.TotalPrice = total
	c.TotalPriceAfterDiscount = nil
}

type CartEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;index" json:"cartId"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"itemId"`
	Item      Item      `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	Price     float64   `json:"price"` // unit price at the time of adding
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *CartEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodCard = "cart" // kept as "cart" for wire compatibility
	PaymentMethodCash = "cash"
)

type Order struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"userId"`
	User         User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RestaurantID uuid.UUID   `gorm:"type:uuid;not null;index" json:"restaurantId"`
	Restaurant   Restaurant  `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"cartItems"`

	DeliveryDetails    string `json:"deliveryDetails"`
	DeliveryPhone      string `json:"deliveryPhone"`
	DeliveryCity       string `json:"deliveryCity"`
	DeliveryPostalCode string `json:"deliveryPostalCode"`

	PaymentMethod string  `gorm:"default:cash" json:"paymentMethod"` // cart, cash
	TotalPrice    float64 `gorm:"not null" json:"totalOrderPrice"`

	IsPaid      bool       `gorm:"default:false" json:"isPaid"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	IsDelivered bool       `gorm:"default:false" json:"isDelivered"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a snapshot of a cart entry at order-creation time.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"orderId"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"itemId"`
	Item      Item      `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	ItemName  string    `json:"itemName"` // snapshot of item name at time of order
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
	RoleUser  = "user"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Slug         string    `json:"slug"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profileImage"`
	Role         string    `gorm:"default:user" json:"role"` // admin, owner, user
	Active       bool      `gorm:"default:true" json:"active"`

	PasswordChangedAt     *time.Time `json:"-"`
	PasswordResetCode     string     `json:"-"` // sha256 hex of the 6-digit code
	PasswordResetExpires  *time.Time `json:"-"`
	PasswordResetVerified bool       `json:"-"`

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Alias      string    `json:"alias"`
	Details    string    `json:"details"`
	Phone      string    `json:"phone"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

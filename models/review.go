package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string     `json:"title"`
	Rating       float64    `gorm:"not null" json:"ratings"` // 1..5
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_restaurant" json:"userId"`
	User         User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_restaurant" json:"restaurantId"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Aggregate recomputation runs inside the same connection/transaction as the
// triggering write, so the restaurant's rating fields never lag behind its
// reviews within a request.

func (r *Review) AfterCreate(tx *gorm.DB) error {
	return RecalcRestaurantRatings(tx, r.RestaurantID)
}

func (r *Review) AfterUpdate(tx *gorm.DB) error {
	return RecalcRestaurantRatings(tx, r.RestaurantID)
}

func (r *Review) AfterDelete(tx *gorm.DB) error {
	return RecalcRestaurantRatings(tx, r.RestaurantID)
}

// RecalcRestaurantRatings recomputes ratingsAverage and ratingsQuantity for a
// restaurant as the count and arithmetic mean over all of its reviews, or
// resets both to zero when no reviews remain.
func RecalcRestaurantRatings(tx *gorm.DB, restaurantID uuid.UUID) error {
	var stats struct {
		Count int64
		Avg   float64
	}
	err := tx.Model(&Review{}).
		Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as avg").
		Where("restaurant_id = ?", restaurantID).
		Scan(&stats).Error
	if err != nil {
		return err
	}

	avg := math.Round(stats.Avg*10) / 10
	if stats.Count == 0 {
		avg = 0
	}

	return tx.Model(&Restaurant{}).Where("id = ?", restaurantID).
		Updates(map[string]interface{}{
			"ratings_average":  avg,
			"ratings_quantity": stats.Count,
		}).Error
}

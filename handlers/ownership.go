package handlers

import (
	"net/http"

	"dishdash-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// currentUserID returns the authenticated caller's id as set by the auth
// middleware.
func currentUserID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func currentUserRole(c *gin.Context) string {
	if v, exists := c.Get("user_role"); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// restaurantForWrite resolves the restaurant a mutation must target. Admins
// use the restaurantId from the request; owners are pinned to their own
// restaurant regardless of what the request claims. Writes the error response
// and returns false on failure.
func restaurantForWrite(db *gorm.DB, c *gin.Context, requested uuid.UUID) (models.Restaurant, bool) {
	var restaurant models.Restaurant

	if currentUserRole(c) == models.RoleOwner {
		if err := db.Where("owner_id = ?", currentUserID(c)).First(&restaurant).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Owner does not have a restaurant"})
			return restaurant, false
		}
		return restaurant, true
	}

	if requested == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurantId is required"})
		return restaurant, false
	}
	if err := db.Where("id = ?", requested).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return restaurant, false
	}
	return restaurant, true
}

// assertRestaurantAccess checks that the caller may mutate rows belonging to
// the given restaurant. Admins always may; owners only for their own
// restaurant. Writes a 403 and returns false otherwise.
func assertRestaurantAccess(db *gorm.DB, c *gin.Context, restaurantID uuid.UUID) bool {
	if currentUserRole(c) != models.RoleOwner {
		return true
	}

	var restaurant models.Restaurant
	if err := db.Where("id = ? AND owner_id = ?", restaurantID, currentUserID(c)).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to access this resource"})
		return false
	}
	return true
}

// assertCategoryAccess resolves a category and checks the caller may mutate
// items under it. Writes the error response and returns false on failure.
func assertCategoryAccess(db *gorm.DB, c *gin.Context, categoryID uuid.UUID) (models.Category, bool) {
	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return category, false
	}

	if !assertRestaurantAccess(db, c, category.RestaurantID) {
		return category, false
	}
	return category, true
}

// parseIDParam parses the :id route parameter, writing a 400 on malformed
// input.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

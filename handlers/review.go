package handlers

import (
	"net/http"

	"dishdash-backend/middleware"
	"dishdash-backend/models"
	"dishdash-backend/query"
	"dishdash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	DB *gorm.DB
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	scope := middleware.GetScope(c)
	tx := scope.Apply(h.DB.Model(&models.Review{}))

	tx, pagination, err := query.Apply(tx, c.Request.URL.Query(), query.Options{
		SearchColumns: []string{"title"},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	var reviews []models.Review
	if err := tx.Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(reviews),
		"data": gin.H{
			"paginationResults": pagination,
			"reviews":           reviews,
		},
	})
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var review models.Review
	if err := h.DB.Where("id = ?", id).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"review": review},
	})
}

// CreateReview stores one review per user per restaurant. A second review for
// the same restaurant is rejected rather than merged.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req struct {
		Title        string    `json:"title"`
		Rating       float64   `json:"ratings" binding:"required,gte=1,lte=5"`
		RestaurantID uuid.UUID `json:"restaurantId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	// Nested create (/restaurants/:id/reviews) takes the restaurant from the
	// route.
	if param := c.Param("id"); param != "" {
		id, err := uuid.Parse(param)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		req.RestaurantID = id
	}

	var restaurant models.Restaurant
	if err := h.DB.Where("id = ?", req.RestaurantID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var existing models.Review
	err := h.DB.Where("user_id = ? AND restaurant_id = ?", currentUserID(c), req.RestaurantID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already reviewed this restaurant"})
		return
	}

	review := models.Review{
		Title:        req.Title,
		Rating:       req.Rating,
		UserID:       currentUserID(c),
		RestaurantID: req.RestaurantID,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"review": review},
	})
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var review models.Review
	if err := h.DB.Where("id = ?", id).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if review.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own reviews"})
		return
	}

	var req struct {
		Title  *string  `json:"title"`
		Rating *float64 `json:"ratings" binding:"omitempty,gte=1,lte=5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}

	if err := h.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"review": review},
	})
}

// DeleteReview removes a review. Users may delete their own; admins any. The
// row is loaded first so the delete hook can recompute the restaurant's
// rating aggregates.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var review models.Review
	if err := h.DB.Where("id = ?", id).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if currentUserRole(c) != models.RoleAdmin && review.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own reviews"})
		return
	}

	if err := h.DB.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	c.Status(http.StatusNoContent)
}

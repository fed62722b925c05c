package handlers

import (
	"net/http"
	"strings"
	"time"

	"dishdash-backend/middleware"
	"dishdash-backend/models"
	"dishdash-backend/query"
	"dishdash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponHandler struct {
	DB *gorm.DB
}

func (h *CouponHandler) GetCoupons(c *gin.Context) {
	scope := middleware.GetScope(c)
	tx := scope.Apply(h.DB.Model(&models.Coupon{}))

	tx, pagination, err := query.Apply(tx, c.Request.URL.Query(), query.Options{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
		return
	}

	var coupons []models.Coupon
	if err := tx.Find(&coupons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(coupons),
		"data": gin.H{
			"paginationResults": pagination,
			"coupons":           coupons,
		},
	})
}

func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var coupon models.Coupon
	if err := h.DB.Where("id = ?", id).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	if !assertRestaurantAccess(h.DB, c, coupon.RestaurantID) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"coupon": coupon},
	})
}

func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req struct {
		Name         string    `json:"name" binding:"required,min=3"`
		Discount     float64   `json:"discount" binding:"required,gt=0,lte=100"`
		ExpiresAt    time.Time `json:"expiresAt" binding:"required"`
		RestaurantID uuid.UUID `json:"restaurantId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	restaurant, ok := restaurantForWrite(h.DB, c, req.RestaurantID)
	if !ok {
		return
	}

	var existing models.Coupon
	if err := h.DB.Where("name = ?", strings.ToUpper(req.Name)).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Coupon name already in use"})
		return
	}

	coupon := models.Coupon{
		Name:         req.Name,
		Discount:     req.Discount,
		ExpiresAt:    req.ExpiresAt,
		RestaurantID: restaurant.ID,
	}
	if err := h.DB.Create(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"coupon": coupon},
	})
}

func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var coupon models.Coupon
	if err := h.DB.Where("id = ?", id).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	if !assertRestaurantAccess(h.DB, c, coupon.RestaurantID) {
		return
	}

	var req struct {
		Name      *string    `json:"name" binding:"omitempty,min=3"`
		Discount  *float64   `json:"discount" binding:"omitempty,gt=0,lte=100"`
		ExpiresAt *time.Time `json:"expiresAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil && strings.ToUpper(*req.Name) != coupon.Name {
		var existing models.Coupon
		if err := h.DB.Where("name = ? AND id != ?", strings.ToUpper(*req.Name), id).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Coupon name already in use"})
			return
		}
		coupon.Name = *req.Name
	}
	if req.Discount != nil {
		coupon.Discount = *req.Discount
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = *req.ExpiresAt
	}

	if err := h.DB.Save(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"coupon": coupon},
	})
}

func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var coupon models.Coupon
	if err := h.DB.Where("id = ?", id).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	if !assertRestaurantAccess(h.DB, c, coupon.RestaurantID) {
		return
	}

	if err := h.DB.Delete(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"dishdash-backend/models"
	"dishdash-backend/query"
	"dishdash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RestaurantHandler struct {
	DB *gorm.DB
}

type openingHourInput struct {
	DayOfWeek string `json:"dayOfWeek" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type createRestaurantRequest struct {
	Name          string             `json:"name" binding:"required,min=3"`
	Latitude      float64            `json:"latitude" binding:"required"`
	Longitude     float64            `json:"longitude" binding:"required"`
	Description   string             `json:"description"`
	CuisineType   string             `json:"cuisineType"`
	Phone         string             `json:"phone"`
	ImageCover    string             `json:"imageCover"`
	DeliveryPrice float64            `json:"deliveryPrice" binding:"gte=0"`
	OwnerID       uuid.UUID          `json:"ownerId" binding:"required"`
	OpeningHours  []openingHourInput `json:"openingHours"`
}

func (h *RestaurantHandler) GetRestaurants(c *gin.Context) {
	tx := h.DB.Model(&models.Restaurant{})
	tx, pagination, err := query.Apply(tx, c.Request.URL.Query(), query.Options{
		SearchColumns: []string{"name", "cuisine_type"},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
		return
	}

	var restaurants []models.Restaurant
	if err := tx.Preload("OpeningHours").Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(restaurants),
		"data": gin.H{
			"paginationResults": pagination,
			"restaurants":       restaurants,
		},
	})
}

func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var restaurant models.Restaurant
	err := h.DB.Preload("OpeningHours").Where("id = ?", id).First(&restaurant).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"restaurant": restaurant},
	})
}

func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req createRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var owner models.User
	if err := h.DB.Where("id = ?", req.OwnerID).First(&owner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Owner not found"})
		return
	}
	if owner.Role != models.RoleOwner {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user does not have the owner role"})
		return
	}

	var existing models.Restaurant
	if err := h.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Restaurant name already in use"})
		return
	}

	restaurant := models.Restaurant{
		Name:          req.Name,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Description:   req.Description,
		CuisineType:   req.CuisineType,
		Phone:         req.Phone,
		ImageCover:    req.ImageCover,
		DeliveryPrice: req.DeliveryPrice,
		OwnerID:       req.OwnerID,
	}
	for _, oh := range req.OpeningHours {
		restaurant.OpeningHours = append(restaurant.OpeningHours, models.OpeningHour{
			DayOfWeek: oh.DayOfWeek,
			StartTime: oh.StartTime,
			EndTime:   oh.EndTime,
		})
	}

	if err := h.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"restaurant": restaurant},
	})
}

func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.Where("id = ?", id).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req struct {
		Name          *string  `json:"name" binding:"omitempty,min=3"`
		Latitude      *float64 `json:"latitude"`
		Longitude     *float64 `json:"longitude"`
		Description   *string  `json:"description"`
		CuisineType   *string  `json:"cuisineType"`
		Phone         *string  `json:"phone"`
		ImageCover    *string  `json:"imageCover"`
		DeliveryPrice *float64 `json:"deliveryPrice" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil && *req.Name != restaurant.Name {
		var existing models.Restaurant
		if err := h.DB.Where("name = ? AND id != ?", *req.Name, id).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Restaurant name already in use"})
			return
		}
		restaurant.Name = *req.Name
	}
	if req.Latitude != nil {
		restaurant.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		restaurant.Longitude = *req.Longitude
	}
	if req.Description != nil {
		restaurant.Description = *req.Description
	}
	if req.CuisineType != nil {
		restaurant.CuisineType = *req.CuisineType
	}
	if req.Phone != nil {
		restaurant.Phone = *req.Phone
	}
	if req.ImageCover != nil {
		restaurant.ImageCover = *req.ImageCover
	}
	if req.DeliveryPrice != nil {
		restaurant.DeliveryPrice = *req.DeliveryPrice
	}

	if err := h.DB.Save(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"restaurant": restaurant},
	})
}

func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.Where("id = ?", id).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	if err := h.DB.Delete(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete restaurant"})
		return
	}

	c.Status(http.StatusNoContent)
}

// parseLatLng splits the "lat,lng" route parameter.
func parseLatLng(c *gin.Context) (float64, float64, bool) {
	parts := strings.Split(c.Param("latlng"), ",")
	if len(parts) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide latitude and longitude in the format lat,lng"})
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide latitude and longitude in the format lat,lng"})
		return 0, 0, false
	}
	return lat, lng, true
}

// GetRestaurantsWithin lists the restaurants inside a radius around a point.
// Distance filtering happens in application code over the full table; the
// dataset is small enough that a geo index is not worth the operational cost.
func (h *RestaurantHandler) GetRestaurantsWithin(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}

	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a positive distance"})
		return
	}
	unit := c.Param("unit")

	var restaurants []models.Restaurant
	if err := h.DB.Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
		return
	}

	within := make([]models.Restaurant, 0)
	for _, r := range restaurants {
		if utils.DistanceInUnit(lat, lng, r.Latitude, r.Longitude, unit) <= distance {
			within = append(within, r)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(within),
		"data":    gin.H{"restaurants": within},
	})
}

// GetDistances returns every restaurant with its distance from the given
// point.
func (h *RestaurantHandler) GetDistances(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}
	unit := c.Param("unit")

	var restaurants []models.Restaurant
	if err := h.DB.Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
		return
	}

	type restaurantDistance struct {
		ID       uuid.UUID `json:"id"`
		Name     string    `json:"name"`
		Distance float64   `json:"distance"`
	}

	distances := make([]restaurantDistance, 0, len(restaurants))
	for _, r := range restaurants {
		distances = append(distances, restaurantDistance{
			ID:       r.ID,
			Name:     r.Name,
			Distance: utils.DistanceInUnit(lat, lng, r.Latitude, r.Longitude, unit),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(distances),
		"data":    gin.H{"distances": distances},
	})
}

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

type MenuHandler struct {
	DB *gorm.DB
}

// loadMenuItems resolves item ids to rows, requiring every item to belong to
// the given restaurant's categories. Duplicate ids count once.
func (h *MenuHandler) loadMenuItems(restaurantID uuid.UUID, itemIDs []uuid.UUID) ([]models.Item, bool) {
	seen := make(map[uuid.UUID]bool, len(itemIDs))
	unique := make([]uuid.UUID, 0, len(itemIDs))
	for _, id := range itemIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, true
	}

	var items []models.Item
	err := h.DB.
		Joins("JOIN categories ON categories.id = items.category_id").
		Where("items.id IN ? AND categories.restaurant_id = ?", unique, restaurantID).
		Find(&items).Error
	if err != nil || len(items) != len(unique) {
		return nil, false
	}
	return items, true
}

func (h *MenuHandler) GetMenus(c *gin.Context) {
	scope := middleware.GetScope(c)
	tx := scope.Apply(h.DB.Model(&models.Menu{}))

	tx, pagination, err := query.Apply(tx, c.Request.URL.Query(), query.Options{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menus"})
		return
	}

	var menus []models.Menu
	if err := tx.Preload("Items").Find(&menus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menus"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(menus),
		"data": gin.H{
			"paginationResults": pagination,
			"menus":             menus,
		},
	})
}

func (h *MenuHandler) GetMenu(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var menu models.Menu
	if err := h.DB.Preload("Items").Where("id = ?", id).First(&menu).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"menu": menu},
	})
}

func (h *MenuHandler) CreateMenu(c *gin.Context) {
	var req struct {
		Name         string      `json:"name" binding:"required,min=3"`
		RestaurantID uuid.UUID   `json:"restaurantId"`
		ItemIDs      []uuid.UUID `json:"itemIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	restaurant, ok := restaurantForWrite(h.DB, c, req.RestaurantID)
	if !ok {
		return
	}

	items, ok := h.loadMenuItems(restaurant.ID, req.ItemIDs)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All menu items must belong to the restaurant"})
		return
	}

	menu := models.Menu{
		Name:         req.Name,
		RestaurantID: restaurant.ID,
		Items:        items,
	}
	if err := h.DB.Create(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"menu": menu},
	})
}

func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var menu models.Menu
	if err := h.DB.Where("id = ?", id).First(&menu).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}

	if !assertRestaurantAccess(h.DB, c, menu.RestaurantID) {
		return
	}

	var req struct {
		Name    *string      `json:"name" binding:"omitempty,min=3"`
		ItemIDs *[]uuid.UUID `json:"itemIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if err := h.DB.Save(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu"})
		return
	}

	if req.ItemIDs != nil {
		items, ok := h.loadMenuItems(menu.RestaurantID, *req.ItemIDs)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All menu items must belong to the restaurant"})
			return
		}
		if err := h.DB.Model(&menu).Association("Items").Replace(items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu items"})
			return
		}
	}

	if err := h.DB.Preload("Items").Where("id = ?", id).First(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"menu": menu},
	})
}

func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var menu models.Menu
	if err := h.DB.Where("id = ?", id).First(&menu).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}

	if !assertRestaurantAccess(h.DB, c, menu.RestaurantID) {
		return
	}

	if err := h.DB.Delete(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu"})
		return
	}

	c.Status(http.StatusNoContent)
}

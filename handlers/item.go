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

type ItemHandler struct {
	DB *gorm.DB
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	scope := middleware.GetScope(c)
	tx := scope.Apply(h.DB.Model(&models.Item{}))

	tx, pagination, err := query.Apply(tx, c.Request.URL.Query(), query.Options{
		SearchColumns: []string{"name", "description"},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	var items []models.Item
	if err := tx.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(items),
		"data": gin.H{
			"paginationResults": pagination,
			"items":             items,
		},
	})
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var item models.Item
	if err := h.DB.Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"item": item},
	})
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req struct {
		Name        string    `json:"name" binding:"required,min=3"`
		Price       float64   `json:"price" binding:"required,gt=0,lte=2000"`
		Quantity    int       `json:"quantity" binding:"gte=0"`
		Calories    string    `json:"calories"`
		Description string    `json:"description"`
		ImageCover  string    `json:"imageCover"`
		CategoryID  uuid.UUID `json:"categoryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if _, ok := assertCategoryAccess(h.DB, c, req.CategoryID); !ok {
		return
	}

	item := models.Item{
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Calories:    req.Calories,
		Description: req.Description,
		ImageCover:  req.ImageCover,
		CategoryID:  req.CategoryID,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"item": item},
	})
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var item models.Item
	if err := h.DB.Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if _, ok := assertCategoryAccess(h.DB, c, item.CategoryID); !ok {
		return
	}

	var req struct {
		Name        *string    `json:"name" binding:"omitempty,min=3"`
		Price       *float64   `json:"price" binding:"omitempty,gt=0,lte=2000"`
		Quantity    *int       `json:"quantity" binding:"omitempty,gte=0"`
		Calories    *string    `json:"calories"`
		Description *string    `json:"description"`
		ImageCover  *string    `json:"imageCover"`
		CategoryID  *uuid.UUID `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.CategoryID != nil && *req.CategoryID != item.CategoryID {
		if _, ok := assertCategoryAccess(h.DB, c, *req.CategoryID); !ok {
			return
		}
		item.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Calories != nil {
		item.Calories = *req.Calories
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ImageCover != nil {
		item.ImageCover = *req.ImageCover
	}

	if err := h.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"item": item},
	})
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var item models.Item
	if err := h.DB.Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if _, ok := assertCategoryAccess(h.DB, c, item.CategoryID); !ok {
		return
	}

	if err := h.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.Status(http.StatusNoContent)
}

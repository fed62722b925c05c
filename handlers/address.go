package handlers

import (
	"net/http"

	"dishdash-backend/models"
	"dishdash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddressHandler struct {
	DB *gorm.DB
}

func (h *AddressHandler) GetAddresses(c *gin.Context) {
	var addresses []models.Address
	err := h.DB.Where("user_id = ?", currentUserID(c)).Find(&addresses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(addresses),
		"data":    gin.H{"addresses": addresses},
	})
}

func (h *AddressHandler) AddAddress(c *gin.Context) {
	var req struct {
		Alias      string `json:"alias" binding:"required"`
		Details    string `json:"details" binding:"required"`
		Phone      string `json:"phone"`
		City       string `json:"city"`
		PostalCode string `json:"postalCode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	address := models.Address{
		UserID:     currentUserID(c),
		Alias:      req.Alias,
		Details:    req.Details,
		Phone:      req.Phone,
		City:       req.City,
		PostalCode: req.PostalCode,
	}
	if err := h.DB.Create(&address).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"address": address},
	})
}

func (h *AddressHandler) RemoveAddress(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var address models.Address
	err := h.DB.Where("id = ? AND user_id = ?", id, currentUserID(c)).First(&address).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	if err := h.DB.Delete(&address).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove address"})
		return
	}

	c.Status(http.StatusNoContent)
}

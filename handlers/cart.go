package handlers

import (
	"net/http"
	"strings"
	"time"

	"dishdash-backend/models"
	"dishdash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB *gorm.DB
}

func (h *CartHandler) loadCart(c *gin.Context) (models.Cart, bool) {
	var cart models.Cart
	err := h.DB.Preload("Entries").Where("user_id = ?", currentUserID(c)).First(&cart).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "There is no cart for this user"})
		return cart, false
	}
	return cart, true
}

// saveCart persists the entries, recomputes the total and writes the
// standard cart response.
func (h *CartHandler) saveCart(c *gin.Context, cart models.Cart, statusCode int) {
	cart.RecalcTotal()

	for i := range cart.Entries {
		if err := h.DB.Save(&cart.Entries[i]).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}
	}
	err := h.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"total_price":                cart.TotalPrice,
			"total_price_after_discount": nil,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(statusCode, gin.H{
		"status":  "success",
		"results": len(cart.Entries),
		"data":    gin.H{"cart": cart},
	})
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, ok := h.loadCart(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(cart.Entries),
		"data":    gin.H{"cart": cart},
	})
}

// AddItem puts an item into the caller's cart, creating the cart on first
// use. Adding an item that is already in the cart bumps its quantity instead
// of creating a second entry.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		ItemID   uuid.UUID `json:"itemId" binding:"required"`
		Quantity int       `json:"quantity" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var item models.Item
	if err := h.DB.Where("id = ?", req.ItemID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var cart models.Cart
	err := h.DB.Preload("Entries").Where("user_id = ?", currentUserID(c)).First(&cart).Error
	if err != nil {
		cart = models.Cart{UserID: currentUserID(c)}
		if err := h.DB.Create(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
			return
		}
	}

	found := false
	for i := range cart.Entries {
		if cart.Entries[i].ItemID == item.ID {
			cart.Entries[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Entries = append(cart.Entries, models.CartEntry{
			CartID:   cart.ID,
			ItemID:   item.ID,
			Quantity: req.Quantity,
			Price:    item.Price,
		})
	}

	h.saveCart(c, cart, http.StatusOK)
}

func (h *CartHandler) UpdateItemQuantity(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	cart, ok := h.loadCart(c)
	if !ok {
		return
	}

	found := false
	for i := range cart.Entries {
		if cart.Entries[i].ID == entryID {
			cart.Entries[i].Quantity = req.Quantity
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	h.saveCart(c, cart, http.StatusOK)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	cart, ok := h.loadCart(c)
	if !ok {
		return
	}

	found := false
	entries := cart.Entries[:0]
	for _, entry := range cart.Entries {
		if entry.ID == entryID {
			found = true
			continue
		}
		entries = append(entries, entry)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	if err := h.DB.Delete(&models.CartEntry{}, "id = ?", entryID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	cart.Entries = entries
	h.saveCart(c, cart, http.StatusOK)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, ok := h.loadCart(c)
	if !ok {
		return
	}

	if err := h.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartEntry{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	if err := h.DB.Delete(&cart).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ApplyCoupon applies an unexpired coupon (matched by its uppercase name) to
// the cart total.
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req struct {
		Coupon string `json:"coupon" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var coupon models.Coupon
	err := h.DB.Where("name = ? AND expires_at > ?", strings.ToUpper(req.Coupon), time.Now()).
		First(&coupon).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon is invalid or expired"})
		return
	}

	cart, ok := h.loadCart(c)
	if !ok {
		return
	}

	discounted := cart.TotalPrice - cart.TotalPrice*coupon.Discount/100
	cart.TotalPriceAfterDiscount = &discounted
	err = h.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Update("total_price_after_discount", discounted).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(cart.Entries),
		"data":    gin.H{"cart": cart},
	})
}

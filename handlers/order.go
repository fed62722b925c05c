package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"dishdash-backend/config"
	"dishdash-backend/middleware"
	"dishdash-backend/models"
	"dishdash-backend/query"
	"dishdash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB *gorm.DB
}

// taxPercent is the order tax rate, configurable via TAX_PERCENT.
func taxPercent() float64 {
	if v, err := strconv.ParseFloat(config.GetEnv("TAX_PERCENT", "14"), 64); err == nil && v >= 0 {
		return v
	}
	return 14
}

type deliveryInput struct {
	Details    string `json:"details"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// cartRestaurant resolves the restaurant a cart orders from, via the first
// entry's item and its category.
func (h *OrderHandler) cartRestaurant(cart models.Cart) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := h.DB.
		Joins("JOIN categories ON categories.restaurant_id = restaurants.id").
		Joins("JOIN items ON items.category_id = categories.id").
		Where("items.id = ?", cart.Entries[0].ItemID).
		First(&restaurant).Error
	return restaurant, err
}

// buildOrder turns a cart into an order: total is the (possibly discounted)
// cart total plus tax plus the restaurant's delivery price, and each entry is
// snapshotted so later item edits do not rewrite order history.
func buildOrder(cart models.Cart, restaurant models.Restaurant, items []models.Item, delivery deliveryInput) models.Order {
	base := cart.TotalPrice
	if cart.TotalPriceAfterDiscount != nil {
		base = *cart.TotalPriceAfterDiscount
	}
	total := base + base*taxPercent()/100 + restaurant.DeliveryPrice

	namesByID := make(map[uuid.UUID]string, len(items))
	for _, item := range items {
		namesByID[item.ID] = item.Name
	}

	order := models.Order{
		UserID:             cart.UserID,
		RestaurantID:       restaurant.ID,
		DeliveryDetails:    delivery.Details,
		DeliveryPhone:      delivery.Phone,
		DeliveryCity:       delivery.City,
		DeliveryPostalCode: delivery.PostalCode,
		TotalPrice:         total,
	}
	for _, entry := range cart.Entries {
		order.Items = append(order.Items, models.OrderItem{
			ItemID:   entry.ItemID,
			ItemName: namesByID[entry.ItemID],
			Quantity: entry.Quantity,
			Price:    entry.Price,
		})
	}
	return order
}

// consumeCart decrements stock, increments sold counters and deletes the
// cart. Item updates run one by one; a failure mid-way leaves earlier updates
// in place and is only logged, matching how fulfilment reconciles stock out
// of band.
func (h *OrderHandler) consumeCart(cart models.Cart) {
	for _, entry := range cart.Entries {
		err := h.DB.Model(&models.Item{}).
			Where("id = ?", entry.ItemID).
			Updates(map[string]interface{}{
				"quantity": gorm.Expr("quantity - ?", entry.Quantity),
				"sold":     gorm.Expr("sold + ?", entry.Quantity),
			}).Error
		if err != nil {
			log.Printf("failed to update stock for item %s: %v", entry.ItemID, err)
		}
	}

	if err := h.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartEntry{}).Error; err != nil {
		log.Printf("failed to delete cart entries for cart %s: %v", cart.ID, err)
	}
	if err := h.DB.Delete(&models.Cart{}, "id = ?", cart.ID).Error; err != nil {
		log.Printf("failed to delete cart %s: %v", cart.ID, err)
	}
}

// CreateCashOrder creates a cash-on-delivery order from the caller's cart.
func (h *OrderHandler) CreateCashOrder(c *gin.Context) {
	cartID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		DeliveryAddress deliveryInput `json:"deliveryAddress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var cart models.Cart
	err := h.DB.Preload("Entries").
		Where("id = ? AND user_id = ?", cartID, currentUserID(c)).
		First(&cart).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "There is no cart with this id"})
		return
	}
	if len(cart.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	restaurant, err := h.cartRestaurant(cart)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found for cart items"})
		return
	}

	itemIDs := make([]uuid.UUID, 0, len(cart.Entries))
	for _, entry := range cart.Entries {
		itemIDs = append(itemIDs, entry.ItemID)
	}
	var items []models.Item
	if err := h.DB.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart items"})
		return
	}

	order := buildOrder(cart, restaurant, items, req.DeliveryAddress)
	order.PaymentMethod = models.PaymentMethodCash

	if err := h.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	h.consumeCart(cart)

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"order": order},
	})
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	scope := middleware.GetScope(c)
	tx := scope.Apply(h.DB.Model(&models.Order{}))

	tx, pagination, err := query.Apply(tx, c.Request.URL.Query(), query.Options{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	var orders []models.Order
	if err := tx.Preload("Items").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(orders),
		"data": gin.H{
			"paginationResults": pagination,
			"orders":            orders,
		},
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	scope := middleware.GetScope(c)
	var order models.Order
	err := scope.Apply(h.DB.Preload("Items")).Where("id = ?", id).First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"order": order},
	})
}

// loadOrderForUpdate resolves an order an owner or admin may change.
func (h *OrderHandler) loadOrderForUpdate(c *gin.Context) (models.Order, bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return models.Order{}, false
	}

	var order models.Order
	if err := h.DB.Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return order, false
	}

	if !assertRestaurantAccess(h.DB, c, order.RestaurantID) {
		return order, false
	}
	return order, true
}

func (h *OrderHandler) MarkOrderPaid(c *gin.Context) {
	order, ok := h.loadOrderForUpdate(c)
	if !ok {
		return
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	if err := h.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"order": order},
	})
}

func (h *OrderHandler) MarkOrderDelivered(c *gin.Context) {
	order, ok := h.loadOrderForUpdate(c)
	if !ok {
		return
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now
	if err := h.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"order": order},
	})
}

// WebhookCheckout turns a completed external card payment into a paid order.
// The payload must carry an HMAC-SHA256 signature of the raw body computed
// with WEBHOOK_SECRET.
func (h *OrderHandler) WebhookCheckout(c *gin.Context) {
	secret := config.GetEnv("WEBHOOK_SECRET", "")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook not configured"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(c.GetHeader("Webhook-Signature"))) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	var payload struct {
		CartID          uuid.UUID     `json:"cartId"`
		DeliveryAddress deliveryInput `json:"deliveryAddress"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.CartID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	var cart models.Cart
	if err := h.DB.Preload("Entries").Where("id = ?", payload.CartID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "There is no cart with this id"})
		return
	}
	if len(cart.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	restaurant, err := h.cartRestaurant(cart)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found for cart items"})
		return
	}

	itemIDs := make([]uuid.UUID, 0, len(cart.Entries))
	for _, entry := range cart.Entries {
		itemIDs = append(itemIDs, entry.ItemID)
	}
	var items []models.Item
	if err := h.DB.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart items"})
		return
	}

	order := buildOrder(cart, restaurant, items, payload.DeliveryAddress)
	order.PaymentMethod = models.PaymentMethodCard
	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now

	if err := h.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	h.consumeCart(cart)

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"order": order},
	})
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dishdash-backend/models"
)

func TestGetCartWithoutCart(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	_, token := seedTestUser(db, "no-cart@test.com", models.RoleUser)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/v1/cart", nil, token))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAddItemCreatesCart(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	user, token := seedTestUser(db, "first-add@test.com", models.RoleUser)
	_, _, restaurant := seedOwnerWithRestaurant(db, "Cart Foods")
	category := seedCategory(db, "Mains", restaurant.ID)
	item := seedItem(db, "Wrap", category.ID, 6)

	body := map[string]interface{}{"itemId": item.ID.String(), "quantity": 2}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/v1/cart", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	cart := dataField(resp, "cart")
	if cart["totalCartPrice"].(float64) != 12 {
		t.Errorf("expected total 12, got %v", cart["totalCartPrice"])
	}

	var stored models.Cart
	if err := db.Where("user_id = ?", user.ID).First(&stored).Error; err != nil {
		t.Fatal("expected cart to be created")
	}
}

func TestAddSameItemTwiceIncrementsQuantity(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	user, token := seedTestUser(db, "twice@test.com", models.RoleUser)
	_, _, restaurant := seedOwnerWithRestaurant(db, "Twice Foods")
	category := seedCategory(db, "Mains", restaurant.ID)
	item := seedItem(db, "Noodles", category.ID, 10)

	body := map[string]interface{}{"itemId": item.ID.String()}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/v1/cart", body, token))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/v1/cart", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var entries []models.CartEntry
	var cart models.Cart
	db.Where("user_id = ?", user.ID).First(&cart)
	db.Where("cart_id = ?", cart.ID).Find(&entries)
	if len(entries) != 1 {
		t.Fatalf("expected a single entry, got %d", len(entries))
	}
	if entries[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", entries[0].Quantity)
	}
	if cart.TotalPrice != 20 {
		t.Errorf("expected total 20, got %v", cart.TotalPrice)
	}
}

func TestUpdateItemQuantityRecomputesTotal(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	user, token := seedTestUser(db, "qty@test.com", models.RoleUser)
	_, _, restaurant := seedOwnerWithRestaurant(db, "Qty Foods")
	category := seedCategory(db, "Mains", restaurant.ID)
	item := seedItem(db, "Bowl", category.ID, 8)
	cart := seedCart(db, user.ID, 1, item)

	body := map[string]interface{}{"quantity": 3}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/v1/cart/items/"+cart.Entries[0].ID.String(), body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.Cart
	db.Where("id = ?", cart.ID).First(&stored)
	if stored.TotalPrice != 24 {
		t.Errorf("expected total 24, got %v", stored.TotalPrice)
	}
}

func TestCartMutationDropsCouponDiscount(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	user, token := seedTestUser(db, "drop-discount@test.com", models.RoleUser)
	_, _, restaurant := seedOwnerWithRestaurant(db, "Discount Foods")
	category := seedCategory(db, "Mains", restaurant.ID)
	item := seedItem(db, "Plate", category.ID, 10)
	cart := seedCart(db, user.ID, 2, item)

	discounted := 15.0
	db.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Update("total_price_after_discount", discounted)

	body := map[string]interface{}{"quantity": 3}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/v1/cart/items/"+cart.Entries[0].ID.String(), body, token))

	var stored models.Cart
	db.Where("id = ?", cart.ID).First(&stored)
	if stored.TotalPriceAfterDiscount != nil {
		t.Errorf("expected discount dropped after mutation, got %v", *stored.TotalPriceAfterDiscount)
	}
}

func TestRemoveItemFromCart(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	user, token := seedTestUser(db, "remove@test.com", models.RoleUser)
	_, _, restaurant := seedOwnerWithRestaurant(db, "Remove Foods")
	category := seedCategory(db, "Mains", restaurant.ID)
	itemA := seedItem(db, "Keep", category.ID, 5)
	itemB := seedItem(db, "Drop", category.ID, 7)
	cart := seedCart(db, user.ID, 1, itemA, itemB)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/v1/cart/items/"+cart.Entries[1].ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.Cart
	db.Where("id = ?", cart.ID).First(&stored)
	if stored.TotalPrice != 5 {
		t.Errorf("expected total 5 after removal, got %v", stored.TotalPrice)
	}
}

func TestClearCartDeletesCartRow(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	user, token := seedTestUser(db, "clear@test.com", models.RoleUser)
	_, _, restaurant := seedOwnerWithRestaurant(db, "Clear Foods")
	category := seedCategory(db, "Mains", restaurant.ID)
	item := seedItem(db, "Gone", category.ID, 5)
	seedCart(db, user.ID, 1, item)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/v1/cart", nil, token))

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Error("expected cart to be gone")
	}
}

func TestApplyCouponComputesDiscountedTotal(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	user, token := seedTestUser(db, "coupon@test.com", models.RoleUser)
	_, _, restaurant := seedOwnerWithRestaurant(db, "Coupon Foods")
	category := seedCategory(db, "Mains", restaurant.ID)
	item := seedItem(db, "Deal Meal", category.ID, 50)
	seedCart(db, user.ID, 2, item)
	seedCoupon(db, "SAVE10", 10, restaurant.ID, time.Now().Add(24*time.Hour))

	// Coupon names match case-insensitively because they are stored uppercase.
	body := map[string]interface{}{"coupon": "save10"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/v1/cart/apply-coupon", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	cart := dataField(resp, "cart")
	if cart["totalPriceAfterDiscount"].(float64) != 90 {
		t.Errorf("expected discounted total 90, got %v", cart["totalPriceAfterDiscount"])
	}
	if cart["totalCartPrice"].(float64) != 100 {
		t.Errorf("expected base total unchanged at 100, got %v", cart["totalCartPrice"])
	}
}

func TestApplyExpiredCouponRejected(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	user, token := seedTestUser(db, "expired-coupon@test.com", models.RoleUser)
	_, _, restaurant := seedOwnerWithRestaurant(db, "Expired Foods")
	category := seedCategory(db, "Mains", restaurant.ID)
	item := seedItem(db, "Late Meal", category.ID, 20)
	seedCart(db, user.ID, 1, item)
	seedCoupon(db, "TOOLATE", 25, restaurant.ID, time.Now().Add(-time.Hour))

	body := map[string]interface{}{"coupon": "TOOLATE"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/v1/cart/apply-coupon", body, token))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCartForbiddenForOwners(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	_, ownerToken, _ := seedOwnerWithRestaurant(db, "No Cart For You")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/v1/cart", nil, ownerToken))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

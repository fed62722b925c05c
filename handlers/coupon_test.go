package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dishdash-backend/models"
)

func TestCreateCouponStoresUppercaseName(t *testing.T) {
	db := freshDB()
	router := setupCouponRouter(db)

	_, ownerToken, restaurant := seedOwnerWithRestaurant(db, "Coupon Home")

	body := map[string]interface{}{
		"name":      "summer20",
		"discount":  20,
		"expiresAt": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/v1/coupons", body, ownerToken))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	coupon := dataField(resp, "coupon")
	if coupon["name"] != "SUMMER20" {
		t.Errorf("expected uppercase name SUMMER20, got %v", coupon["name"])
	}
	if coupon["restaurantId"] != restaurant.ID.String() {
		t.Errorf("expected coupon pinned to own restaurant, got %v", coupon["restaurantId"])
	}
}

func TestCreateCouponDuplicateName(t *testing.T) {
	db := freshDB()
	router := setupCouponRouter(db)

	_, ownerToken, restaurant := seedOwnerWithRestaurant(db, "Dup Coupons")
	seedCoupon(db, "TAKEN", 10, restaurant.ID, time.Now().Add(time.Hour))

	body := map[string]interface{}{
		"name":      "taken",
		"discount":  15,
		"expiresAt": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/v1/coupons", body, ownerToken))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetCouponsOwnerScoped(t *testing.T) {
	db := freshDB()
	router := setupCouponRouter(db)

	_, ownerToken, restaurant := seedOwnerWithRestaurant(db, "Scoped Coupons")
	_, _, other := seedOwnerWithRestaurant(db, "Other Coupons")
	seedCoupon(db, "MINE", 10, restaurant.ID, time.Now().Add(time.Hour))
	seedCoupon(db, "THEIRS", 10, other.ID, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/v1/coupons", nil, ownerToken))

	resp := parseResponse(w)
	coupons := dataList(resp, "coupons")
	if len(coupons) != 1 {
		t.Fatalf("expected 1 coupon, got %d", len(coupons))
	}
	first := coupons[0].(map[string]interface{})
	if first["name"] != "MINE" {
		t.Errorf("expected MINE, got %v", first["name"])
	}
}

func TestGetCouponOtherOwnerForbidden(t *testing.T) {
	db := freshDB()
	router := setupCouponRouter(db)

	_, _, restaurant := seedOwnerWithRestaurant(db, "Secret Coupons")
	coupon := seedCoupon(db, "SECRET", 50, restaurant.ID, time.Now().Add(time.Hour))
	_, intruderToken, _ := seedOwnerWithRestaurant(db, "Nosy Coupons")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/v1/coupons/"+coupon.ID.String(), nil, intruderToken))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateCouponDiscount(t *testing.T) {
	db := freshDB()
	router := setupCouponRouter(db)

	_, ownerToken, restaurant := seedOwnerWithRestaurant(db, "Tuned Coupons")
	coupon := seedCoupon(db, "TUNE", 10, restaurant.ID, time.Now().Add(time.Hour))

	body := map[string]interface{}{"discount": 30}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/v1/coupons/"+coupon.ID.String(), body, ownerToken))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Coupon
	db.Where("id = ?", coupon.ID).First(&updated)
	if updated.Discount != 30 {
		t.Errorf("expected discount 30, got %v", updated.Discount)
	}
}

func TestDeleteCoupon(t *testing.T) {
	db := freshDB()
	router := setupCouponRouter(db)

	_, ownerToken, restaurant := seedOwnerWithRestaurant(db, "Spent Coupons")
	coupon := seedCoupon(db, "SPENT", 5, restaurant.ID, time.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/v1/coupons/"+coupon.ID.String(), nil, ownerToken))

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dishdash-backend/models"
)

func TestCreateMenuWithItems(t *testing.T) {
	db := freshDB()
	router := setupMenuRouter(db)

	_, ownerToken, restaurant := seedOwnerWithRestaurant(db, "Menu Home")
	category := seedCategory(db, "Mains", restaurant.ID)
	itemA := seedItem(db, "Soup", category.ID, 4)
	itemB := seedItem(db, "Bread", category.ID, 2)

	body := map[string]interface{}{
		"name":    "Lunch Deal",
		"itemIds": []string{itemA.ID.String(), itemB.ID.String()},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/v1/menus", body, ownerToken))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	menu := dataField(resp, "menu")
	if menu["slug"] != "lunch-deal" {
		t.Errorf("expected slug lunch-deal, got %v", menu["slug"])
	}
	items := menu["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 items on menu, got %d", len(items))
	}
}

func TestCreateMenuDeduplicatesItemIds(t *testing.T) {
	db := freshDB()
	router := setupMenuRouter(db)

	_, ownerToken, restaurant := seedOwnerWithRestaurant(db, "Menu Repeat")
	category := seedCategory(db, "Mains", restaurant.ID)
	item := seedItem(db, "Soup", category.ID, 4)

	body := map[string]interface{}{
		"name":    "Double Soup",
		"itemIds": []string{item.ID.String(), item.ID.String()},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/v1/menus", body, ownerToken))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	menu := dataField(resp, "menu")
	items := menu["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected repeated id to count once, got %d items", len(items))
	}
}

func TestCreateMenuRejectsForeignItems(t *testing.T) {
	db := freshDB()
	router := setupMenuRouter(db)

	_, ownerToken, _ := seedOwnerWithRestaurant(db, "Menu Strict")
	_, _, other := seedOwnerWithRestaurant(db, "Menu Donor")
	otherCategory := seedCategory(db, "Not Mine", other.ID)
	foreign := seedItem(db, "Foreign Dish", otherCategory.ID, 9)

	body := map[string]interface{}{
		"name":    "Stolen Menu",
		"itemIds": []string{foreign.ID.String()},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/v1/menus", body, ownerToken))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetMenusOwnerScoped(t *testing.T) {
	db := freshDB()
	router := setupMenuRouter(db)

	_, ownerToken, restaurant := seedOwnerWithRestaurant(db, "Menu Mine")
	_, _, other := seedOwnerWithRestaurant(db, "Menu Theirs")
	db.Create(&models.Menu{Name: "Mine", RestaurantID: restaurant.ID})
	db.Create(&models.Menu{Name: "Theirs", RestaurantID: other.ID})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/v1/menus", nil, ownerToken))

	resp := parseResponse(w)
	menus := dataList(resp, "menus")
	if len(menus) != 1 {
		t.Fatalf("expected 1 menu, got %d", len(menus))
	}
	first := menus[0].(map[string]interface{})
	if first["name"] != "Mine" {
		t.Errorf("expected Mine, got %v", first["name"])
	}
}

func TestUpdateMenuReplacesItems(t *testing.T) {
	db := freshDB()
	router := setupMenuRouter(db)

	_, ownerToken, restaurant := seedOwnerWithRestaurant(db, "Menu Swap")
	category := seedCategory(db, "Mains", restaurant.ID)
	itemA := seedItem(db, "Old Dish", category.ID, 4)
	itemB := seedItem(db, "New Dish", category.ID, 6)

	menu := models.Menu{Name: "Swap", RestaurantID: restaurant.ID, Items: []models.Item{itemA}}
	db.Create(&menu)

	body := map[string]interface{}{
		"itemIds": []string{itemB.ID.String()},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/v1/menus/"+menu.ID.String(), body, ownerToken))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	updated := dataField(resp, "menu")
	items := updated["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 item after replace, got %d", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["name"] != "New Dish" {
		t.Errorf("expected New Dish, got %v", first["name"])
	}
}

func TestDeleteMenuOtherOwnerForbidden(t *testing.T) {
	db := freshDB()
	router := setupMenuRouter(db)

	_, _, restaurant := seedOwnerWithRestaurant(db, "Menu Victim")
	menu := models.Menu{Name: "Keep Away", RestaurantID: restaurant.ID}
	db.Create(&menu)
	_, intruderToken, _ := seedOwnerWithRestaurant(db, "Menu Intruder")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/v1/menus/"+menu.ID.String(), nil, intruderToken))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

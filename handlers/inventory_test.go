package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dinepos-backend/models"
)

func TestCreateInventoryItemWithSupplier(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	branch := seedBranch(db, restaurant.ID, "Main", "MAIN")
	supplier := seedSupplier(db, restaurant.ID, "Greens Co")
	_, token := seedTestUser(db, "manager@test.com", models.RoleBranchManager, &restaurant.ID, &branch.ID)
	router := setupInventoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/inventory", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"branch_id":     branch.ID,
		"supplier_id":   supplier.ID,
		"name":          "Tomatoes",
		"unit":          "kg",
		"quantity":      12.5,
		"reorder_level": 5,
		"cost_per_unit": 2.40,
	}, token))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateInventoryItemUnknownSupplier(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	branch := seedBranch(db, restaurant.ID, "Main", "MAIN")
	_, token := seedTestUser(db, "manager@test.com", models.RoleBranchManager, &restaurant.ID, &branch.ID)
	router := setupInventoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/inventory", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"branch_id":     branch.ID,
		"supplier_id":   "4f2a1f2e-1111-4222-8333-444455556666",
		"name":          "Tomatoes",
		"unit":          "kg",
	}, token))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetInventoryLowStockFilter(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	branch := seedBranch(db, restaurant.ID, "Main", "MAIN")
	seedInventoryItem(db, restaurant.ID, branch.ID, "Flour", 50, 10)
	seedInventoryItem(db, restaurant.ID, branch.ID, "Saffron", 2, 5)
	_, token := seedTestUser(db, "manager@test.com", models.RoleBranchManager, &restaurant.ID, &branch.ID)
	router := setupInventoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/inventory?low_stock=true", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	items := parseResponseArray(w)
	if len(items) != 1 || items[0]["name"] != "Saffron" {
		t.Fatalf("expected only Saffron below reorder level, got %v", items)
	}
	if items[0]["needs_reorder"] != true {
		t.Errorf("expected needs_reorder flag set, got %v", items[0]["needs_reorder"])
	}
}

func TestUpdateInventoryQuantityClearsReorderFlag(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	branch := seedBranch(db, restaurant.ID, "Main", "MAIN")
	item := seedInventoryItem(db, restaurant.ID, branch.ID, "Saffron", 2, 5)
	_, token := seedTestUser(db, "manager@test.com", models.RoleBranchManager, &restaurant.ID, &branch.ID)
	router := setupInventoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", fmt.Sprintf("/api/inventory/%s", item.ID),
		map[string]interface{}{"quantity": 20.0}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", fmt.Sprintf("/api/inventory/%s", item.ID), nil, token))
	if parseResponse(w)["needs_reorder"] != false {
		t.Errorf("expected needs_reorder false after restock, got %v", parseResponse(w)["needs_reorder"])
	}
}

func TestDeleteInventoryItemExcludedFromListing(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	branch := seedBranch(db, restaurant.ID, "Main", "MAIN")
	item := seedInventoryItem(db, restaurant.ID, branch.ID, "Flour", 50, 10)
	_, token := seedTestUser(db, "manager@test.com", models.RoleBranchManager, &restaurant.ID, &branch.ID)
	router := setupInventoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/inventory/%s", item.ID), nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/inventory", nil, token))
	if items := parseResponseArray(w); len(items) != 0 {
		t.Errorf("expected empty inventory after delete, got %v", items)
	}
}

func TestDeleteSupplierExcludedFromListing(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	supplier := seedSupplier(db, restaurant.ID, "Greens Co")
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin, &restaurant.ID, nil)
	router := setupSupplierRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/suppliers/%s", supplier.ID), nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/suppliers", nil, token))
	if suppliers := parseResponseArray(w); len(suppliers) != 0 {
		t.Errorf("expected empty supplier listing after delete, got %v", suppliers)
	}
}

func TestCreateSupplierInvalidEmail(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin, &restaurant.ID, nil)
	router := setupSupplierRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/suppliers", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"name":          "Sketchy Co",
		"email":         "not-an-email",
	}, token))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dinepos-backend/models"
)

func TestPublicMenuHidesInactiveItems(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	category := seedCategory(db, restaurant.ID, "Mains")
	seedMenuItem(db, restaurant.ID, category.ID, "Burger", 10.00)
	hidden := seedMenuItem(db, restaurant.ID, category.ID, "Off Menu", 8.00)
	db.Model(&hidden).Update("status", models.StatusInactive)
	router := setupPublicRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/public/menus", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	items := parseResponseArray(w)
	if len(items) != 1 || items[0]["name"] != "Burger" {
		t.Errorf("expected only active Burger, got %v", items)
	}

	// Direct fetch of an inactive item 404s.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", fmt.Sprintf("/api/public/menus/%s", hidden.ID), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for inactive item, got %d", w.Code)
	}
}

func TestPublicCategoriesIncludeGlobalForBranch(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	branch := seedBranch(db, restaurant.ID, "Main", "MAIN")
	other := seedBranch(db, restaurant.ID, "Uptown", "UPTN")
	seedCategory(db, restaurant.ID, "Global Mains")
	branchCat := seedCategory(db, restaurant.ID, "Main Specials")
	db.Model(&branchCat).Update("branch_id", branch.ID)
	otherCat := seedCategory(db, restaurant.ID, "Uptown Specials")
	db.Model(&otherCat).Update("branch_id", other.ID)
	router := setupPublicRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", fmt.Sprintf("/api/public/categories?branch_id=%s", branch.ID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	categories := parseResponseArray(w)
	if len(categories) != 2 {
		t.Fatalf("expected global + branch categories, got %v", categories)
	}
	for _, cat := range categories {
		if cat["name"] == "Uptown Specials" {
			t.Error("another branch's category leaked into the listing")
		}
	}
}

func TestPublicBranchesOnlyActive(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	seedBranch(db, restaurant.ID, "Main", "MAIN")
	closed := seedBranch(db, restaurant.ID, "Closed", "CLSD")
	db.Model(&closed).Update("status", models.StatusInactive)
	router := setupPublicRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/public/branches", nil))
	branches := parseResponseArray(w)
	if len(branches) != 1 || branches[0]["code"] != "MAIN" {
		t.Errorf("expected only the active branch, got %v", branches)
	}
}

func TestPublicTaxLookup(t *testing.T) {
	db := freshDB()
	seedTax(db, "US", 8.25)
	router := setupPublicRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/public/taxes/us", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["percentage"].(float64) != 8.25 {
		t.Errorf("expected 8.25, got %v", parseResponse(w)["percentage"])
	}
}

func TestPublicFavoritesByPublicID(t *testing.T) {
	db := freshDB()
	restaurant := seedRestaurant(db, "Diner", "US")
	category := seedCategory(db, restaurant.ID, "Mains")
	burger := seedMenuItem(db, restaurant.ID, category.ID, "Burger", 10.00)
	customer := seedCustomer(db, restaurant.ID, "Regular", "555-0100")
	db.Create(&models.Favorite{CustomerID: customer.ID, MenuItemID: burger.ID})
	router := setupPublicRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", fmt.Sprintf("/api/public/customers/%s/favorites", customer.CustomerID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	favorites := parseResponseArray(w)
	if len(favorites) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(favorites))
	}

	// Unknown public IDs are a 404, not an empty list.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/public/customers/CUST-unknown/favorites", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

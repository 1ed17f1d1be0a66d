package database

import (
	"os"
	"testing"

	"dinepos-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY,
			"email" TEXT NOT NULL UNIQUE,
			"password" TEXT NOT NULL,
			"name" TEXT,
			"phone" TEXT,
			"role" TEXT DEFAULT 'Staff',
			"restaurant_id" TEXT,
			"branch_id" TEXT,
			"status" TEXT DEFAULT 'active',
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "restaurants" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT NOT NULL,
			"slug" TEXT NOT NULL UNIQUE,
			"description" TEXT,
			"logo_url" TEXT,
			"country" TEXT DEFAULT 'DEFAULT',
			"currency" TEXT DEFAULT 'USD',
			"is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "branches" (
			"id" TEXT PRIMARY KEY,
			"restaurant_id" TEXT NOT NULL,
			"name" TEXT NOT NULL,
			"code" TEXT NOT NULL,
			"address" TEXT,
			"city" TEXT,
			"phone" TEXT,
			"email" TEXT,
			"timezone" TEXT DEFAULT 'UTC',
			"status" TEXT DEFAULT 'active',
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_restaurant_branch_code ON "branches"("restaurant_id","code")`,
		`CREATE TABLE IF NOT EXISTS "taxes" (
			"id" TEXT PRIMARY KEY,
			"country" TEXT NOT NULL UNIQUE,
			"name" TEXT,
			"percentage" REAL NOT NULL,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
	}

	for _, ddl := range tables {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("failed to create table: %v", err)
		}
	}

	return db
}

func TestCreateDefaultAdmin(t *testing.T) {
	os.Unsetenv("ADMIN_EMAIL")
	os.Unsetenv("ADMIN_PASSWORD")
	db := setupTestDB(t)

	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatalf("CreateDefaultAdmin failed: %v", err)
	}

	var admin models.User
	if err := db.Where("email = ?", "admin@dinepos.local").First(&admin).Error; err != nil {
		t.Fatalf("default admin not found: %v", err)
	}
	if admin.Role != models.RoleSuperAdmin {
		t.Errorf("expected role %s, got %s", models.RoleSuperAdmin, admin.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")); err != nil {
		t.Error("stored password hash does not match default password")
	}
}

func TestCreateDefaultAdminIdempotent(t *testing.T) {
	os.Unsetenv("ADMIN_EMAIL")
	os.Unsetenv("ADMIN_PASSWORD")
	db := setupTestDB(t)

	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 user after two runs, got %d", count)
	}
}

func TestSeedDefaultRestaurant(t *testing.T) {
	os.Unsetenv("RESTAURANT_NAME")
	db := setupTestDB(t)

	if err := SeedDefaultRestaurant(db); err != nil {
		t.Fatalf("SeedDefaultRestaurant failed: %v", err)
	}

	var restaurant models.Restaurant
	if err := db.First(&restaurant).Error; err != nil {
		t.Fatalf("default restaurant not found: %v", err)
	}
	if restaurant.Slug != "my-restaurant" {
		t.Errorf("expected slug my-restaurant, got %s", restaurant.Slug)
	}
	if !restaurant.IsActive {
		t.Error("expected default restaurant to be active")
	}

	var branch models.Branch
	if err := db.Where("restaurant_id = ?", restaurant.ID).First(&branch).Error; err != nil {
		t.Fatalf("default branch not found: %v", err)
	}
	if branch.Code != "MAIN" {
		t.Errorf("expected branch code MAIN, got %s", branch.Code)
	}
}

func TestSeedDefaultRestaurantIdempotent(t *testing.T) {
	os.Unsetenv("RESTAURANT_NAME")
	db := setupTestDB(t)

	if err := SeedDefaultRestaurant(db); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := SeedDefaultRestaurant(db); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	var restaurants, branches int64
	db.Model(&models.Restaurant{}).Count(&restaurants)
	db.Model(&models.Branch{}).Count(&branches)
	if restaurants != 1 || branches != 1 {
		t.Errorf("expected 1 restaurant and 1 branch after two runs, got %d and %d", restaurants, branches)
	}
}

func TestSeedDefaultRestaurantSkipsExisting(t *testing.T) {
	db := setupTestDB(t)

	existing := models.Restaurant{Name: "Test Diner", Slug: "test-diner", IsActive: true}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatal(err)
	}

	if err := SeedDefaultRestaurant(db); err != nil {
		t.Fatalf("SeedDefaultRestaurant failed: %v", err)
	}

	var count int64
	db.Model(&models.Restaurant{}).Count(&count)
	if count != 1 {
		t.Errorf("expected seeding to skip a populated database, got %d restaurants", count)
	}
}

func TestSeedDefaultTaxesIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := SeedDefaultTaxes(db); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := SeedDefaultTaxes(db); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	var taxes []models.Tax
	db.Where("country = ?", models.DefaultTaxCountry).Find(&taxes)
	if len(taxes) != 1 {
		t.Fatalf("expected 1 DEFAULT tax row after two runs, got %d", len(taxes))
	}
	if taxes[0].Percentage != 0 {
		t.Errorf("expected 0%% fallback rate, got %v", taxes[0].Percentage)
	}
}

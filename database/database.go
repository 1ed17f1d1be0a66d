package database

import (
	"log"
	"os"
	"strings"

	"dinepos-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=dinepos port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.Restaurant{},
		&models.Branch{},
		&models.Category{},
		&models.MenuItem{},
		&models.MenuVariantGroup{},
		&models.MenuVariantOption{},
		&models.Table{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderTokenCounter{},
		&models.TableCart{},
		&models.TableCartItem{},
		&models.TableBatch{},
		&models.TableBatchItem{},
		&models.Customer{},
		&models.Favorite{},
		&models.User{},
		&models.Tax{},
		&models.Supplier{},
		&models.InventoryItem{},
		&models.Recipe{},
		&models.RecipeIngredient{},
	)
}

// CreateDefaultAdmin creates the initial Super_Admin account if no user
// exists with the configured email.
func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@dinepos.local"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleSuperAdmin,
		Name:     "Super Admin",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin created: %s", adminEmail)
	return nil
}

// SeedDefaultRestaurant creates an initial restaurant with one branch so
// a fresh install has a tenant to hang menus and tables off. Skipped as
// soon as any restaurant exists.
func SeedDefaultRestaurant(db *gorm.DB) error {
	var count int64
	db.Model(&models.Restaurant{}).Count(&count)
	if count > 0 {
		return nil
	}

	name := os.Getenv("RESTAURANT_NAME")
	if name == "" {
		name = "My Restaurant"
	}

	restaurant := models.Restaurant{
		Name:     name,
		Slug:     strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Country:  models.DefaultTaxCountry,
		Currency: "USD",
		IsActive: true,
	}
	if err := db.Create(&restaurant).Error; err != nil {
		return err
	}

	branch := models.Branch{
		RestaurantID: restaurant.ID,
		Name:         "Main Branch",
		Code:         "MAIN",
		Status:       models.StatusActive,
	}
	if err := db.Create(&branch).Error; err != nil {
		return err
	}

	log.Printf("Default restaurant created: %s (branch %s)", restaurant.Name, branch.Code)
	return nil
}

// SeedDefaultTaxes ensures the DEFAULT tax fallback row exists.
func SeedDefaultTaxes(db *gorm.DB) error {
	var count int64
	db.Model(&models.Tax{}).Where("country = ?", models.DefaultTaxCountry).Count(&count)
	if count > 0 {
		return nil
	}

	tax := models.Tax{
		Country:    models.DefaultTaxCountry,
		Name:       "Standard",
		Percentage: 0,
	}
	if err := db.Create(&tax).Error; err != nil {
		return err
	}

	log.Println("Default tax row created")
	return nil
}

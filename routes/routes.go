package routes

import (
	"time"

	"dinepos-backend/handlers"
	"dinepos-backend/middleware"
	"dinepos-backend/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	restaurantHandler := &handlers.RestaurantHandler{DB: db}
	branchHandler := &handlers.BranchHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	menuHandler := &handlers.MenuHandler{DB: db}
	tableHandler := &handlers.TableHandler{DB: db, Hub: hub}
	orderHandler := &handlers.OrderHandler{DB: db, Hub: hub}
	posHandler := &handlers.POSHandler{DB: db, Hub: hub}
	customerHandler := &handlers.CustomerHandler{DB: db}
	staffHandler := &handlers.StaffHandler{DB: db}
	taxHandler := &handlers.TaxHandler{DB: db}
	supplierHandler := &handlers.SupplierHandler{DB: db}
	inventoryHandler := &handlers.InventoryHandler{DB: db}
	recipeHandler := &handlers.RecipeHandler{DB: db}
	publicHandler := &handlers.PublicHandler{DB: db}

	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		auth.Use(authLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Customer-facing catalog, no auth
		public := api.Group("/public")
		{
			public.GET("/branches", publicHandler.GetBranches)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/menus", publicHandler.GetMenuItems)
			public.GET("/menus/:id", publicHandler.GetMenuItem)
			public.GET("/taxes/:country", publicHandler.GetTaxByCountry)
			public.GET("/customers/:customerId/favorites", publicHandler.GetCustomerFavorites)
		}
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)

		// Restaurant management
		restaurants := protected.Group("/restaurants")
		{
			restaurants.GET("", middleware.RequirePermission(middleware.ResRestaurants, middleware.ActRead), restaurantHandler.GetRestaurants)
			restaurants.GET("/:id", middleware.RequirePermission(middleware.ResRestaurants, middleware.ActRead), restaurantHandler.GetRestaurant)
			restaurants.POST("", middleware.RequirePermission(middleware.ResRestaurants, middleware.ActWrite), restaurantHandler.CreateRestaurant)
			restaurants.PUT("/:id", middleware.RequirePermission(middleware.ResRestaurants, middleware.ActWrite), restaurantHandler.UpdateRestaurant)
			restaurants.DELETE("/:id", middleware.RequirePermission(middleware.ResRestaurants, middleware.ActDelete), restaurantHandler.DeleteRestaurant)
		}

		branches := protected.Group("/branches")
		{
			branches.GET("", middleware.RequirePermission(middleware.ResBranches, middleware.ActRead), branchHandler.GetBranches)
			branches.GET("/:id", middleware.RequirePermission(middleware.ResBranches, middleware.ActRead), branchHandler.GetBranch)
			branches.POST("", middleware.RequirePermission(middleware.ResBranches, middleware.ActWrite), branchHandler.CreateBranch)
			branches.PUT("/:id", middleware.RequirePermission(middleware.ResBranches, middleware.ActWrite), branchHandler.UpdateBranch)
			branches.DELETE("/:id", middleware.RequirePermission(middleware.ResBranches, middleware.ActDelete), branchHandler.DeleteBranch)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", middleware.RequirePermission(middleware.ResCategories, middleware.ActRead), categoryHandler.GetCategories)
			categories.GET("/:id", middleware.RequirePermission(middleware.ResCategories, middleware.ActRead), categoryHandler.GetCategory)
			categories.POST("", middleware.RequirePermission(middleware.ResCategories, middleware.ActWrite), categoryHandler.CreateCategory)
			categories.PUT("/:id", middleware.RequirePermission(middleware.ResCategories, middleware.ActWrite), categoryHandler.UpdateCategory)
			categories.DELETE("/:id", middleware.RequirePermission(middleware.ResCategories, middleware.ActDelete), categoryHandler.DeleteCategory)
		}

		menus := protected.Group("/menus")
		{
			menus.GET("", middleware.RequirePermission(middleware.ResMenus, middleware.ActRead), menuHandler.GetMenuItems)
			menus.GET("/:id", middleware.RequirePermission(middleware.ResMenus, middleware.ActRead), menuHandler.GetMenuItem)
			menus.POST("", middleware.RequirePermission(middleware.ResMenus, middleware.ActWrite), menuHandler.CreateMenuItem)
			menus.PUT("/:id", middleware.RequirePermission(middleware.ResMenus, middleware.ActWrite), menuHandler.UpdateMenuItem)
			menus.DELETE("/:id", middleware.RequirePermission(middleware.ResMenus, middleware.ActDelete), menuHandler.DeleteMenuItem)
		}

		tables := protected.Group("/tables")
		{
			tables.GET("", middleware.RequirePermission(middleware.ResTables, middleware.ActRead), tableHandler.GetTables)
			tables.GET("/:id", middleware.RequirePermission(middleware.ResTables, middleware.ActRead), tableHandler.GetTable)
			tables.POST("", middleware.RequirePermission(middleware.ResTables, middleware.ActWrite), tableHandler.CreateTable)
			tables.PUT("/:id", middleware.RequirePermission(middleware.ResTables, middleware.ActWrite), tableHandler.UpdateTable)
			tables.DELETE("/:id", middleware.RequirePermission(middleware.ResTables, middleware.ActDelete), tableHandler.DeleteTable)
			tables.PUT("/:id/status", middleware.RequirePermission(middleware.ResTables, middleware.ActWrite), tableHandler.UpdateTableStatus)

			tables.POST("/:id/reservations", middleware.RequirePermission(middleware.ResTables, middleware.ActWrite), tableHandler.CreateReservation)
			tables.PUT("/:id/reservations/:reservationId", middleware.RequirePermission(middleware.ResTables, middleware.ActWrite), tableHandler.UpdateReservation)
			tables.DELETE("/:id/reservations/:reservationId", middleware.RequirePermission(middleware.ResTables, middleware.ActWrite), tableHandler.CancelReservation)
		}

		orders := protected.Group("/orders")
		{
			orders.GET("", middleware.RequirePermission(middleware.ResOrders, middleware.ActRead), orderHandler.GetOrders)
			orders.GET("/:id", middleware.RequirePermission(middleware.ResOrders, middleware.ActRead), orderHandler.GetOrder)
			orders.POST("", middleware.RequirePermission(middleware.ResOrders, middleware.ActWrite), orderHandler.CreateOrder)
			orders.PUT("/:id/status", middleware.RequirePermission(middleware.ResOrders, middleware.ActWrite), orderHandler.UpdateOrderStatus)
			orders.PUT("/:id/payment", middleware.RequirePermission(middleware.ResOrders, middleware.ActWrite), orderHandler.UpdatePaymentStatus)
		}

		// POS: table carts, KOT batches, settlement
		pos := protected.Group("/pos")
		{
			pos.GET("/tables/:id/cart", middleware.RequirePermission(middleware.ResPOS, middleware.ActRead), posHandler.GetTableCart)
			pos.PUT("/tables/:id/cart", middleware.RequirePermission(middleware.ResPOS, middleware.ActWrite), posHandler.UpdateTableCart)
			pos.POST("/tables/:id/kot", middleware.RequirePermission(middleware.ResPOS, middleware.ActWrite), posHandler.IssueKOT)
			pos.GET("/tables/:id/batches", middleware.RequirePermission(middleware.ResPOS, middleware.ActRead), posHandler.GetBatches)
			pos.PUT("/tables/:id/batches/:batchId/items/:menuItemId", middleware.RequirePermission(middleware.ResPOS, middleware.ActWrite), posHandler.UpdateBatchItem)
			pos.DELETE("/tables/:id/batches/:batchId/items/:menuItemId", middleware.RequirePermission(middleware.ResPOS, middleware.ActWrite), posHandler.DeleteBatchItem)
			pos.POST("/tables/:id/settle", middleware.RequirePermission(middleware.ResPOS, middleware.ActWrite), posHandler.SettleTable)
		}

		customers := protected.Group("/customers")
		{
			customers.GET("", middleware.RequirePermission(middleware.ResCustomers, middleware.ActRead), customerHandler.GetCustomers)
			customers.GET("/:id", middleware.RequirePermission(middleware.ResCustomers, middleware.ActRead), customerHandler.GetCustomer)
			customers.POST("", middleware.RequirePermission(middleware.ResCustomers, middleware.ActWrite), customerHandler.CreateCustomer)
			customers.PUT("/:id", middleware.RequirePermission(middleware.ResCustomers, middleware.ActWrite), customerHandler.UpdateCustomer)
			customers.DELETE("/:id", middleware.RequirePermission(middleware.ResCustomers, middleware.ActDelete), customerHandler.DeleteCustomer)

			customers.GET("/:id/favorites", middleware.RequirePermission(middleware.ResCustomers, middleware.ActRead), customerHandler.GetFavorites)
			customers.POST("/:id/favorites", middleware.RequirePermission(middleware.ResCustomers, middleware.ActWrite), customerHandler.AddFavorite)
			customers.DELETE("/:id/favorites/:menuItemId", middleware.RequirePermission(middleware.ResCustomers, middleware.ActWrite), customerHandler.RemoveFavorite)
		}

		staff := protected.Group("/staff")
		{
			staff.GET("/branch/:branchId", middleware.RequirePermission(middleware.ResStaff, middleware.ActRead), staffHandler.GetBranchStaff)
			staff.POST("", middleware.RequirePermission(middleware.ResStaff, middleware.ActWrite), staffHandler.CreateStaff)
			staff.PUT("/:id", middleware.RequirePermission(middleware.ResStaff, middleware.ActWrite), staffHandler.UpdateStaff)
			staff.DELETE("/:id", middleware.RequirePermission(middleware.ResStaff, middleware.ActDelete), staffHandler.DeleteStaff)
		}

		taxes := protected.Group("/taxes")
		{
			taxes.GET("", middleware.RequirePermission(middleware.ResTaxes, middleware.ActRead), taxHandler.GetTaxes)
			taxes.GET("/:country", middleware.RequirePermission(middleware.ResTaxes, middleware.ActRead), taxHandler.GetTaxByCountry)
			taxes.POST("", middleware.RequirePermission(middleware.ResTaxes, middleware.ActWrite), taxHandler.CreateTax)
			taxes.PUT("/:country", middleware.RequirePermission(middleware.ResTaxes, middleware.ActWrite), taxHandler.UpdateTax)
			taxes.DELETE("/:country", middleware.RequirePermission(middleware.ResTaxes, middleware.ActDelete), taxHandler.DeleteTax)
		}

		suppliers := protected.Group("/suppliers")
		{
			suppliers.GET("", middleware.RequirePermission(middleware.ResSuppliers, middleware.ActRead), supplierHandler.GetSuppliers)
			suppliers.GET("/:id", middleware.RequirePermission(middleware.ResSuppliers, middleware.ActRead), supplierHandler.GetSupplier)
			suppliers.POST("", middleware.RequirePermission(middleware.ResSuppliers, middleware.ActWrite), supplierHandler.CreateSupplier)
			suppliers.PUT("/:id", middleware.RequirePermission(middleware.ResSuppliers, middleware.ActWrite), supplierHandler.UpdateSupplier)
			suppliers.DELETE("/:id", middleware.RequirePermission(middleware.ResSuppliers, middleware.ActDelete), supplierHandler.DeleteSupplier)
		}

		inventory := protected.Group("/inventory")
		{
			inventory.GET("", middleware.RequirePermission(middleware.ResInventory, middleware.ActRead), inventoryHandler.GetInventory)
			inventory.GET("/:id", middleware.RequirePermission(middleware.ResInventory, middleware.ActRead), inventoryHandler.GetInventoryItem)
			inventory.POST("", middleware.RequirePermission(middleware.ResInventory, middleware.ActWrite), inventoryHandler.CreateInventoryItem)
			inventory.PUT("/:id", middleware.RequirePermission(middleware.ResInventory, middleware.ActWrite), inventoryHandler.UpdateInventoryItem)
			inventory.DELETE("/:id", middleware.RequirePermission(middleware.ResInventory, middleware.ActDelete), inventoryHandler.DeleteInventoryItem)
		}

		recipes := protected.Group("/recipes")
		{
			recipes.GET("", middleware.RequirePermission(middleware.ResRecipes, middleware.ActRead), recipeHandler.GetRecipes)
			recipes.GET("/:id", middleware.RequirePermission(middleware.ResRecipes, middleware.ActRead), recipeHandler.GetRecipe)
			recipes.POST("", middleware.RequirePermission(middleware.ResRecipes, middleware.ActWrite), recipeHandler.CreateRecipe)
			recipes.PUT("/:id", middleware.RequirePermission(middleware.ResRecipes, middleware.ActWrite), recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", middleware.RequirePermission(middleware.ResRecipes, middleware.ActDelete), recipeHandler.DeleteRecipe)
		}
	}

	// Realtime socket; clients identify themselves in the join frame
	r.GET("/ws", realtime.WSHandler(hub))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

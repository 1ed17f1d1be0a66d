package middleware

import (
	"net/http"

	"dinepos-backend/models"

	"github.com/gin-gonic/gin"
)

// Resources gated by the policy table.
const (
	ResRestaurants = "restaurants"
	ResBranches    = "branches"
	ResCategories  = "categories"
	ResMenus       = "menus"
	ResTables      = "tables"
	ResOrders      = "orders"
	ResPOS         = "pos"
	ResCustomers   = "customers"
	ResStaff       = "staff"
	ResTaxes       = "taxes"
	ResSuppliers   = "suppliers"
	ResInventory   = "inventory"
	ResRecipes     = "recipes"
)

// Actions a role may be granted on a resource.
const (
	ActRead   = "read"
	ActWrite  = "write"
	ActDelete = "delete"
)

// policy maps role -> resource -> allowed actions. Authorization is decided
// here, in one place, rather than by per-route role lists. Super_Admin is
// not listed: it passes every check.
var policy = map[string]map[string][]string{
	models.RoleAdmin: {
		ResRestaurants: {ActRead, ActWrite, ActDelete},
		ResBranches:    {ActRead, ActWrite, ActDelete},
		ResCategories:  {ActRead, ActWrite, ActDelete},
		ResMenus:       {ActRead, ActWrite, ActDelete},
		ResTables:      {ActRead, ActWrite, ActDelete},
		ResOrders:      {ActRead, ActWrite, ActDelete},
		ResPOS:         {ActRead, ActWrite},
		ResCustomers:   {ActRead, ActWrite, ActDelete},
		ResStaff:       {ActRead, ActWrite, ActDelete},
		ResTaxes:       {ActRead, ActWrite, ActDelete},
		ResSuppliers:   {ActRead, ActWrite, ActDelete},
		ResInventory:   {ActRead, ActWrite, ActDelete},
		ResRecipes:     {ActRead, ActWrite, ActDelete},
	},
	models.RoleBranchManager: {
		ResBranches:   {ActRead, ActWrite},
		ResCategories: {ActRead, ActWrite, ActDelete},
		ResMenus:      {ActRead, ActWrite, ActDelete},
		ResTables:     {ActRead, ActWrite, ActDelete},
		ResOrders:     {ActRead, ActWrite},
		ResPOS:        {ActRead, ActWrite},
		ResCustomers:  {ActRead, ActWrite, ActDelete},
		ResStaff:      {ActRead, ActWrite},
		ResTaxes:      {ActRead},
		ResSuppliers:  {ActRead, ActWrite, ActDelete},
		ResInventory:  {ActRead, ActWrite, ActDelete},
		ResRecipes:    {ActRead, ActWrite, ActDelete},
	},
	models.RolePOSOperator: {
		ResCategories: {ActRead},
		ResMenus:      {ActRead},
		ResTables:     {ActRead, ActWrite},
		ResOrders:     {ActRead, ActWrite},
		ResPOS:        {ActRead, ActWrite},
		ResCustomers:  {ActRead, ActWrite},
		ResTaxes:      {ActRead},
	},
	models.RoleKitchen: {
		ResMenus:  {ActRead},
		ResOrders: {ActRead, ActWrite},
	},
	models.RoleChef: {
		ResMenus:   {ActRead},
		ResOrders:  {ActRead, ActWrite},
		ResRecipes: {ActRead},
	},
	models.RoleWaiter: {
		ResCategories: {ActRead},
		ResMenus:      {ActRead},
		ResTables:     {ActRead, ActWrite},
		ResOrders:     {ActRead},
	},
	models.RoleStaff: {
		ResCategories: {ActRead},
		ResMenus:      {ActRead},
		ResTables:     {ActRead},
		ResOrders:     {ActRead},
	},
	models.RoleDelivery: {
		ResOrders: {ActRead, ActWrite},
	},
}

// Allowed reports whether role may perform action on resource.
func Allowed(role, resource, action string) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	resources, ok := policy[role]
	if !ok {
		return false
	}
	for _, a := range resources[resource] {
		if a == action {
			return true
		}
	}
	return false
}

// RequirePermission gates a route on the policy table. Must run after
// AuthMiddleware.
func RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		if !Allowed(role.(string), resource, action) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminMiddleware requires the user to be a Super_Admin or admin.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || (role != models.RoleSuperAdmin && role != models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"dinepos-backend/models"
	"dinepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
}

func authTestRouter(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/protected", chain...)
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := authTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := authTestRouter()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "NotBearer abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := authTestRouter()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareSetsClaims(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	token, err := utils.GenerateToken(userID, "claims@test.com", models.RoleAdmin, &restaurantID, nil)
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		gotID, _ := c.Get("user_id")
		gotRole, _ := c.Get("user_role")
		gotRestaurant, _ := c.Get("restaurant_id")
		if gotID != userID {
			t.Errorf("expected user_id %s, got %v", userID, gotID)
		}
		if gotRole != models.RoleAdmin {
			t.Errorf("expected role %s, got %v", models.RoleAdmin, gotRole)
		}
		if gotRestaurant != restaurantID {
			t.Errorf("expected restaurant_id %s, got %v", restaurantID, gotRestaurant)
		}
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAllowedPolicy(t *testing.T) {
	tests := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{models.RoleSuperAdmin, ResStaff, ActDelete, true},
		{models.RoleAdmin, ResRestaurants, ActDelete, true},
		{models.RoleBranchManager, ResRestaurants, ActRead, false},
		{models.RoleBranchManager, ResInventory, ActWrite, true},
		{models.RolePOSOperator, ResPOS, ActWrite, true},
		{models.RolePOSOperator, ResStaff, ActRead, false},
		{models.RoleKitchen, ResOrders, ActWrite, true},
		{models.RoleKitchen, ResTables, ActWrite, false},
		{models.RoleWaiter, ResTables, ActWrite, true},
		{models.RoleWaiter, ResOrders, ActWrite, false},
		{models.RoleStaff, ResMenus, ActRead, true},
		{models.RoleStaff, ResMenus, ActWrite, false},
		{"nonexistent", ResMenus, ActRead, false},
	}

	for _, tt := range tests {
		if got := Allowed(tt.role, tt.resource, tt.action); got != tt.want {
			t.Errorf("Allowed(%s, %s, %s) = %v, want %v", tt.role, tt.resource, tt.action, got, tt.want)
		}
	}
}

func TestRequirePermissionDenies(t *testing.T) {
	token, err := utils.GenerateToken(uuid.New(), "waiter@test.com", models.RoleWaiter, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	router := authTestRouter(RequirePermission(ResStaff, ActWrite))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequirePermissionAllows(t *testing.T) {
	token, err := utils.GenerateToken(uuid.New(), "pos@test.com", models.RolePOSOperator, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	router := authTestRouter(RequirePermission(ResPOS, ActWrite))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

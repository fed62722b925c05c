package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"dishdash-backend/models"
	"dishdash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	var err error
	testDB, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)

	ddl := []string{
		`CREATE TABLE "users" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT,
			"slug" TEXT,
			"email" TEXT UNIQUE,
			"password" TEXT,
			"phone" TEXT,
			"profile_image" TEXT,
			"role" TEXT DEFAULT 'user',
			"active" INTEGER DEFAULT 1,
			"password_changed_at" DATETIME,
			"password_reset_code" TEXT,
			"password_reset_expires" DATETIME,
			"password_reset_verified" INTEGER DEFAULT 0,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE TABLE "restaurants" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT UNIQUE,
			"slug" TEXT,
			"latitude" REAL,
			"longitude" REAL,
			"description" TEXT,
			"cuisine_type" TEXT,
			"ratings_average" REAL DEFAULT 4.5,
			"ratings_quantity" INTEGER DEFAULT 0,
			"phone" TEXT,
			"image_cover" TEXT,
			"delivery_price" REAL DEFAULT 0,
			"owner_id" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE TABLE "categories" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT,
			"slug" TEXT,
			"restaurant_id" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
	}
	for _, sql := range ddl {
		if err := testDB.Exec(sql).Error; err != nil {
			panic("failed to migrate test database: " + err.Error())
		}
	}

	os.Exit(m.Run())
}

func freshDB() *gorm.DB {
	testDB.Exec("DELETE FROM categories")
	testDB.Exec("DELETE FROM restaurants")
	testDB.Exec("DELETE FROM users")
	return testDB
}

func seedUser(db *gorm.DB, role string) (models.User, string) {
	user := models.User{
		ID:       uuid.New(),
		Name:     "Scope User",
		Email:    uuid.New().String()[:8] + "@test.com",
		Password: "x",
		Role:     role,
		Active:   true,
	}
	db.Create(&user)
	token, _ := utils.GenerateToken(user.ID, user.Email, user.Role)
	return user, token
}

// scopeProbe returns a router that lists category rows through the resolved
// scope, so tests can observe exactly which constraint was attached.
func scopeProbe(db *gorm.DB, kind ScopeKind) *gin.Engine {
	r := gin.New()
	handler := func(c *gin.Context) {
		scope := GetScope(c)
		var categories []models.Category
		if err := scope.Apply(db.Model(&models.Category{})).Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(categories)})
	}
	r.GET("/probe", AuthMiddleware(db), ResolveScope(db, kind), handler)
	r.GET("/parent/:id/probe", ResolveScope(db, kind), handler)
	return r
}

func TestResolveScopeOwnerWithoutRestaurant(t *testing.T) {
	db := freshDB()
	_, token := seedUser(db, models.RoleOwner)
	router := scopeProbe(db, ScopeRestaurant)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestResolveScopeOwnerRestrictedToOwnRows(t *testing.T) {
	db := freshDB()
	owner, token := seedUser(db, models.RoleOwner)

	mine := models.Restaurant{ID: uuid.New(), Name: "Mine", OwnerID: owner.ID}
	other := models.Restaurant{ID: uuid.New(), Name: "Other", OwnerID: uuid.New()}
	db.Create(&mine)
	db.Create(&other)
	db.Create(&models.Category{ID: uuid.New(), Name: "A", RestaurantID: mine.ID})
	db.Create(&models.Category{ID: uuid.New(), Name: "B", RestaurantID: other.ID})

	router := scopeProbe(db, ScopeRestaurant)
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != `{"count":1}` {
		t.Errorf("expected 1 visible category, got %s", w.Body.String())
	}
}

func TestResolveScopeAdminUnrestricted(t *testing.T) {
	db := freshDB()
	_, token := seedUser(db, models.RoleAdmin)

	db.Create(&models.Category{ID: uuid.New(), Name: "A", RestaurantID: uuid.New()})
	db.Create(&models.Category{ID: uuid.New(), Name: "B", RestaurantID: uuid.New()})

	router := scopeProbe(db, ScopeRestaurant)
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Body.String() != `{"count":2}` {
		t.Errorf("expected 2 visible categories, got %s", w.Body.String())
	}
}

func TestResolveScopeParentParamOverrides(t *testing.T) {
	db := freshDB()

	parent := uuid.New()
	db.Create(&models.Category{ID: uuid.New(), Name: "A", RestaurantID: parent})
	db.Create(&models.Category{ID: uuid.New(), Name: "B", RestaurantID: uuid.New()})

	// Unauthenticated nested listing is constrained by the parent id.
	router := scopeProbe(db, ScopeRestaurant)
	req := httptest.NewRequest("GET", "/parent/"+parent.String()+"/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Body.String() != `{"count":1}` {
		t.Errorf("expected 1 visible category under parent, got %s", w.Body.String())
	}
}

func TestAllowedToRejectsOtherRoles(t *testing.T) {
	db := freshDB()
	_, token := seedUser(db, models.RoleUser)

	r := gin.New()
	r.GET("/admin-only", AuthMiddleware(db), AllowedTo(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	db := freshDB()

	r := gin.New()
	r.GET("/protected", AuthMiddleware(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	db := freshDB()
	user, token := seedUser(db, models.RoleUser)
	db.Unscoped().Delete(&models.User{}, "id = ?", user.ID)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

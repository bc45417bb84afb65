package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipehub/backend/internal/database"
	"github.com/recipehub/backend/internal/middleware"
	"github.com/recipehub/backend/internal/models"
	"github.com/recipehub/backend/internal/service"
)

// TestDB holds the test database and services
type TestDB struct {
	DB          *gorm.DB
	AuthService *service.AuthService
}

// SetupTestDB creates an in-memory sqlite database with the full schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// a single connection keeps every query on the same :memory: database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{
		DB:          db,
		AuthService: service.NewAuthService(db, nil),
	}
}

// SetupTestRouter creates a router with the full API wired against an
// in-memory database. Recipe images go to a temp directory.
func SetupTestRouter(t *testing.T) (*gin.Engine, *TestDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB := SetupTestDB(t)

	recipeService := service.NewRecipeService(testDB.DB, "title DESC")
	tagService := service.NewTagService(testDB.DB)
	ingredientService := service.NewIngredientService(testDB.DB)
	storage := service.NewLocalStorage(t.TempDir(), "http://testserver")
	imageService := service.NewImageService(storage, recipeService)

	authHandler := NewAuthHandler(testDB.AuthService, nil)
	profileHandler := NewProfileHandler(testDB.AuthService)
	recipeHandler := NewRecipeHandler(recipeService)
	tagHandler := NewTagHandler(tagService)
	ingredientHandler := NewIngredientHandler(ingredientService)
	imageHandler := NewImageHandler(imageService)

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(testDB.AuthService))
	profileHandler.RegisterRoutes(protected)
	recipeHandler.RegisterRoutes(protected)
	tagHandler.RegisterRoutes(protected)
	ingredientHandler.RegisterRoutes(protected)
	imageHandler.RegisterRoutes(protected)

	return router, testDB
}

// CreateTestUser creates a user with a bcrypt-hashed password.
func CreateTestUser(t *testing.T, testDB *TestDB, name, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := testDB.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// TokenFor issues a bearer token for the given user.
func TokenFor(t *testing.T, testDB *TestDB, user *models.User) string {
	t.Helper()

	token, err := testDB.AuthService.IssueToken(context.Background(), user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token.Key
}

// PerformRequest makes a JSON request against the router. token may be
// empty for unauthenticated requests.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

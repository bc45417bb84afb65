package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipehub/backend/internal/models"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestRegisterHashesPassword(t *testing.T) {
	db := setupServiceDB(t)
	authService := NewAuthService(db, nil)

	user, err := authService.Register(context.Background(), "Carlos Test", "carlos@example.com", "testpass123")
	require.NoError(t, err)

	assert.NotEqual(t, "testpass123", user.PasswordHash)
	assert.True(t, user.IsActive)

	authed, err := authService.Authenticate(context.Background(), "carlos@example.com", "testpass123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupServiceDB(t)
	authService := NewAuthService(db, nil)

	_, err := authService.Register(context.Background(), "Carlos Test", "carlos@example.com", "testpass123")
	require.NoError(t, err)

	_, err = authService.Register(context.Background(), "Someone Else", "carlos@example.com", "otherpass123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterPasswordTooShort(t *testing.T) {
	db := setupServiceDB(t)
	authService := NewAuthService(db, nil)

	_, err := authService.Register(context.Background(), "Carlos Test", "carlos@example.com", "te")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db := setupServiceDB(t)
	authService := NewAuthService(db, nil)

	_, err := authService.Register(context.Background(), "Carlos Test", "carlos@example.com", "testpass123")
	require.NoError(t, err)

	_, err = authService.Authenticate(context.Background(), "carlos@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	db := setupServiceDB(t)
	authService := NewAuthService(db, nil)

	user, err := authService.Register(context.Background(), "Carlos Test", "carlos@example.com", "testpass123")
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err = authService.Authenticate(context.Background(), "carlos@example.com", "testpass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueTokenIsStable(t *testing.T) {
	db := setupServiceDB(t)
	authService := NewAuthService(db, nil)

	user, err := authService.Register(context.Background(), "Carlos Test", "carlos@example.com", "testpass123")
	require.NoError(t, err)

	first, err := authService.IssueToken(context.Background(), user)
	require.NoError(t, err)
	assert.Len(t, first.Key, 40)

	second, err := authService.IssueToken(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)
}

func TestValidateToken(t *testing.T) {
	db := setupServiceDB(t)
	authService := NewAuthService(db, nil)

	user, err := authService.Register(context.Background(), "Carlos Test", "carlos@example.com", "testpass123")
	require.NoError(t, err)
	token, err := authService.IssueToken(context.Background(), user)
	require.NoError(t, err)

	resolved, err := authService.ValidateToken(context.Background(), token.Key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	_, err = authService.ValidateToken(context.Background(), "not-a-real-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = authService.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenInactiveUser(t *testing.T) {
	db := setupServiceDB(t)
	authService := NewAuthService(db, nil)

	user, err := authService.Register(context.Background(), "Carlos Test", "carlos@example.com", "testpass123")
	require.NoError(t, err)
	token, err := authService.IssueToken(context.Background(), user)
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err = authService.ValidateToken(context.Background(), token.Key)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfilePasswordTooShort(t *testing.T) {
	db := setupServiceDB(t)
	authService := NewAuthService(db, nil)

	user, err := authService.Register(context.Background(), "Carlos Test", "carlos@example.com", "testpass123")
	require.NoError(t, err)

	short := "te"
	_, err = authService.UpdateProfile(context.Background(), user.ID, nil, &short)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

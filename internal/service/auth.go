package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/recipehub/backend/internal/models"
)

// MinPasswordLength is enforced on registration and password changes.
const MinPasswordLength = 5

// tokenCacheTTL bounds how long a bearer token lookup may be served
// from redis without touching the database.
const tokenCacheTTL = 5 * time.Minute

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService owns user credentials and bearer tokens.
type AuthService struct {
	db    *gorm.DB
	cache *redis.Client
}

// NewAuthService creates a new AuthService. cache may be nil, in which
// case every token lookup goes to the database.
func NewAuthService(db *gorm.DB, cache *redis.Client) *AuthService {
	return &AuthService{db: db, cache: cache}
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// the unique index backs up the pre-check under concurrent registration
		if isDuplicateErr(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &user, nil
}

// Authenticate verifies email/password against the user store.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IssueToken returns the user's bearer token, creating one on first login.
func (s *AuthService) IssueToken(ctx context.Context, user *models.User) (*models.AuthToken, error) {
	var token models.AuthToken
	err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	key, err := generateTokenKey()
	if err != nil {
		return nil, err
	}
	token = models.AuthToken{Key: key, UserID: user.ID}
	if err := s.db.WithContext(ctx).Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// ValidateToken resolves a bearer token key to its user, consulting the
// redis cache before the database.
func (s *AuthService) ValidateToken(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, ErrInvalidToken
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, tokenCacheKey(key)).Result(); err == nil {
			if userID, err := uuid.Parse(cached); err == nil {
				return s.userByID(ctx, userID)
			}
		}
	}

	var token models.AuthToken
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&token).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if s.cache != nil {
		// cache failures never fail the request
		_ = s.cache.Set(ctx, tokenCacheKey(key), token.UserID.String(), tokenCacheTTL).Err()
	}

	return s.userByID(ctx, token.UserID)
}

// UpdateProfile applies a partial update of name and/or password to the
// given user. Password updates are re-hashed.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, password *string) (*models.User, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if password != nil {
		if len(*password) < MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.userByID(ctx, userID)
}

func (s *AuthService) userByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	return &user, nil
}

func generateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func tokenCacheKey(key string) string {
	return "authtoken:" + key
}

func isDuplicateErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/recipehub/backend/internal/models"
)

// UserInput carries the fields a staff user may set through the admin
// pages.
type UserInput struct {
	Name        string
	Email       string
	Password    string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
}

// UserService exposes the user store to the admin site.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns all users ordered by email.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("email ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get retrieves a single user by id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new user with the given flags.
func (s *UserService) Create(ctx context.Context, input UserInput) (*models.User, error) {
	if len(input.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsActive:     input.IsActive,
		IsStaff:      input.IsStaff,
		IsSuperuser:  input.IsSuperuser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Update modifies a user's fields. An empty password leaves the
// stored hash unchanged.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":         input.Name,
		"email":        input.Email,
		"is_active":    input.IsActive,
		"is_staff":     input.IsStaff,
		"is_superuser": input.IsSuperuser,
	}
	if input.Password != "" {
		if len(input.Password) < MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// CreateSuperuser is a convenience wrapper used by the seeder.
func (s *UserService) CreateSuperuser(ctx context.Context, name, email, password string) (*models.User, error) {
	return s.Create(ctx, UserInput{
		Name:        name,
		Email:       email,
		Password:    password,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	})
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipehub/backend/internal/models"
)

var ErrIngredientExists = errors.New("ingredient with this name already exists")

// IngredientService handles the per-user ingredient store
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// List returns the user's ingredients ordered by name.
func (s *IngredientService) List(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Create adds an ingredient for the user. Names are unique per user.
func (s *IngredientService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Ingredient, error) {
	var existing models.Ingredient
	if err := s.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&existing).Error; err == nil {
		return nil, ErrIngredientExists
	}

	ingredient := models.Ingredient{Name: name, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrIngredientExists
		}
		return nil, err
	}
	return &ingredient, nil
}

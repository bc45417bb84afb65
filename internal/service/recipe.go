package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipehub/backend/internal/models"
)

var (
	ErrUnknownTag        = errors.New("tag does not exist for this user")
	ErrUnknownIngredient = errors.New("ingredient does not exist for this user")
)

// RecipeInput carries the full field set for create and full updates.
type RecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []uuid.UUID
	IngredientIDs []uuid.UUID
}

// RecipePatch carries a partial update; nil fields are left untouched.
// Non-nil collections replace the existing set wholesale.
type RecipePatch struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uuid.UUID
	IngredientIDs *[]uuid.UUID
}

// RecipeService handles owner-scoped recipe operations
type RecipeService struct {
	db       *gorm.DB
	ordering string
}

// NewRecipeService creates a new RecipeService instance. ordering is a
// validated "column direction" clause for listings.
func NewRecipeService(db *gorm.DB, ordering string) *RecipeService {
	if ordering == "" {
		ordering = "title DESC"
	}
	return &RecipeService{db: db, ordering: ordering}
}

// List returns the recipes owned by userID.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		Order(s.ordering).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get retrieves one of the user's recipes with its tags and ingredients.
func (s *RecipeService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create persists a new recipe for userID. Referenced tag and
// ingredient IDs must already exist and belong to the same user.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	tags, err := s.resolveTags(ctx, userID, input.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ctx, userID, input.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        input.Link,
		UserID:      userID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Create(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return tx.Model(&recipe).Association("Ingredients").Replace(ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, recipe.ID)
}

// UpdatePartial applies a PATCH: only non-nil fields change, and a
// present collection replaces the prior set entirely.
func (s *RecipeService) UpdatePartial(ctx context.Context, userID, id uuid.UUID, patch RecipePatch) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// resolve before the transaction starts so the lookup queries do
	// not contend with the transaction's connection
	var tags []models.Tag
	if patch.TagIDs != nil {
		if tags, err = s.resolveTags(ctx, userID, *patch.TagIDs); err != nil {
			return nil, err
		}
	}
	var ingredients []models.Ingredient
	if patch.IngredientIDs != nil {
		if ingredients, err = s.resolveIngredients(ctx, userID, *patch.IngredientIDs); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.TimeMinutes != nil {
		updates["time_minutes"] = *patch.TimeMinutes
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Link != nil {
		updates["link"] = *patch.Link
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(recipe).Updates(updates).Error; err != nil {
				return err
			}
		}
		if patch.TagIDs != nil {
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		if patch.IngredientIDs != nil {
			if err := tx.Model(recipe).Association("Ingredients").Replace(ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

// UpdateFull applies a PUT: every field is taken from input, so an
// omitted link resets to empty and omitted collections are cleared.
func (s *RecipeService) UpdateFull(ctx context.Context, userID, id uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, userID, input.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ctx, userID, input.IngredientIDs)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":        input.Title,
			"time_minutes": input.TimeMinutes,
			"price":        input.Price,
			"link":         input.Link,
		}
		if err := tx.Model(recipe).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return tx.Model(recipe).Association("Ingredients").Replace(ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

// Delete removes one of the user's recipes.
func (s *RecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(recipe).Error
}

// SetImageURL records the stored image location on the recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, userID, id uuid.UUID, url string) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(recipe).Update("image_url", url).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *RecipeService) resolveTags(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(ids) == 0 {
		return tags, nil
	}
	if err := s.db.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != uniqueCount(ids) {
		return nil, ErrUnknownTag
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.Ingredient, error) {
	ingredients := []models.Ingredient{}
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := s.db.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	if len(ingredients) != uniqueCount(ids) {
		return nil, ErrUnknownIngredient
	}
	return ingredients, nil
}

func uniqueCount(ids []uuid.UUID) int {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}

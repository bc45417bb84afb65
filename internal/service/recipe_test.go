package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipehub/backend/internal/models"
)

func seedRecipeUser(t *testing.T, authService *AuthService, email string) uuid.UUID {
	t.Helper()

	user, err := authService.Register(context.Background(), "Recipe Owner", email, "testpass123")
	require.NoError(t, err)
	return user.ID
}

func TestListHonorsConfiguredOrdering(t *testing.T) {
	db := setupServiceDB(t)
	userID := seedRecipeUser(t, NewAuthService(db, nil), "owner@example.com")

	recipeService := NewRecipeService(db, "time_minutes ASC")
	for _, r := range []RecipeInput{
		{Title: "Slow roast", TimeMinutes: 180, Price: 12.00},
		{Title: "Quick salad", TimeMinutes: 5, Price: 3.00},
		{Title: "Stew", TimeMinutes: 90, Price: 8.00},
	} {
		_, err := recipeService.Create(context.Background(), userID, r)
		require.NoError(t, err)
	}

	recipes, err := recipeService.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Quick salad", recipes[0].Title)
	assert.Equal(t, "Stew", recipes[1].Title)
	assert.Equal(t, "Slow roast", recipes[2].Title)
}

func TestDefaultOrderingIsTitleDescending(t *testing.T) {
	db := setupServiceDB(t)
	userID := seedRecipeUser(t, NewAuthService(db, nil), "owner@example.com")

	recipeService := NewRecipeService(db, "")
	for _, title := range []string{"Arepas", "Ceviche", "Bandeja paisa"} {
		_, err := recipeService.Create(context.Background(), userID, RecipeInput{Title: title, TimeMinutes: 10, Price: 5.00})
		require.NoError(t, err)
	}

	recipes, err := recipeService.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Ceviche", recipes[0].Title)
	assert.Equal(t, "Bandeja paisa", recipes[1].Title)
	assert.Equal(t, "Arepas", recipes[2].Title)
}

func TestUpdatePartialReplacesTagsOnSingleConnection(t *testing.T) {
	db := setupServiceDB(t)
	userID := seedRecipeUser(t, NewAuthService(db, nil), "owner@example.com")

	tagService := NewTagService(db)
	oldTag, err := tagService.Create(context.Background(), userID, "Dinner")
	require.NoError(t, err)
	newTag, err := tagService.Create(context.Background(), userID, "Lunch")
	require.NoError(t, err)

	recipeService := NewRecipeService(db, "")
	recipe, err := recipeService.Create(context.Background(), userID, RecipeInput{
		Title:       "Curry",
		TimeMinutes: 40,
		Price:       7.25,
		TagIDs:      []uuid.UUID{oldTag.ID},
	})
	require.NoError(t, err)

	// the pool is capped at one connection, so the patch must not hold
	// the transaction's connection while resolving tag IDs
	type result struct {
		recipe *models.Recipe
		err    error
	}
	done := make(chan result, 1)
	go func() {
		tagIDs := []uuid.UUID{newTag.ID}
		updated, err := recipeService.UpdatePartial(context.Background(), userID, recipe.ID, RecipePatch{
			TagIDs: &tagIDs,
		})
		done <- result{recipe: updated, err: err}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		require.Len(t, res.recipe.Tags, 1)
		assert.Equal(t, newTag.ID, res.recipe.Tags[0].ID)
		assert.Equal(t, "Curry", res.recipe.Title)
	case <-time.After(5 * time.Second):
		t.Fatal("UpdatePartial did not complete on a single-connection pool")
	}
}

func TestCreateRejectsDuplicateIDsMismatch(t *testing.T) {
	db := setupServiceDB(t)
	userID := seedRecipeUser(t, NewAuthService(db, nil), "owner@example.com")

	tag, err := NewTagService(db).Create(context.Background(), userID, "Dessert")
	require.NoError(t, err)

	// duplicated IDs collapse to one tag and must not trip the
	// existence check
	recipeService := NewRecipeService(db, "")
	recipe, err := recipeService.Create(context.Background(), userID, RecipeInput{
		Title:       "Flan",
		TimeMinutes: 50,
		Price:       4.00,
		TagIDs:      []uuid.UUID{tag.ID, tag.ID},
	})
	require.NoError(t, err)
	assert.Len(t, recipe.Tags, 1)
}

package api

import (
	"github.com/google/uuid"

	"github.com/recipehub/backend/internal/models"
)

// UserResponse is the public representation of a user. The password
// hash never appears in any response.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ProfileResponse is the self-profile representation.
type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{Name: u.Name, Email: u.Email}
}

type TagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func newTagResponse(t *models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

type IngredientResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func newIngredientResponse(i *models.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name}
}

// RecipeListItem is the listing representation: tags and ingredients
// appear as IDs only.
type RecipeListItem struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	TimeMinutes int         `json:"time_minutes"`
	Price       float64     `json:"price"`
	Link        string      `json:"link"`
	ImageURL    string      `json:"image_url"`
	Tags        []uuid.UUID `json:"tags"`
	Ingredients []uuid.UUID `json:"ingredients"`
}

func newRecipeListItem(r *models.Recipe) RecipeListItem {
	item := RecipeListItem{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		ImageURL:    r.ImageURL,
		Tags:        []uuid.UUID{},
		Ingredients: []uuid.UUID{},
	}
	for _, t := range r.Tags {
		item.Tags = append(item.Tags, t.ID)
	}
	for _, i := range r.Ingredients {
		item.Ingredients = append(item.Ingredients, i.ID)
	}
	return item
}

// RecipeDetail is the detail representation: tags and ingredients are
// resolved to full sub-objects.
type RecipeDetail struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       float64              `json:"price"`
	Link        string               `json:"link"`
	ImageURL    string               `json:"image_url"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

func newRecipeDetail(r *models.Recipe) RecipeDetail {
	detail := RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		ImageURL:    r.ImageURL,
		Tags:        []TagResponse{},
		Ingredients: []IngredientResponse{},
	}
	for i := range r.Tags {
		detail.Tags = append(detail.Tags, newTagResponse(&r.Tags[i]))
	}
	for i := range r.Ingredients {
		detail.Ingredients = append(detail.Ingredients, newIngredientResponse(&r.Ingredients[i]))
	}
	return detail
}

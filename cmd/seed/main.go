package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/recipehub/backend/config"
	"github.com/recipehub/backend/internal/database"
	"github.com/recipehub/backend/internal/service"
)

// Seeds a development database with an admin account and a couple of
// users carrying sample recipes, tags and ingredients.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	users := service.NewUserService(db)
	auth := service.NewAuthService(db, nil)
	recipes := service.NewRecipeService(db, cfg.RecipeOrdering)
	tags := service.NewTagService(db)
	ingredients := service.NewIngredientService(db)

	if _, err := users.CreateSuperuser(ctx, "Admin", "admin@recipehub.local", "changeme123"); err != nil {
		log.Printf("superuser: %v", err)
	}

	demo := []struct {
		name, email string
	}{
		{"Alice Demo", "alice@recipehub.local"},
		{"Bob Demo", "bob@recipehub.local"},
	}

	for _, d := range demo {
		user, err := auth.Register(ctx, d.name, d.email, "demopass123")
		if err != nil {
			log.Printf("user %s: %v", d.email, err)
			continue
		}

		tagIDs := []uuid.UUID{}
		for _, name := range []string{"Dessert", "Vegan"} {
			tag, err := tags.Create(ctx, user.ID, name)
			if err != nil {
				log.Printf("tag %s: %v", name, err)
				continue
			}
			tagIDs = append(tagIDs, tag.ID)
		}

		ingredientIDs := []uuid.UUID{}
		for _, name := range []string{"Flour", "Sugar", "Salt"} {
			ingredient, err := ingredients.Create(ctx, user.ID, name)
			if err != nil {
				log.Printf("ingredient %s: %v", name, err)
				continue
			}
			ingredientIDs = append(ingredientIDs, ingredient.ID)
		}

		_, err = recipes.Create(ctx, user.ID, service.RecipeInput{
			Title:         "Chocolate cheesecake",
			TimeMinutes:   30,
			Price:         5.00,
			Link:          "https://example.com/cheesecake",
			TagIDs:        tagIDs,
			IngredientIDs: ingredientIDs,
		})
		if err != nil {
			log.Printf("recipe for %s: %v", d.email, err)
		}
	}

	log.Println("Seeding complete")
}

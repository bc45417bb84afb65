package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	TimeMinutes int            `gorm:"not null" json:"time_minutes"`
	Price       float64        `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string         `gorm:"size:255" json:"link"`
	ImageURL    string         `gorm:"size:255" json:"image_url"`
	UserID      uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Tags        []Tag          `gorm:"many2many:recipe_tags;" json:"tags"`
	Ingredients []Ingredient   `gorm:"many2many:recipe_ingredients;" json:"ingredients"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Tag is a per-user label reusable across that user's recipes.
type Tag struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255;not null;uniqueIndex:idx_tags_user_name" json:"name"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex:idx_tags_user_name" json:"user_id"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Ingredient is scoped and reused the same way tags are.
type Ingredient struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name" json:"name"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex:idx_ingredients_user_name" json:"user_id"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

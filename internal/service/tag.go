package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipehub/backend/internal/models"
)

var ErrTagExists = errors.New("tag with this name already exists")

// TagService handles the per-user tag store
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// List returns the user's tags ordered by name.
func (s *TagService) List(ctx context.Context, userID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Create adds a tag for the user. Names are unique per user.
func (s *TagService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Tag, error) {
	var existing models.Tag
	if err := s.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&existing).Error; err == nil {
		return nil, ErrTagExists
	}

	tag := models.Tag{Name: name, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	return &tag, nil
}

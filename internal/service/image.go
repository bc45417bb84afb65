package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/recipehub/backend/config"
)

// Storage persists an uploaded object and returns its public URL.
type Storage interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// S3Storage stores images in an S3 bucket
type S3Storage struct {
	s3cfg *config.S3Config
}

func NewS3Storage(s3cfg *config.S3Config) *S3Storage {
	return &S3Storage{s3cfg: s3cfg}
}

func (s *S3Storage) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.s3cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3cfg.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3cfg.BucketName, key), nil
}

// LocalStorage stores images on disk, served under /uploads
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	dest := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", err
	}
	return s.baseURL + "/uploads/" + key, nil
}

// ImageService attaches uploaded images to recipes.
type ImageService struct {
	storage Storage
	recipes *RecipeService
}

func NewImageService(storage Storage, recipes *RecipeService) *ImageService {
	return &ImageService{storage: storage, recipes: recipes}
}

// UploadRecipeImage stores the image and records its URL on the
// user's recipe.
func (s *ImageService) UploadRecipeImage(ctx context.Context, userID, recipeID uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	// ownership check happens before any bytes are written
	if _, err := s.recipes.Get(ctx, userID, recipeID); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("recipe-images/%s%s", recipeID, ext)

	url, err := s.storage.Save(ctx, key, contentType, body)
	if err != nil {
		return "", err
	}

	if _, err := s.recipes.SetImageURL(ctx, userID, recipeID, url); err != nil {
		return "", err
	}
	return url, nil
}

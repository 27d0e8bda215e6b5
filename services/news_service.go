package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/chess-federation/models"
	"github.com/Dosada05/chess-federation/repositories"
	"github.com/Dosada05/chess-federation/storage"
)

const (
	DefaultNewsLimit = 10
	maxNewsLimit     = 100
)

type NewsService interface {
	CreateNews(ctx context.Context, input CreateNewsInput, image *FileUpload) (*models.NewsPost, error)
	ListNews(ctx context.Context, offset, limit int) ([]models.NewsPost, error)
	DeleteNews(ctx context.Context, id int) error
}

type CreateNewsInput struct {
	Title   string
	Content string
}

type newsService struct {
	newsRepo      repositories.NewsRepository
	imageUploader storage.FileUploader
	logger        *slog.Logger
}

func NewNewsService(newsRepo repositories.NewsRepository, imageUploader storage.FileUploader, logger *slog.Logger) NewsService {
	return &newsService{
		newsRepo:      newsRepo,
		imageUploader: imageUploader,
		logger:        logger,
	}
}

func (s *newsService) CreateNews(ctx context.Context, input CreateNewsInput, image *FileUpload) (*models.NewsPost, error) {
	if err := requireFields(map[string]string{"title": input.Title, "content": input.Content}); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, fmt.Errorf("%w: image file is required", ErrValidationFailed)
	}
	if err := validateImage(*image); err != nil {
		return nil, err
	}

	res, err := uploadFile(ctx, s.imageUploader, storage.FolderNewsImages, *image)
	if err != nil {
		return nil, err
	}

	post := &models.NewsPost{
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		ImageURL: &res.Location,
		ImageKey: &res.Key,
	}
	if err := s.newsRepo.Create(ctx, post); err != nil {
		discardUpload(ctx, s.imageUploader, res.Key, s.logger)
		return nil, fmt.Errorf("failed to create news post: %w", err)
	}
	return post, nil
}

func (s *newsService) ListNews(ctx context.Context, offset, limit int) ([]models.NewsPost, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset and limit must not be negative", ErrValidationFailed)
	}
	if limit == 0 {
		limit = DefaultNewsLimit
	}
	if limit > maxNewsLimit {
		limit = maxNewsLimit
	}

	posts, err := s.newsRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	if posts == nil {
		return []models.NewsPost{}, nil
	}
	return posts, nil
}

// DeleteNews удаляет запись, затем (best-effort) её картинку из хранилища.
func (s *newsService) DeleteNews(ctx context.Context, id int) error {
	post, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return ErrNewsNotFound
		}
		return fmt.Errorf("failed to get news post %d: %w", id, err)
	}

	if err := s.newsRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return ErrNewsNotFound
		}
		return fmt.Errorf("failed to delete news post %d: %w", id, err)
	}

	if key := derefString(post.ImageKey); key != "" {
		if err := s.imageUploader.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to delete news image", slog.Int("news_id", id), slog.String("key", key), slog.Any("error", err))
		}
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/chess-federation/models"
	"github.com/Dosada05/chess-federation/repositories"
	"github.com/Dosada05/chess-federation/storage"
)

const (
	MaxGalleryBatch   = 50
	galleryUploadJobs = 5
)

type GalleryService interface {
	UploadImages(ctx context.Context, input UploadImagesInput, files []FileUpload) ([]models.GalleryImage, error)
	ListImages(ctx context.Context, album *string) ([]models.GalleryImage, error)
}

type UploadImagesInput struct {
	Title string
	Album string
}

type galleryService struct {
	imageRepo     repositories.ImageRepository
	imageUploader storage.FileUploader
	logger        *slog.Logger
}

func NewGalleryService(imageRepo repositories.ImageRepository, imageUploader storage.FileUploader, logger *slog.Logger) GalleryService {
	return &galleryService{
		imageRepo:     imageRepo,
		imageUploader: imageUploader,
		logger:        logger,
	}
}

// UploadImages загружает пачку картинок параллельно; каждая картинка сохраняется в БД
// сразу после своей загрузки. Пачка не атомарна: при ошибке уже сохранённые
// картинки остаются в галерее.
func (s *galleryService) UploadImages(ctx context.Context, input UploadImagesInput, files []FileUpload) ([]models.GalleryImage, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no images were uploaded", ErrValidationFailed)
	}
	if len(files) > MaxGalleryBatch {
		return nil, fmt.Errorf("%w: at most %d images per upload, got %d", ErrValidationFailed, MaxGalleryBatch, len(files))
	}
	if err := requireFields(map[string]string{"title": input.Title, "album": input.Album}); err != nil {
		return nil, err
	}
	for i := range files {
		if err := validateImage(files[i]); err != nil {
			return nil, fmt.Errorf("image %q: %w", files[i].FileName, err)
		}
	}

	title := strings.TrimSpace(input.Title)
	album := strings.TrimSpace(input.Album)
	images := make([]models.GalleryImage, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(galleryUploadJobs)
	for i := range files {
		i := i
		g.Go(func() error {
			res, err := uploadFile(gctx, s.imageUploader, storage.FolderGalleryImages, files[i])
			if err != nil {
				return fmt.Errorf("image %q: %w", files[i].FileName, err)
			}

			img := models.GalleryImage{Title: title, Album: album, URL: res.Location, Key: &res.Key}
			if err := s.imageRepo.Create(gctx, &img); err != nil {
				discardUpload(gctx, s.imageUploader, res.Key, s.logger)
				return fmt.Errorf("failed to save image %q: %w", files[i].FileName, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "gallery images uploaded", slog.String("album", album), slog.Int("count", len(images)))
	return images, nil
}

func (s *galleryService) ListImages(ctx context.Context, album *string) ([]models.GalleryImage, error) {
	images, err := s.imageRepo.List(ctx, nonEmpty(album))
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	if images == nil {
		return []models.GalleryImage{}, nil
	}
	return images, nil
}

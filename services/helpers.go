package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/Dosada05/chess-federation/cache"
	"github.com/Dosada05/chess-federation/storage"
)

// --- Общие хелперы ---

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// requireFields returns ErrValidationFailed listing every blank field.
func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: missing required fields: %s", ErrValidationFailed, strings.Join(missing, ", "))
}

// nonEmpty turns "" (and nil) into nil: в частичных обновлениях пустое значение означает "не менять".
func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// invalidateCache is best-effort: a stale cache expires by TTL anyway.
func invalidateCache(ctx context.Context, c cache.Cache, logger *slog.Logger) {
	if err := c.Invalidate(ctx); err != nil {
		logger.WarnContext(ctx, "failed to invalidate cache", slog.Any("error", err))
	}
}

// --- Загрузка файлов ---

// FileUpload is one file taken from a multipart request.
type FileUpload struct {
	Reader      io.Reader
	FileName    string
	ContentType string
	Size        int64
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// GetExtensionFromContentType maps an accepted image content type to a file extension.
func GetExtensionFromContentType(contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if ext, ok := allowedImageTypes[ct]; ok {
		return ext, nil
	}
	return "", fmt.Errorf("%w: unsupported image content type '%s'", ErrValidationFailed, contentType)
}

func validateImage(f FileUpload) error {
	if f.Reader == nil {
		return fmt.Errorf("%w: image file is required", ErrValidationFailed)
	}
	_, err := GetExtensionFromContentType(f.ContentType)
	return err
}

func uploadFile(ctx context.Context, uploader storage.FileUploader, folder string, f FileUpload) (*storage.UploadResult, error) {
	name := f.FileName
	if path.Ext(name) == "" {
		if ext, err := GetExtensionFromContentType(f.ContentType); err == nil {
			name += ext
		}
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.NewObjectKey(folder, name)
	res, err := uploader.Upload(ctx, key, contentType, f.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	return res, nil
}

// discardUpload удаляет объект, для которого не удалось сохранить запись в БД.
func discardUpload(ctx context.Context, uploader storage.FileUploader, key string, logger *slog.Logger) {
	if err := uploader.Delete(context.WithoutCancel(ctx), key); err != nil {
		logger.ErrorContext(ctx, "failed to delete orphaned object", slog.String("key", key), slog.Any("error", err))
	}
}

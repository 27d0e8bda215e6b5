package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// Папки внутри бакетов.
const (
	FolderNewsImages    = "news_images"
	FolderGalleryImages = "gallery"
	FolderMatches       = "matches"
)

// NewObjectKey builds "<folder>/<uuid><ext>" keeping only the lower-cased extension
// of the client file name, so two uploads of "partida.pgn" never overwrite each other.
func NewObjectKey(folder, fileName string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(fileName, "\\", "/")))
	if len(ext) > 10 || strings.ContainsAny(ext, " ?#%") {
		ext = ""
	}
	return strings.Trim(folder, "/") + "/" + uuid.NewString() + ext
}

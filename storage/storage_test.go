package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://f005.backblazeb2.com/file/FAO-pgn", "matches/a.pgn", "https://f005.backblazeb2.com/file/FAO-pgn/matches/a.pgn"},
		{"https://f005.backblazeb2.com/file/FAO-pgn/", "/matches/a.pgn", "https://f005.backblazeb2.com/file/FAO-pgn/matches/a.pgn"},
		{"https://pub-123.r2.dev", "gallery/x.webp", "https://pub-123.r2.dev/gallery/x.webp"},
		{"", "gallery/x.webp", ""},
		{"https://pub-123.r2.dev", "", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PublicURL(tt.base, tt.key), "base=%q key=%q", tt.base, tt.key)
	}
}

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey(FolderMatches, "Ronda 1 - Perez vs Gomez.PGN")

	require.True(t, strings.HasPrefix(key, "matches/"))
	require.True(t, strings.HasSuffix(key, ".pgn"))
	id := strings.TrimSuffix(strings.TrimPrefix(key, "matches/"), ".pgn")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	assert.NotEqual(t, key, NewObjectKey(FolderMatches, "Ronda 1 - Perez vs Gomez.PGN"))
	assert.NotContains(t, NewObjectKey(FolderGalleryImages, `C:\fotos\evil.x y`), " ")
}

func TestNewS3Uploader_RequiresConfig(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), S3UploaderConfig{BucketName: "b"})
	assert.Error(t, err)
}

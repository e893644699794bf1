package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

var allowedContentTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"application/pdf": ".pdf",
}

// Asset is an uploaded file attached to a tournament.
type Asset struct {
	ID           string
	TournamentID string
	ObjectKey    string
	ContentType  string
	UploadedBy   string
	CreatedAt    time.Time
}

func IsAllowedContentType(contentType string) bool {
	_, ok := allowedContentTypes[strings.ToLower(strings.TrimSpace(contentType))]
	return ok
}

// ObjectKey builds the storage key for a new asset.
func ObjectKey(tournamentID, assetID, contentType string) string {
	ext := allowedContentTypes[strings.ToLower(strings.TrimSpace(contentType))]
	return path.Join("tournaments", tournamentID, "media", fmt.Sprintf("%s%s", assetID, ext))
}

// UploadForm is a presigned browser form upload: POST Fields plus the file to URL.
type UploadForm struct {
	URL    string
	Fields map[string]string
}

// Repository describes media asset persistence needs from use cases.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Asset, error)
	Create(ctx context.Context, item Asset) error
}

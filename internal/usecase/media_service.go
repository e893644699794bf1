package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/media"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	idgen "github.com/ShubhamShuklaX/Tournify/internal/platform/id"
)

// UploadPresigner issues a time-limited upload form bound to one object key
// and content type.
type UploadPresigner interface {
	PresignUpload(ctx context.Context, objectKey, contentType string, ttl time.Duration) (media.UploadForm, error)
}

type CreateUploadInput struct {
	TournamentID string
	ContentType  string
	UploadedBy   string
}

type MediaUpload struct {
	Asset        media.Asset
	UploadURL    string
	UploadFields map[string]string
	ExpiresAt    time.Time
}

type MediaService struct {
	tournamentRepo tournament.Repository
	mediaRepo      media.Repository
	presigner      UploadPresigner
	idGen          idgen.Generator
	ttl            time.Duration
	now            func() time.Time
}

func NewMediaService(
	tournamentRepo tournament.Repository,
	mediaRepo media.Repository,
	presigner UploadPresigner,
	idGen idgen.Generator,
	ttl time.Duration,
) *MediaService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &MediaService{
		tournamentRepo: tournamentRepo,
		mediaRepo:      mediaRepo,
		presigner:      presigner,
		idGen:          idGen,
		ttl:            ttl,
		now:            time.Now,
	}
}

func (s *MediaService) CreateUpload(ctx context.Context, input CreateUploadInput) (MediaUpload, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaService.CreateUpload")
	defer span.End()

	if s.presigner == nil {
		return MediaUpload{}, fmt.Errorf("%w: media storage is disabled", ErrDependencyUnavailable)
	}

	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	if !media.IsAllowedContentType(contentType) {
		return MediaUpload{}, fmt.Errorf("%w: content type %q is not allowed", ErrInvalidInput, contentType)
	}

	item, err := getTournament(ctx, s.tournamentRepo, input.TournamentID)
	if err != nil {
		return MediaUpload{}, err
	}

	assetID, err := s.idGen.NewID()
	if err != nil {
		return MediaUpload{}, fmt.Errorf("generate asset id: %w", err)
	}

	now := s.now().UTC()
	asset := media.Asset{
		ID:           assetID,
		TournamentID: item.ID,
		ObjectKey:    media.ObjectKey(item.ID, assetID, contentType),
		ContentType:  contentType,
		UploadedBy:   strings.TrimSpace(input.UploadedBy),
		CreatedAt:    now,
	}

	form, err := s.presigner.PresignUpload(ctx, asset.ObjectKey, contentType, s.ttl)
	if err != nil {
		return MediaUpload{}, fmt.Errorf("presign upload: %w", err)
	}
	if err := s.mediaRepo.Create(ctx, asset); err != nil {
		return MediaUpload{}, fmt.Errorf("create media asset: %w", err)
	}

	return MediaUpload{
		Asset:        asset,
		UploadURL:    form.URL,
		UploadFields: form.Fields,
		ExpiresAt:    now.Add(s.ttl),
	}, nil
}

func (s *MediaService) List(ctx context.Context, tournamentID string) ([]media.Asset, error) {
	item, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	items, err := s.mediaRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list media assets: %w", err)
	}

	return items, nil
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/media"
	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/repository/memory"
)

type fakePresigner struct {
	lastKey         string
	lastContentType string
	lastTTL         time.Duration
}

func (p *fakePresigner) PresignUpload(_ context.Context, objectKey, contentType string, ttl time.Duration) (media.UploadForm, error) {
	p.lastKey = objectKey
	p.lastContentType = contentType
	p.lastTTL = ttl
	return media.UploadForm{
		URL:    "https://uploads.example.test/tournify-media",
		Fields: map[string]string{"key": objectKey, "Content-Type": contentType},
	}, nil
}

func TestMediaService_CreateUpload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, time.November, 14, 10, 0, 0, 0, time.UTC)
	presigner := &fakePresigner{}
	mediaRepo := memory.NewMediaRepository()
	service := NewMediaService(memory.NewTournamentRepository(memory.SeedTournaments()), mediaRepo, presigner, &sequenceIDGenerator{}, 10*time.Minute)
	service.now = func() time.Time { return now }

	got, err := service.CreateUpload(ctx, CreateUploadInput{
		TournamentID: memory.TournamentIDMonsoonHat,
		ContentType:  " IMAGE/PNG ",
		UploadedBy:   memory.UserIDDirector,
	})
	if err != nil {
		t.Fatalf("create upload: %v", err)
	}
	if got.Asset.ObjectKey != "tournaments/monsoon-hat-2026/media/id-1.png" {
		t.Fatalf("unexpected object key: %s", got.Asset.ObjectKey)
	}
	if presigner.lastKey != got.Asset.ObjectKey || presigner.lastTTL != 10*time.Minute {
		t.Fatalf("presigner called with key=%s ttl=%s", presigner.lastKey, presigner.lastTTL)
	}
	if !strings.HasPrefix(got.UploadURL, "https://uploads.example.test/") {
		t.Fatalf("unexpected upload url: %s", got.UploadURL)
	}
	if presigner.lastContentType != "image/png" || got.UploadFields["Content-Type"] != "image/png" {
		t.Fatalf("upload form not bound to the normalized content type: %v", got.UploadFields)
	}
	if !got.ExpiresAt.Equal(now.Add(10 * time.Minute)) {
		t.Fatalf("unexpected expiry: %s", got.ExpiresAt)
	}

	items, err := service.List(ctx, memory.TournamentIDMonsoonHat)
	if err != nil {
		t.Fatalf("list media: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("unexpected media count: got=%d want=1", len(items))
	}
}

func TestMediaService_CreateUploadRejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournaments := memory.NewTournamentRepository(memory.SeedTournaments())

	disabled := NewMediaService(tournaments, memory.NewMediaRepository(), nil, &sequenceIDGenerator{}, 0)
	if _, err := disabled.CreateUpload(ctx, CreateUploadInput{TournamentID: memory.TournamentIDMonsoonHat, ContentType: "image/png"}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	service := NewMediaService(tournaments, memory.NewMediaRepository(), &fakePresigner{}, &sequenceIDGenerator{}, 0)
	if _, err := service.CreateUpload(ctx, CreateUploadInput{TournamentID: memory.TournamentIDMonsoonHat, ContentType: "application/x-msdownload"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.CreateUpload(ctx, CreateUploadInput{TournamentID: "ghost", ContentType: "image/png"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

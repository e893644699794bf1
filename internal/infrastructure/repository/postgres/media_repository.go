package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/media"
	qb "github.com/ShubhamShuklaX/Tournify/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type mediaAssetTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	TournamentID string     `db:"tournament_public_id"`
	ObjectKey    string     `db:"object_key"`
	ContentType  string     `db:"content_type"`
	UploadedBy   string     `db:"uploaded_by"`
	CreatedAt    time.Time  `db:"created_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type mediaAssetInsertModel struct {
	PublicID     string    `db:"public_id"`
	TournamentID string    `db:"tournament_public_id"`
	ObjectKey    string    `db:"object_key"`
	ContentType  string    `db:"content_type"`
	UploadedBy   string    `db:"uploaded_by"`
	CreatedAt    time.Time `db:"created_at"`
}

type MediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) ListByTournament(ctx context.Context, tournamentID string) ([]media.Asset, error) {
	query, args, err := qb.Select("*").From("media_assets").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list media assets query: %w", err)
	}

	var rows []mediaAssetTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list media assets: %w", err)
	}

	out := make([]media.Asset, 0, len(rows))
	for _, row := range rows {
		out = append(out, media.Asset{
			ID:           row.PublicID,
			TournamentID: row.TournamentID,
			ObjectKey:    row.ObjectKey,
			ContentType:  row.ContentType,
			UploadedBy:   row.UploadedBy,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *MediaRepository) Create(ctx context.Context, item media.Asset) error {
	query, args, err := qb.InsertModel("media_assets", mediaAssetInsertModel{
		PublicID:     item.ID,
		TournamentID: item.TournamentID,
		ObjectKey:    item.ObjectKey,
		ContentType:  item.ContentType,
		UploadedBy:   item.UploadedBy,
		CreatedAt:    item.CreatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert media asset query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert media asset id=%s: %w", item.ID, err)
	}
	return nil
}

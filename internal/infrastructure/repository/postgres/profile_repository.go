package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
	qb "github.com/ShubhamShuklaX/Tournify/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type profileTableModel struct {
	ID              int64      `db:"id"`
	PublicID        string     `db:"public_id"`
	Email           string     `db:"email"`
	FullName        string     `db:"full_name"`
	Role            string     `db:"role"`
	IsApproved      bool       `db:"is_approved"`
	ApprovalStatus  string     `db:"approval_status"`
	RejectionReason string     `db:"rejection_reason"`
	ReviewedBy      string     `db:"reviewed_by"`
	ReviewedAt      *time.Time `db:"reviewed_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

type profileInsertModel struct {
	PublicID        string     `db:"public_id"`
	Email           string     `db:"email"`
	FullName        string     `db:"full_name"`
	Role            string     `db:"role"`
	IsApproved      bool       `db:"is_approved"`
	ApprovalStatus  string     `db:"approval_status"`
	RejectionReason string     `db:"rejection_reason"`
	ReviewedBy      string     `db:"reviewed_by"`
	ReviewedAt      *time.Time `db:"reviewed_at,omitnil"`
}

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (user.Profile, bool, error) {
	query, args, err := qb.Select("*").From("profiles").
		Where(qb.Eq("public_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}

	return profileFromRow(row), true, nil
}

func (r *ProfileRepository) ListPending(ctx context.Context) ([]user.Profile, error) {
	query, args, err := qb.Select("*").From("profiles").
		Where(
			qb.Eq("approval_status", user.ApprovalPending),
			qb.Eq("is_approved", false),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending profiles query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pending profiles: %w", err)
	}

	out := make([]user.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, item user.Profile) error {
	query, args, err := qb.InsertModel("profiles", profileInsertModel{
		PublicID:        item.ID,
		Email:           item.Email,
		FullName:        item.FullName,
		Role:            item.Role,
		IsApproved:      item.IsApproved,
		ApprovalStatus:  item.Status(),
		RejectionReason: item.RejectionReason,
		ReviewedBy:      item.ReviewedBy,
		ReviewedAt:      nullableTime(item.ReviewedAt),
	}, `ON CONFLICT (public_id)
DO UPDATE SET
    email = EXCLUDED.email,
    full_name = EXCLUDED.full_name,
    role = EXCLUDED.role,
    is_approved = EXCLUDED.is_approved,
    approval_status = EXCLUDED.approval_status,
    rejection_reason = EXCLUDED.rejection_reason,
    reviewed_by = EXCLUDED.reviewed_by,
    reviewed_at = EXCLUDED.reviewed_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert profile query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile id=%s: %w", item.ID, err)
	}
	return nil
}

func profileFromRow(row profileTableModel) user.Profile {
	return user.Profile{
		ID:              row.PublicID,
		Email:           row.Email,
		FullName:        row.FullName,
		Role:            row.Role,
		IsApproved:      row.IsApproved,
		ApprovalStatus:  row.ApprovalStatus,
		RejectionReason: row.RejectionReason,
		ReviewedBy:      row.ReviewedBy,
		ReviewedAt:      nullableTime(row.ReviewedAt),
		CreatedAt:       row.CreatedAt.UTC(),
	}
}

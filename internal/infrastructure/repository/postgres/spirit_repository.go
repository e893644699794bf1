package postgres

import (
	"context"
	"fmt"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/spirit"
	qb "github.com/ShubhamShuklaX/Tournify/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type SpiritRepository struct {
	db *sqlx.DB
}

func NewSpiritRepository(db *sqlx.DB) *SpiritRepository {
	return &SpiritRepository{db: db}
}

func (r *SpiritRepository) ListByTournament(ctx context.Context, tournamentID string) ([]spirit.Score, error) {
	return r.list(ctx, "list spirit scores by tournament", qb.Eq("tournament_public_id", tournamentID))
}

func (r *SpiritRepository) ListByMatch(ctx context.Context, matchID string) ([]spirit.Score, error) {
	return r.list(ctx, "list spirit scores by match", qb.Eq("match_public_id", matchID))
}

// Create relies on the unique (match, scoring team) index to reject a second submission.
func (r *SpiritRepository) Create(ctx context.Context, item spirit.Score) error {
	query, args, err := qb.InsertModel("spirit_scores", spiritScoreInsertModel{
		PublicID:         item.ID,
		MatchID:          item.MatchID,
		TournamentID:     item.TournamentID,
		ScoringTeamID:    item.ScoringTeamID,
		OpponentTeamID:   item.OpponentTeamID,
		RulesKnowledge:   item.Scores.RulesKnowledge,
		FoulsBodyContact: item.Scores.FoulsBodyContact,
		FairMindedness:   item.Scores.FairMindedness,
		PositiveAttitude: item.Scores.PositiveAttitude,
		Communication:    item.Scores.Communication,
		TotalScore:       item.TotalScore,
		Comments:         item.Comments,
		SubmittedBy:      item.SubmittedBy,
		SubmittedAt:      item.SubmittedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert spirit score query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return spirit.ErrDuplicateSubmission
		}
		return fmt.Errorf("insert spirit score match=%s team=%s: %w", item.MatchID, item.ScoringTeamID, err)
	}
	return nil
}

func (r *SpiritRepository) list(ctx context.Context, op string, condition qb.Condition) ([]spirit.Score, error) {
	query, args, err := qb.Select("*").From("spirit_scores").
		Where(condition).
		OrderBy("submitted_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []spiritScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]spirit.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, spirit.Score{
			ID:             row.PublicID,
			MatchID:        row.MatchID,
			TournamentID:   row.TournamentID,
			ScoringTeamID:  row.ScoringTeamID,
			OpponentTeamID: row.OpponentTeamID,
			Scores: spirit.Scores{
				RulesKnowledge:   row.RulesKnowledge,
				FoulsBodyContact: row.FoulsBodyContact,
				FairMindedness:   row.FairMindedness,
				PositiveAttitude: row.PositiveAttitude,
				Communication:    row.Communication,
			},
			TotalScore:  row.TotalScore,
			Comments:    row.Comments,
			SubmittedBy: row.SubmittedBy,
			SubmittedAt: row.SubmittedAt.UTC(),
		})
	}
	return out, nil
}

package postgres

import "time"

type spiritScoreTableModel struct {
	ID               int64     `db:"id"`
	PublicID         string    `db:"public_id"`
	MatchID          string    `db:"match_public_id"`
	TournamentID     string    `db:"tournament_public_id"`
	ScoringTeamID    string    `db:"scoring_team_public_id"`
	OpponentTeamID   string    `db:"opponent_team_public_id"`
	RulesKnowledge   int       `db:"rules_knowledge"`
	FoulsBodyContact int       `db:"fouls_body_contact"`
	FairMindedness   int       `db:"fair_mindedness"`
	PositiveAttitude int       `db:"positive_attitude"`
	Communication    int       `db:"communication"`
	TotalScore       int       `db:"total_score"`
	Comments         string    `db:"comments"`
	SubmittedBy      string    `db:"submitted_by"`
	SubmittedAt      time.Time `db:"submitted_at"`
}

type spiritScoreInsertModel struct {
	PublicID         string    `db:"public_id"`
	MatchID          string    `db:"match_public_id"`
	TournamentID     string    `db:"tournament_public_id"`
	ScoringTeamID    string    `db:"scoring_team_public_id"`
	OpponentTeamID   string    `db:"opponent_team_public_id"`
	RulesKnowledge   int       `db:"rules_knowledge"`
	FoulsBodyContact int       `db:"fouls_body_contact"`
	FairMindedness   int       `db:"fair_mindedness"`
	PositiveAttitude int       `db:"positive_attitude"`
	Communication    int       `db:"communication"`
	TotalScore       int       `db:"total_score"`
	Comments         string    `db:"comments"`
	SubmittedBy      string    `db:"submitted_by"`
	SubmittedAt      time.Time `db:"submitted_at"`
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/field"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/media"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/spirit"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/standing"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/team"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
)

type createTournamentRequest struct {
	Name                 string     `json:"name" validate:"required,max=120"`
	Description          string     `json:"description" validate:"omitempty,max=2000"`
	Location             string     `json:"location" validate:"required,max=200"`
	StartDate            time.Time  `json:"start_date" validate:"required"`
	EndDate              time.Time  `json:"end_date" validate:"required"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	MaxTeams             int        `json:"max_teams" validate:"gte=0"`
	AgeDivisions         []string   `json:"age_divisions" validate:"omitempty,dive,required"`
	Format               string     `json:"format" validate:"omitempty,oneof=round_robin elimination pool_play swiss"`
}

type updateTournamentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type registerTeamRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type reviewRegistrationRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected withdrawn"`
}

type createTeamRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	AgeDivision string `json:"age_division" validate:"required"`
	City        string `json:"city" validate:"omitempty,max=100"`
}

type createFieldRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Location string `json:"location" validate:"omitempty,max=200"`
}

type generateScheduleRequest struct {
	BracketType    string    `json:"bracket_type" validate:"omitempty,oneof=round_robin elimination"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	MatchDuration  *int      `json:"match_duration" validate:"omitnil,gte=1,lte=600"`
	BreakDuration  *int      `json:"break_duration" validate:"omitnil,gte=0,lte=240"`
	ParallelFields bool      `json:"parallel_fields"`
}

type updateScoreRequest struct {
	Team1Score *int `json:"team1_score" validate:"required"`
	Team2Score *int `json:"team2_score" validate:"required"`
}

// submitSpiritRequest requires every category; ranges are checked by the spirit domain.
type submitSpiritRequest struct {
	ScoringTeamID    string `json:"scoring_team_id" validate:"required"`
	RulesKnowledge   *int   `json:"rules_knowledge" validate:"required"`
	FoulsBodyContact *int   `json:"fouls_body_contact" validate:"required"`
	FairMindedness   *int   `json:"fair_mindedness" validate:"required"`
	PositiveAttitude *int   `json:"positive_attitude" validate:"required"`
	Communication    *int   `json:"communication" validate:"required"`
	Comments         string `json:"comments" validate:"omitempty,max=1000"`
}

// scores must only be called after validation.
func (r submitSpiritRequest) scores() spirit.Scores {
	return spirit.Scores{
		RulesKnowledge:   *r.RulesKnowledge,
		FoulsBodyContact: *r.FoulsBodyContact,
		FairMindedness:   *r.FairMindedness,
		PositiveAttitude: *r.PositiveAttitude,
		Communication:    *r.Communication,
	}
}

type addPlayerRequest struct {
	UserID       string `json:"user_id" validate:"omitempty,max=64"`
	Name         string `json:"name" validate:"required,max=100"`
	JerseyNumber *int   `json:"jersey_number" validate:"omitnil,gte=0,lte=99"`
	Position     string `json:"position" validate:"omitempty,max=40"`
}

type reviewProfileRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Reason   string `json:"reason" validate:"omitempty,max=500"`
}

type createMediaUploadRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}

type spiritRemindersJobRequest struct {
	TournamentID string `json:"tournament_id"`
}

type spiritReminderJobRequest struct {
	TournamentID string `json:"tournament_id" validate:"required"`
	MatchID      string `json:"match_id" validate:"required"`
	TeamID       string `json:"team_id" validate:"required"`
}

type tournamentDTO struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description,omitempty"`
	Location             string     `json:"location"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	MaxTeams             int        `json:"max_teams"`
	AgeDivisions         []string   `json:"age_divisions"`
	Format               string     `json:"format"`
	Status               string     `json:"status"`
	CreatedBy            string     `json:"created_by,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type registrationDTO struct {
	ID           string    `json:"id"`
	TournamentID string    `json:"tournament_id"`
	TeamID       string    `json:"team_id"`
	Status       string    `json:"status"`
	RegisteredBy string    `json:"registered_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type teamDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AgeDivision string    `json:"age_division"`
	City        string    `json:"city,omitempty"`
	ManagerID   string    `json:"manager_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type playerDTO struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"team_id"`
	UserID       string    `json:"user_id,omitempty"`
	Name         string    `json:"name"`
	JerseyNumber *int      `json:"jersey_number,omitempty"`
	Position     string    `json:"position,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type fieldDTO struct {
	ID           string `json:"id"`
	TournamentID string `json:"tournament_id"`
	Name         string `json:"name"`
	Location     string `json:"location,omitempty"`
}

type matchDTO struct {
	ID            string     `json:"id"`
	TournamentID  string     `json:"tournament_id"`
	RoundNumber   int        `json:"round_number"`
	RoundName     string     `json:"round_name"`
	MatchNumber   int        `json:"match_number"`
	Team1ID       string     `json:"team1_id,omitempty"`
	Team2ID       string     `json:"team2_id,omitempty"`
	BracketType   string     `json:"bracket_type"`
	FieldNumber   int        `json:"field_number"`
	FieldID       string     `json:"field_id,omitempty"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	Status        string     `json:"status"`
	Team1Score    int        `json:"team1_score"`
	Team2Score    int        `json:"team2_score"`
	WinnerID      string     `json:"winner_id,omitempty"`
	IsFinal       bool       `json:"is_final"`
}

type teamStatsDTO struct {
	TeamID        string `json:"team_id"`
	Played        int    `json:"played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Ties          int    `json:"ties"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
	PointDiff     int    `json:"point_diff"`
	Points        int    `json:"points"`
	WinRate       int    `json:"win_rate"`
}

type standingEntryDTO struct {
	Position int `json:"position"`
	teamStatsDTO
}

type spiritScoresDTO struct {
	RulesKnowledge   int `json:"rules_knowledge"`
	FoulsBodyContact int `json:"fouls_body_contact"`
	FairMindedness   int `json:"fair_mindedness"`
	PositiveAttitude int `json:"positive_attitude"`
	Communication    int `json:"communication"`
}

type spiritScoreDTO struct {
	ID             string          `json:"id"`
	MatchID        string          `json:"match_id"`
	TournamentID   string          `json:"tournament_id"`
	ScoringTeamID  string          `json:"scoring_team_id"`
	OpponentTeamID string          `json:"opponent_team_id"`
	Scores         spiritScoresDTO `json:"scores"`
	TotalScore     int             `json:"total_score"`
	Rating         spiritRatingDTO `json:"rating"`
	Comments       string          `json:"comments,omitempty"`
	SubmittedAt    time.Time       `json:"submitted_at"`
}

type spiritRatingDTO struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

type spiritCategoryMeansDTO struct {
	RulesKnowledge   float64 `json:"rules_knowledge"`
	FoulsBodyContact float64 `json:"fouls_body_contact"`
	FairMindedness   float64 `json:"fair_mindedness"`
	PositiveAttitude float64 `json:"positive_attitude"`
	Communication    float64 `json:"communication"`
}

type spiritEntryDTO struct {
	Position      int                    `json:"position"`
	TeamID        string                 `json:"team_id"`
	Count         int                    `json:"count"`
	AverageTotal  float64                `json:"average_total"`
	CategoryMeans spiritCategoryMeansDTO `json:"category_means"`
	Rating        spiritRatingDTO        `json:"rating"`
}

type spiritDistributionDTO struct {
	Exceptional  int `json:"exceptional"`
	VeryGood     int `json:"very_good"`
	Good         int `json:"good"`
	BelowAverage int `json:"below_average"`
	Poor         int `json:"poor"`
}

type spiritSummaryDTO struct {
	Average      float64               `json:"average"`
	Count        int                   `json:"count"`
	Distribution spiritDistributionDTO `json:"distribution"`
}

type mediaAssetDTO struct {
	ID           string    `json:"id"`
	TournamentID string    `json:"tournament_id"`
	ObjectKey    string    `json:"object_key"`
	ContentType  string    `json:"content_type"`
	UploadedBy   string    `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type mediaUploadDTO struct {
	Asset        mediaAssetDTO     `json:"asset"`
	UploadURL    string            `json:"upload_url"`
	UploadMethod string            `json:"upload_method"`
	UploadFields map[string]string `json:"upload_fields"`
	ExpiresAt    time.Time         `json:"expires_at"`
}

type meDTO struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	RoleLabel   string `json:"role_label"`
	Module      string `json:"module"`
	IsApproved  bool   `json:"is_approved"`
}

type profileApprovalDTO struct {
	UserID          string     `json:"user_id"`
	Email           string     `json:"email"`
	DisplayName     string     `json:"display_name"`
	Role            string     `json:"role"`
	RoleLabel       string     `json:"role_label"`
	ApprovalStatus  string     `json:"approval_status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedBy      string     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type dashboardDTO struct {
	Role                 string             `json:"role"`
	RoleLabel            string             `json:"role_label"`
	Module               string             `json:"module"`
	TournamentCount      int                `json:"tournament_count"`
	ActiveTournaments    int                `json:"active_tournaments"`
	LiveMatches          int                `json:"live_matches"`
	UpcomingMatches      int                `json:"upcoming_matches"`
	SelectedTournamentID string             `json:"selected_tournament_id,omitempty"`
	TopStandings         []standingEntryDTO `json:"top_standings"`
	PendingSpirit        int                `json:"pending_spirit,omitempty"`
}

type spiritReminderResultDTO struct {
	Sent bool `json:"sent"`
}

func tournamentToDTO(v tournament.Tournament) tournamentDTO {
	divisions := v.AgeDivisions
	if divisions == nil {
		divisions = []string{}
	}
	return tournamentDTO{
		ID:                   v.ID,
		Name:                 v.Name,
		Description:          v.Description,
		Location:             v.Location,
		StartDate:            v.StartDate,
		EndDate:              v.EndDate,
		RegistrationDeadline: v.RegistrationDeadline,
		MaxTeams:             v.MaxTeams,
		AgeDivisions:         divisions,
		Format:               v.Format,
		Status:               v.Status,
		CreatedBy:            v.CreatedBy,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
}

func registrationToDTO(v tournament.Registration) registrationDTO {
	return registrationDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		TeamID:       v.TeamID,
		Status:       v.Status,
		RegisteredBy: v.RegisteredBy,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:          v.ID,
		Name:        v.Name,
		AgeDivision: v.AgeDivision,
		City:        v.City,
		ManagerID:   v.ManagerID,
		CreatedAt:   v.CreatedAt,
	}
}

func playerToDTO(v team.Player) playerDTO {
	return playerDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		UserID:       v.UserID,
		Name:         v.Name,
		JerseyNumber: v.JerseyNumber,
		Position:     v.Position,
		CreatedAt:    v.CreatedAt,
	}
}

func fieldToDTO(v field.Field) fieldDTO {
	return fieldDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		Name:         v.Name,
		Location:     v.Location,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:            v.ID,
		TournamentID:  v.TournamentID,
		RoundNumber:   v.RoundNumber,
		RoundName:     v.RoundName,
		MatchNumber:   v.MatchNumber,
		Team1ID:       v.Team1ID,
		Team2ID:       v.Team2ID,
		BracketType:   v.BracketType,
		FieldNumber:   v.FieldNumber,
		FieldID:       v.FieldID,
		ScheduledTime: v.ScheduledTime,
		Status:        v.Status,
		Team1Score:    v.Team1Score,
		Team2Score:    v.Team2Score,
		WinnerID:      v.WinnerID,
		IsFinal:       v.IsFinal,
	}
}

func teamStatsToDTO(v standing.Stats) teamStatsDTO {
	return teamStatsDTO{
		TeamID:        v.TeamID,
		Played:        v.Played,
		Wins:          v.Wins,
		Losses:        v.Losses,
		Ties:          v.Ties,
		PointsFor:     v.PointsFor,
		PointsAgainst: v.PointsAgainst,
		PointDiff:     v.PointDiff,
		Points:        v.Points,
		WinRate:       v.WinRate,
	}
}

func standingEntryToDTO(v standing.Entry) standingEntryDTO {
	return standingEntryDTO{
		Position:     v.Position,
		teamStatsDTO: teamStatsToDTO(v.Stats),
	}
}

func spiritRatingToDTO(v spirit.Rating) spiritRatingDTO {
	return spiritRatingDTO{Label: v.Label, Description: v.Description}
}

func spiritScoreToDTO(v spirit.Score) spiritScoreDTO {
	return spiritScoreDTO{
		ID:             v.ID,
		MatchID:        v.MatchID,
		TournamentID:   v.TournamentID,
		ScoringTeamID:  v.ScoringTeamID,
		OpponentTeamID: v.OpponentTeamID,
		Scores: spiritScoresDTO{
			RulesKnowledge:   v.Scores.RulesKnowledge,
			FoulsBodyContact: v.Scores.FoulsBodyContact,
			FairMindedness:   v.Scores.FairMindedness,
			PositiveAttitude: v.Scores.PositiveAttitude,
			Communication:    v.Scores.Communication,
		},
		TotalScore:  v.TotalScore,
		Rating:      spiritRatingToDTO(spirit.RatingFor(v.TotalScore)),
		Comments:    v.Comments,
		SubmittedAt: v.SubmittedAt,
	}
}

func spiritEntryToDTO(v spirit.Entry) spiritEntryDTO {
	return spiritEntryDTO{
		Position:     v.Position,
		TeamID:       v.TeamID,
		Count:        v.Count,
		AverageTotal: v.AverageTotal,
		CategoryMeans: spiritCategoryMeansDTO{
			RulesKnowledge:   v.CategoryMeans.RulesKnowledge,
			FoulsBodyContact: v.CategoryMeans.FoulsBodyContact,
			FairMindedness:   v.CategoryMeans.FairMindedness,
			PositiveAttitude: v.CategoryMeans.PositiveAttitude,
			Communication:    v.CategoryMeans.Communication,
		},
		Rating: spiritRatingToDTO(v.Rating),
	}
}

func spiritSummaryToDTO(v spirit.Summary) spiritSummaryDTO {
	return spiritSummaryDTO{
		Average: v.Average,
		Count:   v.Count,
		Distribution: spiritDistributionDTO{
			Exceptional:  v.Distribution.Exceptional,
			VeryGood:     v.Distribution.VeryGood,
			Good:         v.Distribution.Good,
			BelowAverage: v.Distribution.BelowAverage,
			Poor:         v.Distribution.Poor,
		},
	}
}

func mediaAssetToDTO(v media.Asset) mediaAssetDTO {
	return mediaAssetDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		ObjectKey:    v.ObjectKey,
		ContentType:  v.ContentType,
		UploadedBy:   v.UploadedBy,
		CreatedAt:    v.CreatedAt,
	}
}

func mediaUploadToDTO(v usecase.MediaUpload) mediaUploadDTO {
	return mediaUploadDTO{
		Asset:        mediaAssetToDTO(v.Asset),
		UploadURL:    v.UploadURL,
		UploadMethod: http.MethodPost,
		UploadFields: v.UploadFields,
		ExpiresAt:    v.ExpiresAt,
	}
}

func meToDTO(principal user.Principal, profile user.Profile) meDTO {
	roleKey := profile.Role
	if roleKey == "" {
		roleKey = principal.Role
	}
	email := profile.Email
	if email == "" {
		email = principal.Email
	}
	profile.Email = email

	return meDTO{
		UserID:      principal.UserID,
		Email:       email,
		FullName:    profile.FullName,
		DisplayName: profile.DisplayName(),
		Role:        roleKey,
		RoleLabel:   role.Label(roleKey),
		Module:      role.ModuleFor(roleKey),
		IsApproved:  profile.IsApproved,
	}
}

func profileApprovalToDTO(v user.Profile) profileApprovalDTO {
	return profileApprovalDTO{
		UserID:          v.ID,
		Email:           v.Email,
		DisplayName:     v.DisplayName(),
		Role:            v.Role,
		RoleLabel:       role.Label(v.Role),
		ApprovalStatus:  v.Status(),
		RejectionReason: v.RejectionReason,
		ReviewedBy:      v.ReviewedBy,
		ReviewedAt:      v.ReviewedAt,
		CreatedAt:       v.CreatedAt,
	}
}

func dashboardToDTO(v usecase.Dashboard) dashboardDTO {
	return dashboardDTO{
		Role:                 v.Role,
		RoleLabel:            v.RoleLabel,
		Module:               v.Module,
		TournamentCount:      v.TournamentCount,
		ActiveTournaments:    v.ActiveTournaments,
		LiveMatches:          v.LiveMatches,
		UpcomingMatches:      v.UpcomingMatches,
		SelectedTournamentID: v.SelectedTournamentID,
		TopStandings:         mapSlice(v.TopStandings, standingEntryToDTO),
		PendingSpirit:        v.PendingSpirit,
	}
}

func mapSlice[T, D any](items []T, fn func(T) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

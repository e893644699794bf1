package memory

import (
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/field"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/team"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
)

const (
	TournamentIDMonsoonHat = "monsoon-hat-2026"
	TournamentIDCityLeague = "city-league-2026"

	UserIDDirector  = "user-director"
	UserIDManager   = "user-manager"
	UserIDVolunteer = "user-volunteer"
	UserIDPlayer    = "user-player"
)

func SeedTournaments() []tournament.Tournament {
	start := time.Date(2026, time.November, 14, 8, 0, 0, 0, time.UTC)
	deadline := start.Add(-7 * 24 * time.Hour)
	created := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	return []tournament.Tournament{
		{
			ID:                   TournamentIDMonsoonHat,
			Name:                 "Monsoon Hat 2026",
			Description:          "Two-day mixed ultimate hat tournament",
			Location:             "Bengaluru",
			StartDate:            start,
			EndDate:              start.Add(34 * time.Hour),
			RegistrationDeadline: &deadline,
			MaxTeams:             8,
			AgeDivisions:         []string{"Open", "Mixed"},
			Format:               tournament.FormatRoundRobin,
			Status:               tournament.StatusRegistrationOpen,
			CreatedBy:            UserIDDirector,
			CreatedAt:            created,
			UpdatedAt:            created,
		},
		{
			ID:           TournamentIDCityLeague,
			Name:         "City Youth League",
			Location:     "Pune",
			StartDate:    start.Add(30 * 24 * time.Hour),
			EndDate:      start.Add(31 * 24 * time.Hour),
			AgeDivisions: []string{"U17"},
			Format:       tournament.FormatElimination,
			Status:       tournament.StatusDraft,
			CreatedBy:    UserIDDirector,
			CreatedAt:    created,
			UpdatedAt:    created,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-disc-jockeys", Name: "Disc Jockeys", AgeDivision: "Open", City: "Bengaluru", ManagerID: UserIDManager},
		{ID: "team-air-bender", Name: "Air Benders", AgeDivision: "Open", City: "Chennai"},
		{ID: "team-storm-chasers", Name: "Storm Chasers", AgeDivision: "Mixed", City: "Mumbai"},
		{ID: "team-flick-masters", Name: "Flick Masters", AgeDivision: "Mixed", City: "Hyderabad"},
		{ID: "team-layout-legends", Name: "Layout Legends", AgeDivision: "Open", City: "Delhi"},
	}
}

func SeedRegistrations() []tournament.Registration {
	approved := []string{"team-disc-jockeys", "team-air-bender", "team-storm-chasers", "team-flick-masters"}
	out := make([]tournament.Registration, 0, len(approved)+1)
	for _, teamID := range approved {
		out = append(out, tournament.Registration{
			ID:           "reg-" + teamID,
			TournamentID: TournamentIDMonsoonHat,
			TeamID:       teamID,
			Status:       tournament.RegistrationApproved,
			RegisteredBy: UserIDManager,
		})
	}
	out = append(out, tournament.Registration{
		ID:           "reg-team-layout-legends",
		TournamentID: TournamentIDMonsoonHat,
		TeamID:       "team-layout-legends",
		Status:       tournament.RegistrationPending,
		RegisteredBy: UserIDManager,
	})

	return out
}

func SeedPlayers() []team.Player {
	joined := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	seven, eleven := 7, 11
	return []team.Player{
		{ID: "player-kiran", TeamID: "team-disc-jockeys", UserID: UserIDPlayer, Name: "Kiran Player", JerseyNumber: &seven, Position: "handler", CreatedAt: joined},
		{ID: "player-nisha", TeamID: "team-disc-jockeys", Name: "Nisha Rao", JerseyNumber: &eleven, Position: "cutter", CreatedAt: joined},
	}
}

func SeedFields() []field.Field {
	return []field.Field{
		{ID: "field-monsoon-1", TournamentID: TournamentIDMonsoonHat, Name: "Field 1", Location: "North ground"},
		{ID: "field-monsoon-2", TournamentID: TournamentIDMonsoonHat, Name: "Field 2", Location: "South ground"},
	}
}

func SeedProfiles() []user.Profile {
	joined := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	return []user.Profile{
		{ID: UserIDDirector, Email: "director@tournify.local", FullName: "Asha Director", Role: role.TournamentDirector, IsApproved: true, ApprovalStatus: user.ApprovalApproved, CreatedAt: joined},
		{ID: UserIDManager, Email: "manager@tournify.local", FullName: "Ravi Captain", Role: role.TeamManager, IsApproved: true, ApprovalStatus: user.ApprovalApproved, CreatedAt: joined},
		{ID: UserIDVolunteer, Email: "volunteer@tournify.local", FullName: "Meera Volunteer", Role: role.Volunteer, ApprovalStatus: user.ApprovalPending, CreatedAt: joined.Add(24 * time.Hour)},
		{ID: UserIDPlayer, Email: "player@tournify.local", FullName: "Kiran Player", Role: role.Player, IsApproved: true, ApprovalStatus: user.ApprovalApproved, CreatedAt: joined.Add(48 * time.Hour)},
	}
}

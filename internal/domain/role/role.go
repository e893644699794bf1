package role

import "slices"

const (
	ProgrammeDirector = "programme_director"
	ProgrammeManager  = "programme_manager"
	Coach             = "coach"
	DataTeam          = "data_team"
	SiteCoordinator   = "site_coordinator"

	TournamentDirector = "tournament_director"
	TeamManager        = "team_manager"
	Player             = "player"
	Volunteer          = "volunteer"
	ScoringTeam        = "scoring_team"
	Sponsor            = "sponsor"
	Spectator          = "spectator"
)

const (
	ModuleCoaching   = "coaching"
	ModuleTournament = "tournament"
)

// Definition describes what a role is for.
type Definition struct {
	Key         string
	Label       string
	Description string
	Module      string
	Level       string
}

var definitions = []Definition{
	{Key: ProgrammeDirector, Label: "Programme Director", Description: "Assigns schools and batches to programme managers", Module: ModuleCoaching, Level: "admin"},
	{Key: ProgrammeManager, Label: "Programme Manager", Description: "Manages child profiles, sessions, and generates reports", Module: ModuleCoaching, Level: "manager"},
	{Key: Coach, Label: "Coach / Session Facilitator", Description: "Records attendance, home visits, and assessments", Module: ModuleCoaching, Level: "coach"},
	{Key: DataTeam, Label: "Reporting / Data Team", Description: "Validates data and generates reports", Module: ModuleCoaching, Level: "sub_admin"},
	{Key: SiteCoordinator, Label: "Site Coordinator", Description: "Monitors site attendance and supports coaches", Module: ModuleCoaching, Level: "site"},
	{Key: TournamentDirector, Label: "Tournament Director", Description: "Full control over tournaments and operations", Module: ModuleTournament, Level: "admin"},
	{Key: TeamManager, Label: "Team Manager / Captain", Description: "Manages team registration and roster", Module: ModuleTournament, Level: "team"},
	{Key: Player, Label: "Player", Description: "Views schedules and results", Module: ModuleTournament, Level: "read"},
	{Key: Volunteer, Label: "Volunteer / Field Official", Description: "Inputs live scores and marks attendance", Module: ModuleTournament, Level: "field"},
	{Key: ScoringTeam, Label: "Scoring / Tech Team", Description: "Validates data and ensures accuracy", Module: ModuleTournament, Level: "sub_admin"},
	{Key: Sponsor, Label: "Sponsor / Partner", Description: "Accesses branded dashboards", Module: ModuleTournament, Level: "read"},
	{Key: Spectator, Label: "Spectator / Fan", Description: "Follows teams and checks live scores", Module: ModuleTournament, Level: "public"},
}

// All returns every known role definition.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

func Lookup(key string) (Definition, bool) {
	for _, def := range definitions {
		if def.Key == key {
			return def, true
		}
	}
	return Definition{}, false
}

func IsKnown(key string) bool {
	_, ok := Lookup(key)
	return ok
}

func Label(key string) string {
	if def, ok := Lookup(key); ok {
		return def.Label
	}
	return key
}

func ModuleFor(key string) string {
	def, _ := Lookup(key)
	return def.Module
}

func HasCoachingAccess(key string) bool {
	return ModuleFor(key) == ModuleCoaching
}

func HasTournamentAccess(key string) bool {
	return ModuleFor(key) == ModuleTournament
}

// RequiresApproval is true for every role except player.
func RequiresApproval(key string) bool {
	return key != Player
}

// Any reports whether key is one of allowed.
func Any(key string, allowed ...string) bool {
	return slices.Contains(allowed, key)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/team"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	idgen "github.com/ShubhamShuklaX/Tournify/internal/platform/id"
)

type CreateTeamInput struct {
	Name        string
	AgeDivision string
	City        string
	ManagerID   string
}

// RosterActor is the caller of a roster change.
type RosterActor struct {
	UserID string
	Role   string
}

type AddPlayerInput struct {
	TeamID       string
	UserID       string
	Name         string
	JerseyNumber *int
	Position     string
	Actor        RosterActor
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo team.PlayerRepository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewTeamService(teamRepo team.Repository, playerRepo team.PlayerRepository, idGen idgen.Generator) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	division := strings.TrimSpace(input.AgeDivision)
	if len(name) < 2 {
		return team.Team{}, fmt.Errorf("%w: team name must be at least 2 characters", ErrInvalidInput)
	}
	if !tournament.IsKnownAgeDivision(division) {
		return team.Team{}, fmt.Errorf("%w: unknown age division %q", ErrInvalidInput, division)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:          teamID,
		Name:        name,
		AgeDivision: division,
		City:        strings.TrimSpace(input.City),
		ManagerID:   strings.TrimSpace(input.ManagerID),
		CreatedAt:   s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return item, nil
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}

// AddPlayer puts a player on the roster. A registered user may be on one
// team only and a jersey number is unique within a team.
func (s *TeamService) AddPlayer(ctx context.Context, input AddPlayerInput) (team.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AddPlayer", teamAttr(input.TeamID))
	defer span.End()

	item, err := s.managedTeam(ctx, input.TeamID, input.Actor)
	if err != nil {
		return team.Player{}, err
	}

	userID := strings.TrimSpace(input.UserID)
	if userID != "" {
		current, rostered, err := s.playerRepo.TeamOfUser(ctx, userID)
		if err != nil {
			return team.Player{}, fmt.Errorf("find team of user: %w", err)
		}
		if rostered {
			return team.Player{}, fmt.Errorf("%w: user=%s is already on team=%s", ErrConflict, userID, current)
		}
	}

	roster, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return team.Player{}, fmt.Errorf("list team players: %w", err)
	}
	if team.JerseyTaken(roster, input.JerseyNumber) {
		return team.Player{}, fmt.Errorf("%w: jersey %d is taken on team=%s", ErrConflict, *input.JerseyNumber, item.ID)
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return team.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	player := team.Player{
		ID:           playerID,
		TeamID:       item.ID,
		UserID:       userID,
		Name:         strings.TrimSpace(input.Name),
		JerseyNumber: input.JerseyNumber,
		Position:     strings.TrimSpace(input.Position),
		CreatedAt:    s.now().UTC(),
	}
	if err := player.Validate(); err != nil {
		return team.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, team.ErrPlayerAlreadyRostered) {
			return team.Player{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return team.Player{}, fmt.Errorf("create team player: %w", err)
	}

	return player, nil
}

func (s *TeamService) ListPlayers(ctx context.Context, teamID string) ([]team.Player, error) {
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list team players: %w", err)
	}
	return items, nil
}

func (s *TeamService) RemovePlayer(ctx context.Context, teamID, playerID string, actor RosterActor) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RemovePlayer", teamAttr(teamID))
	defer span.End()

	item, err := s.managedTeam(ctx, teamID, actor)
	if err != nil {
		return err
	}

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	removed, err := s.playerRepo.Delete(ctx, item.ID, playerID)
	if err != nil {
		return fmt.Errorf("delete team player: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: player=%s on team=%s", ErrNotFound, playerID, item.ID)
	}
	return nil
}

// managedTeam loads the team and checks that actor may change its roster:
// its own manager or a tournament director.
func (s *TeamService) managedTeam(ctx context.Context, teamID string, actor RosterActor) (team.Team, error) {
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if actor.Role != role.TournamentDirector && !item.ManagedBy(actor.UserID) {
		return team.Team{}, fmt.Errorf("%w: user=%s does not manage team=%s", ErrForbidden, actor.UserID, item.ID)
	}
	return item, nil
}

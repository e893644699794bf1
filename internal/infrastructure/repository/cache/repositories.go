package cache

import (
	"context"
	"slices"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/field"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/team"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	basecache "github.com/ShubhamShuklaX/Tournify/internal/platform/cache"
)

const (
	tournamentListKey     = "tournament:list"
	tournamentIDKeyPrefix = "tournament:id:"
	teamListKey           = "team:list"
	teamIDKeyPrefix       = "team:id:"
	fieldListKeyPrefix    = "field:list:"
)

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	v, err := r.cache.GetOrLoad(ctx, tournamentListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneTournaments(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]tournament.Tournament)
	return cloneTournaments(items), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, tournamentIDKeyPrefix+tournamentID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return cachedTournamentByID{value: cloneTournament(item), exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	cached, _ := v.(cachedTournamentByID)
	return cloneTournament(cached.value), cached.exists, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, tournamentListKey, tournamentIDKeyPrefix+item.ID)
	return nil
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) error {
	err := r.next.Update(ctx, item)
	// Keys are dropped even when the write fails.
	r.cache.Delete(ctx, tournamentListKey, tournamentIDKeyPrefix+item.ID)
	return err
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}

func cloneTournaments(items []tournament.Tournament) []tournament.Tournament {
	out := make([]tournament.Tournament, 0, len(items))
	for _, item := range items {
		out = append(out, cloneTournament(item))
	}
	return out
}

func cloneTournament(item tournament.Tournament) tournament.Tournament {
	item.AgeDivisions = slices.Clone(item.AgeDivisions)
	if item.RegistrationDeadline != nil {
		deadline := *item.RegistrationDeadline
		item.RegistrationDeadline = &deadline
	}
	return item
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return slices.Clone(items), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, teamIDKeyPrefix+teamID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, teamListKey, teamIDKeyPrefix+item.ID)
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type FieldRepository struct {
	next  field.Repository
	cache *basecache.Store
}

func NewFieldRepository(next field.Repository, cache *basecache.Store) *FieldRepository {
	return &FieldRepository{next: next, cache: cache}
}

func (r *FieldRepository) ListByTournament(ctx context.Context, tournamentID string) ([]field.Field, error) {
	v, err := r.cache.GetOrLoad(ctx, fieldListKeyPrefix+tournamentID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]field.Field)
	return slices.Clone(items), nil
}

func (r *FieldRepository) Create(ctx context.Context, item field.Field) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, fieldListKeyPrefix+item.TournamentID)
	return nil
}

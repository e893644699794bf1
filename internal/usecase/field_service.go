package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/field"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	idgen "github.com/ShubhamShuklaX/Tournify/internal/platform/id"
)

type CreateFieldInput struct {
	TournamentID string
	Name         string
	Location     string
}

type FieldService struct {
	tournamentRepo tournament.Repository
	fieldRepo      field.Repository
	idGen          idgen.Generator
}

func NewFieldService(tournamentRepo tournament.Repository, fieldRepo field.Repository, idGen idgen.Generator) *FieldService {
	return &FieldService{
		tournamentRepo: tournamentRepo,
		fieldRepo:      fieldRepo,
		idGen:          idGen,
	}
}

func (s *FieldService) Create(ctx context.Context, input CreateFieldInput) (field.Field, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FieldService.Create")
	defer span.End()

	item, err := getTournament(ctx, s.tournamentRepo, input.TournamentID)
	if err != nil {
		return field.Field{}, err
	}

	fieldID, err := s.idGen.NewID()
	if err != nil {
		return field.Field{}, fmt.Errorf("generate field id: %w", err)
	}

	created := field.Field{
		ID:           fieldID,
		TournamentID: item.ID,
		Name:         strings.TrimSpace(input.Name),
		Location:     strings.TrimSpace(input.Location),
	}
	if err := created.Validate(); err != nil {
		return field.Field{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.fieldRepo.Create(ctx, created); err != nil {
		return field.Field{}, fmt.Errorf("create field: %w", err)
	}

	return created, nil
}

func (s *FieldService) ListByTournament(ctx context.Context, tournamentID string) ([]field.Field, error) {
	item, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	items, err := s.fieldRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	return items, nil
}

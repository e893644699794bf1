package spirit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	MinCategoryScore     = 0
	MaxCategoryScore     = 4
	DefaultCategoryScore = 2
	MinTotal             = 0
	MaxTotal             = 20
	CategoriesCount      = 5
)

const (
	CategoryRulesKnowledge   = "rules_knowledge"
	CategoryFoulsBodyContact = "fouls_body_contact"
	CategoryFairMindedness   = "fair_mindedness"
	CategoryPositiveAttitude = "positive_attitude"
	CategoryCommunication    = "communication"
)

var ErrDuplicateSubmission = errors.New("spirit score already submitted for this match")

// Category describes one rubric line of the spirit score sheet.
type Category struct {
	Key         string
	Label       string
	Description string
}

// ScaleLevel labels one point on the 0..4 category scale.
type ScaleLevel struct {
	Value       int
	Label       string
	Description string
}

var categories = []Category{
	{Key: CategoryRulesKnowledge, Label: "Rules Knowledge & Use", Description: "Did the opposing team know & apply the rules properly?"},
	{Key: CategoryFoulsBodyContact, Label: "Fouls & Body Contact", Description: "Did the team avoid fouls, play safely, and resolve contact fairly?"},
	{Key: CategoryFairMindedness, Label: "Fair-Mindedness", Description: "Did the team show respect and fair attitude in contentious situations?"},
	{Key: CategoryPositiveAttitude, Label: "Positive Attitude & Self-Control", Description: "Did players stay respectful regardless of scoreline or intensity?"},
	{Key: CategoryCommunication, Label: "Communication", Description: "Did the team communicate clearly and effectively, especially in resolving disputes?"},
}

var scale = []ScaleLevel{
	{Value: 0, Label: "0 - Very Poor", Description: "Serious recurring issues"},
	{Value: 1, Label: "1 - Poor", Description: "Issues in this category"},
	{Value: 2, Label: "2 - Good (Standard)", Description: "Normal expected behavior"},
	{Value: 3, Label: "3 - Very Good", Description: "Exceeded expectations"},
	{Value: 4, Label: "4 - Excellent", Description: "Exceptional spirit beyond normal"},
}

func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func Scale() []ScaleLevel {
	out := make([]ScaleLevel, len(scale))
	copy(out, scale)
	return out
}

// Scores holds the five category values of one submission.
type Scores struct {
	RulesKnowledge   int
	FoulsBodyContact int
	FairMindedness   int
	PositiveAttitude int
	Communication    int
}

func DefaultScores() Scores {
	return Scores{
		RulesKnowledge:   DefaultCategoryScore,
		FoulsBodyContact: DefaultCategoryScore,
		FairMindedness:   DefaultCategoryScore,
		PositiveAttitude: DefaultCategoryScore,
		Communication:    DefaultCategoryScore,
	}
}

func (s Scores) Total() int {
	return s.RulesKnowledge + s.FoulsBodyContact + s.FairMindedness + s.PositiveAttitude + s.Communication
}

// ByCategory returns the values keyed by category key.
func (s Scores) ByCategory() map[string]int {
	return map[string]int{
		CategoryRulesKnowledge:   s.RulesKnowledge,
		CategoryFoulsBodyContact: s.FoulsBodyContact,
		CategoryFairMindedness:   s.FairMindedness,
		CategoryPositiveAttitude: s.PositiveAttitude,
		CategoryCommunication:    s.Communication,
	}
}

// ValidationError maps category keys to messages.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e[key]))
	}
	return "invalid spirit scores: " + strings.Join(parts, "; ")
}

// Validate checks every category lies in [0,4].
func (s Scores) Validate() error {
	values := s.ByCategory()
	errs := ValidationError{}
	for _, category := range categories {
		value := values[category.Key]
		if value < MinCategoryScore || value > MaxCategoryScore {
			errs[category.Key] = fmt.Sprintf("Value must be between %d and %d", MinCategoryScore, MaxCategoryScore)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Score is one submission by ScoringTeamID about OpponentTeamID for a match.
type Score struct {
	ID             string
	MatchID        string
	TournamentID   string
	ScoringTeamID  string
	OpponentTeamID string
	Scores         Scores
	TotalScore     int
	Comments       string
	SubmittedBy    string
	SubmittedAt    time.Time
}

// HasSubmitted reports whether teamID already scored matchID.
func HasSubmitted(records []Score, matchID, teamID string) bool {
	if matchID == "" || teamID == "" {
		return false
	}
	for _, record := range records {
		if record.MatchID == matchID && record.ScoringTeamID == teamID {
			return true
		}
	}
	return false
}

// Repository describes spirit score persistence needs from use cases.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Score, error)
	ListByMatch(ctx context.Context, matchID string) ([]Score, error)
	// Create returns ErrDuplicateSubmission when (match, scoring team) already exists.
	Create(ctx context.Context, item Score) error
}

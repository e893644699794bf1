package bracket

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
)

var ErrUnsupportedFormat = errors.New("unsupported bracket format")

const byeSlot = -1

// Generate dispatches to the generator for format. Formats that are modelled
// but not generated (pool, placement, swiss) return ErrUnsupportedFormat.
func Generate(format string, teamIDs []string, fieldsCount int) ([]match.Match, error) {
	switch format {
	case match.BracketRoundRobin:
		return RoundRobin(teamIDs, fieldsCount), nil
	case match.BracketElimination:
		return SingleElimination(teamIDs), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// RoundRobin pairs every team with every other team exactly once using the
// circle method. With an odd team count one team sits out each round.
// Fields are assigned round-robin over the emitted order.
func RoundRobin(teamIDs []string, fieldsCount int) []match.Match {
	if len(teamIDs) < 2 {
		return []match.Match{}
	}
	if fieldsCount < 1 {
		fieldsCount = 1
	}

	slots := make([]int, 0, len(teamIDs)+1)
	for i := range teamIDs {
		slots = append(slots, i)
	}
	if len(slots)%2 == 1 {
		slots = append(slots, byeSlot)
	}

	total := len(slots)
	rounds := total - 1
	out := make([]match.Match, 0, len(teamIDs)*(len(teamIDs)-1)/2)

	for round := 1; round <= rounds; round++ {
		matchNumber := 0
		for i := 0; i < total/2; i++ {
			home, away := slots[i], slots[total-1-i]
			if home == byeSlot || away == byeSlot {
				continue
			}
			matchNumber++
			out = append(out, match.Match{
				RoundNumber: round,
				RoundName:   fmt.Sprintf("Round %d", round),
				MatchNumber: matchNumber,
				Team1ID:     teamIDs[home],
				Team2ID:     teamIDs[away],
				BracketType: match.BracketRoundRobin,
				Status:      match.StatusScheduled,
			})
		}
		slots = rotate(slots)
	}

	for i := range out {
		out[i].FieldNumber = i%fieldsCount + 1
	}

	return out
}

// rotate keeps the first slot fixed and moves the last slot to index 1.
func rotate(slots []int) []int {
	n := len(slots)
	next := make([]int, 0, n)
	next = append(next, slots[0], slots[n-1])
	next = append(next, slots[1:n-1]...)
	return next
}

// SingleElimination builds a knockout bracket padded to the next power of two.
// Padding byes are placed against the last teams so a bye never meets a bye;
// each bye match is completed with the lone team as winner. Later rounds are
// placeholders without teams.
func SingleElimination(teamIDs []string) []match.Match {
	n := len(teamIDs)
	if n < 2 {
		return []match.Match{}
	}

	size := BracketSize(n)
	byeCount := size - n
	paired := n - byeCount

	slots := make([]int, 0, size)
	for i := 0; i < paired; i++ {
		slots = append(slots, i)
	}
	for i := paired; i < n; i++ {
		slots = append(slots, i, byeSlot)
	}

	out := make([]match.Match, 0, size-1)
	round := 1
	current := 0
	for i := 0; i+1 < len(slots); i += 2 {
		first, second := slots[i], slots[i+1]
		if first == byeSlot && second == byeSlot {
			continue
		}
		if first == byeSlot {
			first, second = second, byeSlot
		}

		current++
		m := match.Match{
			RoundNumber: round,
			RoundName:   RoundName(round, size),
			MatchNumber: current,
			Team1ID:     teamIDs[first],
			BracketType: match.BracketElimination,
			Status:      match.StatusScheduled,
		}
		if second == byeSlot {
			m.Status = match.StatusCompleted
			m.WinnerID = m.Team1ID
		} else {
			m.Team2ID = teamIDs[second]
		}
		out = append(out, m)
	}

	for current > 1 {
		round++
		next := (current + 1) / 2
		for i := 1; i <= next; i++ {
			out = append(out, match.Match{
				RoundNumber: round,
				RoundName:   RoundName(round, size),
				MatchNumber: i,
				BracketType: match.BracketElimination,
				Status:      match.StatusScheduled,
				IsFinal:     i == 1 && current == 2,
			})
		}
		current = next
	}

	return out
}

// BracketSize returns the smallest power of two that holds n teams.
func BracketSize(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// TotalRounds is log2 of the bracket size.
func TotalRounds(n int) int {
	return bits.Len(uint(BracketSize(n))) - 1
}

// RoundName labels a round by its distance from the final.
func RoundName(round, bracketSize int) string {
	totalRounds := bits.Len(uint(bracketSize)) - 1
	switch totalRounds - round + 1 {
	case 1:
		return "Final"
	case 2:
		return "Semifinals"
	case 3:
		return "Quarterfinals"
	default:
		return fmt.Sprintf("Round %d", round)
	}
}

// EstimatedMatches is the number of contested matches a format produces for n teams.
func EstimatedMatches(format string, n int) int {
	if n < 2 {
		return 0
	}
	switch format {
	case match.BracketRoundRobin:
		return n * (n - 1) / 2
	case match.BracketElimination:
		return n - 1
	default:
		return 0
	}
}

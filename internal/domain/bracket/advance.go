package bracket

import "github.com/ShubhamShuklaX/Tournify/internal/domain/match"

type slotKey struct {
	round  int
	number int
}

// AdvanceWinners copies decided winners of elimination matches into the
// matching slot of the next round. Match k of round r feeds match (k+1)/2 of
// round r+1; odd k fills Team1, even k fills Team2. Occupied slots are left
// untouched. The returned slice holds only the matches that changed.
func AdvanceWinners(matches []match.Match) []match.Match {
	index := make(map[slotKey]int, len(matches))
	for i, m := range matches {
		if m.BracketType != match.BracketElimination {
			continue
		}
		index[slotKey{round: m.RoundNumber, number: m.MatchNumber}] = i
	}

	changed := make(map[int]struct{})
	order := make([]int, 0)
	for _, m := range matches {
		if m.BracketType != match.BracketElimination || m.WinnerID == "" || m.IsFinal {
			continue
		}
		target, ok := index[slotKey{round: m.RoundNumber + 1, number: (m.MatchNumber + 1) / 2}]
		if !ok {
			continue
		}
		next := &matches[target]
		if next.Status != match.StatusScheduled {
			continue
		}

		if m.MatchNumber%2 == 1 {
			if next.Team1ID != "" {
				continue
			}
			next.Team1ID = m.WinnerID
		} else {
			if next.Team2ID != "" {
				continue
			}
			next.Team2ID = m.WinnerID
		}
		if _, seen := changed[target]; !seen {
			changed[target] = struct{}{}
			order = append(order, target)
		}
	}

	out := make([]match.Match, 0, len(order))
	for _, idx := range order {
		out = append(out, matches[idx])
	}
	return out
}

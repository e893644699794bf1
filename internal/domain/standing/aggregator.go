package standing

import (
	"math"
	"sort"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
)

const (
	PointsPerWin = 3
	PointsPerTie = 1
)

// Stats is the derived record of one team across completed matches.
type Stats struct {
	TeamID        string
	Played        int
	Wins          int
	Losses        int
	Ties          int
	PointsFor     int
	PointsAgainst int
	PointDiff     int
	Points        int
	WinRate       int
}

// Entry is one leaderboard row.
type Entry struct {
	Position int
	Stats
}

// ForTeam aggregates completed matches in which teamID played.
func ForTeam(matches []match.Match, teamID string) Stats {
	stats := Stats{TeamID: teamID}
	if teamID == "" {
		return stats
	}

	for _, m := range matches {
		result := m.ResultFor(teamID)
		if result == "" {
			continue
		}
		scored, conceded := m.Scores(teamID)
		stats.Played++
		stats.PointsFor += scored
		stats.PointsAgainst += conceded
		switch result {
		case match.ResultWin:
			stats.Wins++
		case match.ResultLoss:
			stats.Losses++
		default:
			stats.Ties++
		}
	}

	stats.PointDiff = stats.PointsFor - stats.PointsAgainst
	stats.Points = stats.Wins*PointsPerWin + stats.Ties*PointsPerTie
	if stats.Played > 0 {
		stats.WinRate = int(math.Round(float64(stats.Wins) / float64(stats.Played) * 100))
	}
	return stats
}

// Leaderboard ranks teamIDs by points, point differential, points scored and
// wins, all descending. Teams equal on every key keep their input order.
func Leaderboard(matches []match.Match, teamIDs []string) []Entry {
	out := make([]Entry, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		out = append(out, Entry{Stats: ForTeam(matches, teamID)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.PointDiff != b.PointDiff {
			return a.PointDiff > b.PointDiff
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		return a.Wins > b.Wins
	})

	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

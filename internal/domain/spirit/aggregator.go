package spirit

import (
	"math"
	"sort"
)

// Rating is a qualitative band for a spirit total.
type Rating struct {
	Label       string
	Description string
}

// RatingFor maps a total in [0,20] to its band. Lower bounds are inclusive.
func RatingFor(total int) Rating {
	switch {
	case total >= 18:
		return Rating{Label: "Exceptional", Description: "Outstanding Spirit of the Game"}
	case total >= 15:
		return Rating{Label: "Very Good", Description: "Excellent Spirit of the Game"}
	case total >= 10:
		return Rating{Label: "Good", Description: "Acceptable Spirit of the Game"}
	case total >= 6:
		return Rating{Label: "Below Average", Description: "Needs Improvement"}
	default:
		return Rating{Label: "Poor", Description: "Significant Spirit Concerns"}
	}
}

// Distribution counts submissions per rating band.
type Distribution struct {
	Exceptional  int
	VeryGood     int
	Good         int
	BelowAverage int
	Poor         int
}

// Summary is the overall picture of a set of submissions.
type Summary struct {
	Average      float64
	Count        int
	Distribution Distribution
}

// CategoryMeans holds per-category means rounded to one decimal.
type CategoryMeans struct {
	RulesKnowledge   float64
	FoulsBodyContact float64
	FairMindedness   float64
	PositiveAttitude float64
	Communication    float64
}

// Entry is one row of the spirit leaderboard, keyed by the rated team.
type Entry struct {
	Position      int
	TeamID        string
	Count         int
	AverageTotal  float64
	CategoryMeans CategoryMeans
	Rating        Rating
}

// Summarize averages totals and buckets them by rating band.
func Summarize(records []Score) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	var sum int
	var dist Distribution
	for _, record := range records {
		total := record.TotalScore
		sum += total
		switch {
		case total >= 18:
			dist.Exceptional++
		case total >= 15:
			dist.VeryGood++
		case total >= 10:
			dist.Good++
		case total >= 6:
			dist.BelowAverage++
		default:
			dist.Poor++
		}
	}

	return Summary{
		Average:      round1(float64(sum) / float64(len(records))),
		Count:        len(records),
		Distribution: dist,
	}
}

type accumulator struct {
	count int
	total int
	cats  Scores
}

// Leaderboard groups submissions by the team that received them and ranks by
// mean total desc, then submission count desc, then team id asc.
func Leaderboard(records []Score) []Entry {
	groups := make(map[string]*accumulator)
	for _, record := range records {
		if record.OpponentTeamID == "" {
			continue
		}
		acc, ok := groups[record.OpponentTeamID]
		if !ok {
			acc = &accumulator{}
			groups[record.OpponentTeamID] = acc
		}
		acc.count++
		acc.total += record.TotalScore
		acc.cats.RulesKnowledge += record.Scores.RulesKnowledge
		acc.cats.FoulsBodyContact += record.Scores.FoulsBodyContact
		acc.cats.FairMindedness += record.Scores.FairMindedness
		acc.cats.PositiveAttitude += record.Scores.PositiveAttitude
		acc.cats.Communication += record.Scores.Communication
	}

	out := make([]Entry, 0, len(groups))
	for teamID, acc := range groups {
		n := float64(acc.count)
		mean := round1(float64(acc.total) / n)
		out = append(out, Entry{
			TeamID:       teamID,
			Count:        acc.count,
			AverageTotal: mean,
			CategoryMeans: CategoryMeans{
				RulesKnowledge:   round1(float64(acc.cats.RulesKnowledge) / n),
				FoulsBodyContact: round1(float64(acc.cats.FoulsBodyContact) / n),
				FairMindedness:   round1(float64(acc.cats.FairMindedness) / n),
				PositiveAttitude: round1(float64(acc.cats.PositiveAttitude) / n),
				Communication:    round1(float64(acc.cats.Communication) / n),
			},
			Rating: RatingFor(int(math.Round(mean))),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.AverageTotal != b.AverageTotal {
			return a.AverageTotal > b.AverageTotal
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.TeamID < b.TeamID
	})

	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package scoring

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// recencyBonusMax is the bonus for a candidate submitted right now; it
	// decays linearly to zero over recencyDecayDays.
	recencyBonusMax  = 10.0
	recencyDecayDays = 70.0

	// positionBonus is added when the candidate explicitly applied for the
	// queried position. A direct application is a stronger signal than
	// inferred skill overlap.
	positionBonus = 15.0
)

// Profile is the slice of a candidate the scorer needs. Profiles are read
// only; scoring never mutates them.
type Profile struct {
	ID              uuid.UUID
	Name            string
	AppliedPosition string
	Status          string
	Skills          []string
	CreatedAt       time.Time
}

// Scored is a request-scoped projection of a Profile against one posting.
// It is never persisted.
type Scored struct {
	Profile

	RecommendationScore int
	MatchPercentage     int
	MatchedSkills       []string
	MissingSkills       []string
}

// ScoreForPosting scores one candidate against a posting's required skills.
// The score is the match percentage plus a recency bonus and, when the
// candidate's applied position contains positionQuery (case-insensitive),
// a flat position bonus; the sum is clamped to [0, 100] since the raw
// components can add up to 125.
func ScoreForPosting(p Profile, requiredSkills []string, positionQuery string, now time.Time) Scored {
	matched, missing := MatchSkills(p.Skills, requiredSkills)
	pct := MatchPercentage(len(matched), len(requiredSkills))

	total := float64(pct) + recencyBonus(p.CreatedAt, now)

	if q := Normalize(positionQuery); q != "" && strings.Contains(Normalize(p.AppliedPosition), q) {
		total += positionBonus
	}

	return Scored{
		Profile:             p,
		RecommendationScore: clampScore(int(math.Round(total))),
		MatchPercentage:     pct,
		MatchedSkills:       matched,
		MissingSkills:       missing,
	}
}

// ScoreCandidates scores every profile against the posting. Each score
// depends only on that profile plus the shared read-only inputs, so callers
// may invoke this concurrently without coordination.
func ScoreCandidates(profiles []Profile, requiredSkills []string, positionQuery string, now time.Time) []Scored {
	out := make([]Scored, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ScoreForPosting(p, requiredSkills, positionQuery, now))
	}
	return out
}

// Rank orders scored candidates by descending recommendation score and
// truncates to limit. The sort is stable: ties keep their input order.
// limit must be positive; a non-positive limit is a programmer error and
// panics rather than being silently clamped.
func Rank(scored []Scored, limit int) []Scored {
	if limit <= 0 {
		panic("scoring: limit must be positive")
	}

	out := make([]Scored, len(scored))
	copy(out, scored)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecommendationScore > out[j].RecommendationScore
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RankCandidates is the score-then-rank composition used by the
// recommendation flow.
func RankCandidates(profiles []Profile, requiredSkills []string, positionQuery string, limit int, now time.Time) []Scored {
	return Rank(ScoreCandidates(profiles, requiredSkills, positionQuery, now), limit)
}

func recencyBonus(createdAt, now time.Time) float64 {
	ageDays := now.Sub(createdAt).Hours() / 24.0
	if ageDays < 0 {
		ageDays = 0
	}
	bonus := recencyBonusMax - ageDays*(recencyBonusMax/recencyDecayDays)
	if bonus < 0 {
		return 0
	}
	return bonus
}

// statusBonus is a disabled extension point: weighting candidates by
// pipeline stage changes ranking outcomes the current fixtures rely on, so
// ScoreForPosting does not apply it.
func statusBonus(status string) float64 {
	switch status {
	case "Interviewing":
		return 5
	case "Screening":
		return 3
	default:
		return 0
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

package scoring

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestScoreForPosting_ReferenceScenario(t *testing.T) {
	now := time.Now().UTC()
	p := Profile{
		ID:              uuid.New(),
		Name:            "A",
		AppliedPosition: "Backend Developer",
		Skills:          []string{"React", "Node.js"},
		CreatedAt:       now,
	}

	s := ScoreForPosting(p, []string{"react", "Node", "SQL"}, "Backend", now)

	if !reflect.DeepEqual(s.MatchedSkills, []string{"react", "node"}) {
		t.Fatalf("matched = %v, want [react node]", s.MatchedSkills)
	}
	if !reflect.DeepEqual(s.MissingSkills, []string{"sql"}) {
		t.Fatalf("missing = %v, want [sql]", s.MissingSkills)
	}
	if s.MatchPercentage != 67 {
		t.Fatalf("match_percentage = %d, want 67", s.MatchPercentage)
	}
	// 67 match + 10 recency + 15 position = 92
	if s.RecommendationScore != 92 {
		t.Fatalf("recommendation_score = %d, want 92", s.RecommendationScore)
	}
}

func TestScoreForPosting_EmptyCandidateSkills(t *testing.T) {
	now := time.Now().UTC()
	p := Profile{AppliedPosition: "Backend Developer", CreatedAt: now}

	s := ScoreForPosting(p, []string{"SQL"}, "Backend", now)

	if s.MatchPercentage != 0 {
		t.Fatalf("match_percentage = %d, want 0", s.MatchPercentage)
	}
	if len(s.MatchedSkills) != 0 {
		t.Fatalf("matched = %v, want empty", s.MatchedSkills)
	}
	// 0 match + 10 recency + 15 position = 25
	if s.RecommendationScore != 25 {
		t.Fatalf("recommendation_score = %d, want 25", s.RecommendationScore)
	}
}

func TestScoreForPosting_EmptyRequiredSkills(t *testing.T) {
	now := time.Now().UTC()
	p := Profile{Skills: []string{"Go"}, CreatedAt: now}

	s := ScoreForPosting(p, nil, "", now)

	if s.MatchPercentage != 0 {
		t.Fatalf("match_percentage = %d, want 0", s.MatchPercentage)
	}
	if len(s.MatchedSkills) != 0 || len(s.MissingSkills) != 0 {
		t.Fatalf("expected empty matched/missing, got %v / %v", s.MatchedSkills, s.MissingSkills)
	}
}

func TestScoreForPosting_ClampedAt100(t *testing.T) {
	now := time.Now().UTC()
	p := Profile{
		AppliedPosition: "Backend Developer",
		Skills:          []string{"Go", "SQL"},
		CreatedAt:       now,
	}

	// 100 match + 10 recency + 15 position would be 125 unclamped.
	s := ScoreForPosting(p, []string{"Go", "SQL"}, "Backend", now)
	if s.RecommendationScore != 100 {
		t.Fatalf("recommendation_score = %d, want 100", s.RecommendationScore)
	}
}

func TestScoreForPosting_DoesNotMutateInputs(t *testing.T) {
	now := time.Now().UTC()
	skills := []string{"React", "Node.js"}
	required := []string{"react", "SQL"}
	p := Profile{Skills: skills, CreatedAt: now}

	_ = ScoreForPosting(p, required, "Backend", now)

	if !reflect.DeepEqual(skills, []string{"React", "Node.js"}) {
		t.Fatalf("candidate skills mutated: %v", skills)
	}
	if !reflect.DeepEqual(required, []string{"react", "SQL"}) {
		t.Fatalf("required skills mutated: %v", required)
	}
}

func TestRecencyBonus_MonotoneAndFloored(t *testing.T) {
	now := time.Now().UTC()

	prev := recencyBonus(now, now)
	if prev < 9.99 || prev > 10.0 {
		t.Fatalf("recency bonus for fresh candidate = %f, want ~10", prev)
	}

	for days := 1; days <= 90; days++ {
		b := recencyBonus(now.Add(-time.Duration(days)*24*time.Hour), now)
		if b > prev {
			t.Fatalf("recency bonus increased with age at day %d: %f > %f", days, b, prev)
		}
		if days >= 70 && b != 0 {
			t.Fatalf("recency bonus at day %d = %f, want 0", days, b)
		}
		prev = b
	}
}

func TestScoreForPosting_OldCandidateBounds(t *testing.T) {
	now := time.Now().UTC()
	p := Profile{
		Skills:    []string{"Go"},
		CreatedAt: now.Add(-365 * 24 * time.Hour),
	}

	s := ScoreForPosting(p, []string{"Rust"}, "", now)
	if s.RecommendationScore < 0 || s.RecommendationScore > 100 {
		t.Fatalf("recommendation_score out of range: %d", s.RecommendationScore)
	}
	if s.RecommendationScore != 0 {
		t.Fatalf("recommendation_score = %d, want 0 (no match, no bonuses)", s.RecommendationScore)
	}
}

func TestRankCandidates_SortsTruncatesAndKeepsTieOrder(t *testing.T) {
	now := time.Now().UTC()
	required := []string{"Go", "SQL"}

	profiles := []Profile{
		{Name: "none", Skills: []string{"Excel"}, CreatedAt: now},
		{Name: "full", Skills: []string{"Go", "SQL"}, CreatedAt: now},
		{Name: "half-a", Skills: []string{"Go"}, CreatedAt: now},
		{Name: "half-b", Skills: []string{"SQL"}, CreatedAt: now},
		{Name: "stale-half", Skills: []string{"Go"}, CreatedAt: now.Add(-100 * 24 * time.Hour)},
	}

	ranked := RankCandidates(profiles, required, "", 3, now)

	if len(ranked) != 3 {
		t.Fatalf("len(ranked) = %d, want 3", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].RecommendationScore > ranked[i-1].RecommendationScore {
			t.Fatalf("not sorted desc at %d: %d > %d", i, ranked[i].RecommendationScore, ranked[i-1].RecommendationScore)
		}
	}
	if ranked[0].Name != "full" {
		t.Fatalf("ranked[0] = %s, want full", ranked[0].Name)
	}
	// half-a and half-b tie; input order must survive the sort.
	if ranked[1].Name != "half-a" || ranked[2].Name != "half-b" {
		t.Fatalf("tie order broken: got %s, %s", ranked[1].Name, ranked[2].Name)
	}
}

func TestRankCandidates_LimitLargerThanInput(t *testing.T) {
	now := time.Now().UTC()
	profiles := []Profile{{Skills: []string{"Go"}, CreatedAt: now}}

	ranked := RankCandidates(profiles, []string{"Go"}, "", 10, now)
	if len(ranked) != 1 {
		t.Fatalf("len(ranked) = %d, want 1", len(ranked))
	}
}

func TestRankCandidates_EmptyInput(t *testing.T) {
	ranked := RankCandidates(nil, []string{"Go"}, "", 3, time.Now().UTC())
	if len(ranked) != 0 {
		t.Fatalf("len(ranked) = %d, want 0", len(ranked))
	}
}

func TestRank_NonPositiveLimitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non-positive limit")
		}
	}()
	Rank(nil, 0)
}

func TestRank_DoesNotReorderInput(t *testing.T) {
	now := time.Now().UTC()
	scored := ScoreCandidates([]Profile{
		{Name: "low", Skills: []string{"Excel"}, CreatedAt: now},
		{Name: "high", Skills: []string{"Go"}, CreatedAt: now},
	}, []string{"Go"}, "", now)

	_ = Rank(scored, 2)

	if scored[0].Name != "low" || scored[1].Name != "high" {
		t.Fatalf("Rank mutated its input: %s, %s", scored[0].Name, scored[1].Name)
	}
}

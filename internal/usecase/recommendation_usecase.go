package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"hireflow/internal/domain/scoring"
	"hireflow/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultRecommendationLimit = 3
	MaxRecommendationLimit     = 10
)

var (
	ErrNoRequirementFound     = errors.New("no matching job requirement")
	ErrRequirementSkillsEmpty = errors.New("job requirement has no skills")
	ErrRecommendationLimit    = errors.New("recommendation limit out of range")
)

// RecommendationCache is the slice of the redis wrapper the recommendation
// flow needs; nil disables caching.
type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type RecommendationParams struct {
	Position string
	Limit    int
}

type RecommendedCandidate struct {
	CandidateID         uuid.UUID `json:"candidate_id"`
	Name                string    `json:"name"`
	AppliedPosition     string    `json:"applied_position"`
	Status              string    `json:"status"`
	RecommendationScore int       `json:"recommendation_score"`
	MatchPercentage     int       `json:"match_percentage"`
	MatchedSkills       []string  `json:"matched_skills"`
	MissingSkills       []string  `json:"missing_skills"`
}

type RecommendationStats struct {
	TotalCandidates        int `json:"total_candidates"`
	CandidatesWithSkills   int `json:"candidates_with_skills"`
	AverageMatchPercentage int `json:"average_match_percentage"`
}

type RecommendationResult struct {
	RequirementID    uuid.UUID              `json:"requirement_id"`
	RequirementTitle string                 `json:"requirement_title"`
	RequiredSkills   []string               `json:"required_skills"`
	Candidates       []RecommendedCandidate `json:"candidates"`
	Stats            RecommendationStats    `json:"stats"`
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, ownerID uuid.UUID, params RecommendationParams) (RecommendationResult, error)
}

type Recommendations struct {
	candidates   repository.CandidateRepository
	requirements repository.RequirementRepository
	cache        RecommendationCache

	now func() time.Time
}

func NewRecommendationUsecase(
	candidates repository.CandidateRepository,
	requirements repository.RequirementRepository,
	cache RecommendationCache,
) *Recommendations {
	return &Recommendations{
		candidates:   candidates,
		requirements: requirements,
		cache:        cache,
		now:          time.Now,
	}
}

func (u *Recommendations) GetRecommendations(ctx context.Context, ownerID uuid.UUID, params RecommendationParams) (RecommendationResult, error) {
	if ownerID == uuid.Nil {
		return RecommendationResult{}, ErrUnauthorized
	}

	position := strings.TrimSpace(params.Position)
	if position == "" {
		return RecommendationResult{}, ErrInvalidInput
	}

	limit := params.Limit
	if limit == 0 {
		limit = DefaultRecommendationLimit
	}
	if limit < 0 || limit > MaxRecommendationLimit {
		return RecommendationResult{}, ErrRecommendationLimit
	}

	cacheKey := recommendationKey(ownerID, position, limit)
	if u.cache != nil {
		var cached RecommendationResult
		if ok, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	req, err := u.requirements.FindByTitle(ctx, ownerID, position)
	if err != nil {
		if errors.Is(err, repository.ErrRequirementNotFound) {
			return RecommendationResult{}, ErrNoRequirementFound
		}
		return RecommendationResult{}, ErrInternal
	}
	if len(req.Skills) == 0 {
		return RecommendationResult{}, ErrRequirementSkillsEmpty
	}

	total, err := u.candidates.CountByOwner(ctx, ownerID)
	if err != nil {
		return RecommendationResult{}, ErrInternal
	}

	withSkills, err := u.candidates.ListWithSkillsByOwner(ctx, ownerID)
	if err != nil {
		return RecommendationResult{}, ErrInternal
	}

	now := u.now().UTC()
	profiles := make([]scoring.Profile, 0, len(withSkills))
	for _, c := range withSkills {
		profiles = append(profiles, scoring.Profile{
			ID:              c.ID,
			Name:            c.Name,
			AppliedPosition: c.AppliedPosition,
			Status:          string(c.Status),
			Skills:          c.Skills,
			CreatedAt:       c.CreatedAt,
		})
	}

	scored := scoring.ScoreCandidates(profiles, req.Skills, position, now)
	ranked := scoring.Rank(scored, limit)

	out := RecommendationResult{
		RequirementID:    req.ID,
		RequirementTitle: req.Title,
		RequiredSkills:   req.Skills,
		Candidates:       make([]RecommendedCandidate, 0, len(ranked)),
		Stats: RecommendationStats{
			TotalCandidates:        total,
			CandidatesWithSkills:   len(withSkills),
			AverageMatchPercentage: averageMatchPercentage(scored),
		},
	}
	for _, s := range ranked {
		out.Candidates = append(out.Candidates, RecommendedCandidate{
			CandidateID:         s.ID,
			Name:                s.Name,
			AppliedPosition:     s.AppliedPosition,
			Status:              s.Status,
			RecommendationScore: s.RecommendationScore,
			MatchPercentage:     s.MatchPercentage,
			MatchedSkills:       s.MatchedSkills,
			MissingSkills:       s.MissingSkills,
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, out, 0)
	}

	return out, nil
}

// averageMatchPercentage covers every scored candidate, not just the
// returned top slice.
func averageMatchPercentage(scored []scoring.Scored) int {
	if len(scored) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scored {
		sum += s.MatchPercentage
	}
	return int(math.Round(float64(sum) / float64(len(scored))))
}

func recommendationKey(ownerID uuid.UUID, position string, limit int) string {
	return fmt.Sprintf("recs:%s:%s:%d", ownerID, strings.ToLower(position), limit)
}

func recommendationKeyPattern(ownerID uuid.UUID) string {
	return fmt.Sprintf("recs:%s:*", ownerID)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/scoring"
	"hireflow/internal/infrastructure/storage"
	"hireflow/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrResumeNotFound    = errors.New("resume not found")
)

type CreateCandidateInput struct {
	Name            string
	AppliedPosition string
	Skills          []string
}

type CandidateListParams struct {
	Status   string
	Position string
	Search   string
	Limit    int
	Offset   int
}

type CandidateUsecase interface {
	List(ctx context.Context, ownerID uuid.UUID, params CandidateListParams) ([]candidate.Candidate, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (candidate.Candidate, error)
	Create(ctx context.Context, ownerID uuid.UUID, in CreateCandidateInput) (candidate.Candidate, error)
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status string) (candidate.Candidate, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	AttachResume(ctx context.Context, ownerID, id uuid.UUID, filename, contentType string, data []byte) (string, error)
	GetResume(ctx context.Context, ownerID, id uuid.UUID) ([]byte, string, error)
}

type Candidates struct {
	candidates   repository.CandidateRepository
	requirements repository.RequirementRepository
	objects      storage.ObjectStore
	cache        RecommendationCache

	now func() time.Time
}

func NewCandidateUsecase(
	candidates repository.CandidateRepository,
	requirements repository.RequirementRepository,
	objects storage.ObjectStore,
	cache RecommendationCache,
) *Candidates {
	return &Candidates{
		candidates:   candidates,
		requirements: requirements,
		objects:      objects,
		cache:        cache,
		now:          time.Now,
	}
}

func (u *Candidates) List(ctx context.Context, ownerID uuid.UUID, params CandidateListParams) ([]candidate.Candidate, error) {
	if ownerID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if params.Limit < 0 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}
	if params.Status != "" && !candidate.Status(params.Status).Valid() {
		return nil, ErrInvalidInput
	}

	items, err := u.candidates.ListByOwner(ctx, ownerID, repository.CandidateFilter{
		Status:   params.Status,
		Position: params.Position,
		Search:   params.Search,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Candidates) Get(ctx context.Context, ownerID, id uuid.UUID) (candidate.Candidate, error) {
	if ownerID == uuid.Nil {
		return candidate.Candidate{}, ErrUnauthorized
	}
	c, err := u.candidates.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return candidate.Candidate{}, ErrCandidateNotFound
		}
		return candidate.Candidate{}, ErrInternal
	}
	return c, nil
}

// Create stores a new candidate with its matching score computed once
// against the requirement that best matches the applied position. A missing
// requirement or an empty skill list is not an error: the candidate is
// stored with a zero score.
func (u *Candidates) Create(ctx context.Context, ownerID uuid.UUID, in CreateCandidateInput) (candidate.Candidate, error) {
	if ownerID == uuid.Nil {
		return candidate.Candidate{}, ErrUnauthorized
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return candidate.Candidate{}, ErrInvalidInput
	}
	position := strings.TrimSpace(in.AppliedPosition)
	skills := cleanSkills(in.Skills)

	now := u.now().UTC()
	score := u.initialMatchingScore(ctx, ownerID, position, skills, now)

	c := candidate.Candidate{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Name:            name,
		AppliedPosition: position,
		Status:          candidate.StatusNew,
		Skills:          skills,
		MatchingScore:   &score,
	}

	created, err := u.candidates.Create(ctx, c)
	if err != nil {
		return candidate.Candidate{}, ErrInternal
	}

	u.invalidateRecommendations(ctx, ownerID)
	return created, nil
}

func (u *Candidates) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status string) (candidate.Candidate, error) {
	if ownerID == uuid.Nil {
		return candidate.Candidate{}, ErrUnauthorized
	}

	st := candidate.Status(strings.TrimSpace(status))
	if !st.Valid() {
		return candidate.Candidate{}, ErrInvalidInput
	}

	updated, err := u.candidates.UpdateStatus(ctx, ownerID, id, st)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return candidate.Candidate{}, ErrCandidateNotFound
		}
		return candidate.Candidate{}, ErrInternal
	}

	u.invalidateRecommendations(ctx, ownerID)
	return updated, nil
}

func (u *Candidates) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if ownerID == uuid.Nil {
		return ErrUnauthorized
	}

	c, err := u.candidates.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return ErrCandidateNotFound
		}
		return ErrInternal
	}

	if err := u.candidates.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return ErrCandidateNotFound
		}
		return ErrInternal
	}

	// Best effort; an orphaned object is not worth failing the delete.
	if c.ResumeKey != "" && u.objects != nil {
		_ = u.objects.Delete(ctx, c.ResumeKey)
	}

	u.invalidateRecommendations(ctx, ownerID)
	return nil
}

func (u *Candidates) AttachResume(ctx context.Context, ownerID, id uuid.UUID, filename, contentType string, data []byte) (string, error) {
	if ownerID == uuid.Nil {
		return "", ErrUnauthorized
	}
	if len(data) == 0 {
		return "", ErrInvalidInput
	}
	if u.objects == nil {
		return "", ErrInternal
	}

	if _, err := u.candidates.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return "", ErrCandidateNotFound
		}
		return "", ErrInternal
	}

	key := fmt.Sprintf("resumes/%s/%s/%s", ownerID, id, sanitizeFilename(filename))
	if err := u.objects.Put(ctx, key, contentType, data); err != nil {
		return "", ErrInternal
	}

	if err := u.candidates.SetResumeKey(ctx, ownerID, id, key); err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return "", ErrCandidateNotFound
		}
		return "", ErrInternal
	}
	return key, nil
}

func (u *Candidates) GetResume(ctx context.Context, ownerID, id uuid.UUID) ([]byte, string, error) {
	if ownerID == uuid.Nil {
		return nil, "", ErrUnauthorized
	}
	if u.objects == nil {
		return nil, "", ErrResumeNotFound
	}

	c, err := u.candidates.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return nil, "", ErrCandidateNotFound
		}
		return nil, "", ErrInternal
	}
	if c.ResumeKey == "" {
		return nil, "", ErrResumeNotFound
	}

	data, contentType, err := u.objects.Get(ctx, c.ResumeKey)
	if err != nil {
		return nil, "", ErrInternal
	}
	return data, contentType, nil
}

func (u *Candidates) initialMatchingScore(ctx context.Context, ownerID uuid.UUID, position string, skills []string, now time.Time) int {
	if position == "" || len(skills) == 0 {
		return 0
	}

	req, err := u.requirements.FindByTitle(ctx, ownerID, position)
	if err != nil || len(req.Skills) == 0 {
		return 0
	}

	p := scoring.Profile{
		AppliedPosition: position,
		Skills:          skills,
		CreatedAt:       now,
	}
	return scoring.ScoreForPosting(p, req.Skills, position, now).RecommendationScore
}

func (u *Candidates) invalidateRecommendations(ctx context.Context, ownerID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, recommendationKeyPattern(ownerID))
}

func cleanSkills(skills []string) []string {
	if len(skills) == 0 {
		return nil
	}
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" {
		return "resume"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}

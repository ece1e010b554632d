package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/requirement"
	"hireflow/internal/repository"

	"github.com/google/uuid"
)

type mockCandidateRepo struct {
	items   []candidate.Candidate
	created *candidate.Candidate
	count   int
	err     error
}

func (m *mockCandidateRepo) Create(_ context.Context, c candidate.Candidate) (candidate.Candidate, error) {
	if m.err != nil {
		return candidate.Candidate{}, m.err
	}
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.created = &c
	return c, nil
}

func (m *mockCandidateRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (candidate.Candidate, error) {
	if m.err != nil {
		return candidate.Candidate{}, m.err
	}
	for _, c := range m.items {
		if c.ID == id && c.OwnerID == ownerID {
			return c, nil
		}
	}
	return candidate.Candidate{}, repository.ErrCandidateNotFound
}

func (m *mockCandidateRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, _ repository.CandidateFilter) ([]candidate.Candidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]candidate.Candidate, 0)
	for _, c := range m.items {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCandidateRepo) ListWithSkillsByOwner(_ context.Context, ownerID uuid.UUID) ([]candidate.Candidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]candidate.Candidate, 0)
	for _, c := range m.items {
		if c.OwnerID == ownerID && c.HasSkills() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCandidateRepo) CountByOwner(_ context.Context, _ uuid.UUID) (int, error) {
	return m.count, m.err
}

func (m *mockCandidateRepo) UpdateStatus(_ context.Context, ownerID, id uuid.UUID, status candidate.Status) (candidate.Candidate, error) {
	if m.err != nil {
		return candidate.Candidate{}, m.err
	}
	for i, c := range m.items {
		if c.ID == id && c.OwnerID == ownerID {
			m.items[i].Status = status
			return m.items[i], nil
		}
	}
	return candidate.Candidate{}, repository.ErrCandidateNotFound
}

func (m *mockCandidateRepo) SetResumeKey(_ context.Context, ownerID, id uuid.UUID, key string) error {
	for i, c := range m.items {
		if c.ID == id && c.OwnerID == ownerID {
			m.items[i].ResumeKey = key
			return nil
		}
	}
	return repository.ErrCandidateNotFound
}

func (m *mockCandidateRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	for i, c := range m.items {
		if c.ID == id && c.OwnerID == ownerID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrCandidateNotFound
}

type mockRequirementRepo struct {
	byTitle map[string]requirement.JobRequirement
	err     error
}

func (m *mockRequirementRepo) Create(_ context.Context, r requirement.JobRequirement) (requirement.JobRequirement, error) {
	return r, m.err
}

func (m *mockRequirementRepo) ListByOwner(_ context.Context, _ uuid.UUID) ([]requirement.JobRequirement, error) {
	out := make([]requirement.JobRequirement, 0, len(m.byTitle))
	for _, r := range m.byTitle {
		out = append(out, r)
	}
	return out, m.err
}

func (m *mockRequirementRepo) FindByTitle(_ context.Context, _ uuid.UUID, query string) (requirement.JobRequirement, error) {
	if m.err != nil {
		return requirement.JobRequirement{}, m.err
	}
	if r, ok := m.byTitle[query]; ok {
		return r, nil
	}
	return requirement.JobRequirement{}, repository.ErrRequirementNotFound
}

type mockObjectStore struct {
	objects map[string][]byte
	err     error
}

func (m *mockObjectStore) Put(_ context.Context, key, _ string, body []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = body
	return nil
}

func (m *mockObjectStore) Get(_ context.Context, key string) ([]byte, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	b, ok := m.objects[key]
	if !ok {
		return nil, "", errors.New("object not found")
	}
	return b, "application/pdf", nil
}

func (m *mockObjectStore) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return m.err
}

type mockCache struct {
	deletedPatterns []string
}

func (m *mockCache) GetJSON(_ context.Context, _ string, _ any) (bool, error) { return false, nil }

func (m *mockCache) SetJSON(_ context.Context, _ string, _ any, _ time.Duration) error { return nil }

func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.deletedPatterns = append(m.deletedPatterns, pattern)
	return nil
}

func TestCandidateCreate_ComputesMatchingScore(t *testing.T) {
	ownerID := uuid.New()
	reqs := &mockRequirementRepo{byTitle: map[string]requirement.JobRequirement{
		"Backend Developer": {
			ID:     uuid.New(),
			Title:  "Backend Developer",
			Skills: []string{"react", "Node", "SQL"},
		},
	}}
	repo := &mockCandidateRepo{}
	cache := &mockCache{}

	uc := NewCandidateUsecase(repo, reqs, &mockObjectStore{}, cache)

	created, err := uc.Create(context.Background(), ownerID, CreateCandidateInput{
		Name:            "Dana",
		AppliedPosition: "Backend Developer",
		Skills:          []string{"React", "Node.js"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.MatchingScore == nil {
		t.Fatalf("expected matching score to be set")
	}
	// 67 match + 10 recency + 15 position = 92
	if *created.MatchingScore != 92 {
		t.Fatalf("matching_score = %d, want 92", *created.MatchingScore)
	}
	if created.Status != candidate.StatusNew {
		t.Fatalf("status = %s, want New", created.Status)
	}
	if len(cache.deletedPatterns) == 0 {
		t.Fatalf("expected recommendation cache invalidation")
	}
}

func TestCandidateCreate_NoRequirementMatch_ScoresZero(t *testing.T) {
	uc := NewCandidateUsecase(&mockCandidateRepo{}, &mockRequirementRepo{}, &mockObjectStore{}, &mockCache{})

	created, err := uc.Create(context.Background(), uuid.New(), CreateCandidateInput{
		Name:            "Dana",
		AppliedPosition: "Underwater Basket Weaver",
		Skills:          []string{"Go"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.MatchingScore == nil || *created.MatchingScore != 0 {
		t.Fatalf("matching_score = %v, want 0", created.MatchingScore)
	}
}

func TestCandidateCreate_EmptySkills_ScoresZero(t *testing.T) {
	reqs := &mockRequirementRepo{byTitle: map[string]requirement.JobRequirement{
		"Backend Developer": {Skills: []string{"Go"}},
	}}
	uc := NewCandidateUsecase(&mockCandidateRepo{}, reqs, &mockObjectStore{}, &mockCache{})

	created, err := uc.Create(context.Background(), uuid.New(), CreateCandidateInput{
		Name:            "Dana",
		AppliedPosition: "Backend Developer",
		Skills:          []string{"  ", ""},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.MatchingScore == nil || *created.MatchingScore != 0 {
		t.Fatalf("matching_score = %v, want 0", created.MatchingScore)
	}
	if created.Skills != nil {
		t.Fatalf("skills = %v, want nil after cleaning", created.Skills)
	}
}

func TestCandidateCreate_EmptyName_Rejected(t *testing.T) {
	uc := NewCandidateUsecase(&mockCandidateRepo{}, &mockRequirementRepo{}, &mockObjectStore{}, &mockCache{})

	_, err := uc.Create(context.Background(), uuid.New(), CreateCandidateInput{Name: "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCandidateUpdateStatus_InvalidStatus(t *testing.T) {
	uc := NewCandidateUsecase(&mockCandidateRepo{}, &mockRequirementRepo{}, &mockObjectStore{}, &mockCache{})

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "OnHold")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCandidateUpdateStatus_Transition(t *testing.T) {
	ownerID := uuid.New()
	id := uuid.New()
	repo := &mockCandidateRepo{items: []candidate.Candidate{{
		ID:      id,
		OwnerID: ownerID,
		Name:    "Dana",
		Status:  candidate.StatusNew,
	}}}
	cache := &mockCache{}
	uc := NewCandidateUsecase(repo, &mockRequirementRepo{}, &mockObjectStore{}, cache)

	updated, err := uc.UpdateStatus(context.Background(), ownerID, id, "Interviewing")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != candidate.StatusInterviewing {
		t.Fatalf("status = %s, want Interviewing", updated.Status)
	}
	if len(cache.deletedPatterns) == 0 {
		t.Fatalf("expected recommendation cache invalidation")
	}
}

func TestCandidateUpdateStatus_NotFound(t *testing.T) {
	uc := NewCandidateUsecase(&mockCandidateRepo{}, &mockRequirementRepo{}, &mockObjectStore{}, &mockCache{})

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "Hired")
	if !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestCandidateDelete_RemovesResumeObject(t *testing.T) {
	ownerID := uuid.New()
	id := uuid.New()
	store := &mockObjectStore{objects: map[string][]byte{"resumes/key": []byte("pdf")}}
	repo := &mockCandidateRepo{items: []candidate.Candidate{{
		ID:        id,
		OwnerID:   ownerID,
		Name:      "Dana",
		ResumeKey: "resumes/key",
	}}}
	uc := NewCandidateUsecase(repo, &mockRequirementRepo{}, store, &mockCache{})

	if err := uc.Delete(context.Background(), ownerID, id); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := store.objects["resumes/key"]; ok {
		t.Fatalf("expected resume object to be deleted")
	}
}

func TestCandidateAttachResume(t *testing.T) {
	ownerID := uuid.New()
	id := uuid.New()
	store := &mockObjectStore{}
	repo := &mockCandidateRepo{items: []candidate.Candidate{{ID: id, OwnerID: ownerID, Name: "Dana"}}}
	uc := NewCandidateUsecase(repo, &mockRequirementRepo{}, store, &mockCache{})

	key, err := uc.AttachResume(context.Background(), ownerID, id, "../cv v2.pdf", "application/pdf", []byte("pdf"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if key == "" {
		t.Fatalf("expected non-empty object key")
	}
	if _, ok := store.objects[key]; !ok {
		t.Fatalf("expected object stored under %s", key)
	}
	if repo.items[0].ResumeKey != key {
		t.Fatalf("resume key not persisted on candidate")
	}
}

func TestCandidateGetResume_NoResume(t *testing.T) {
	ownerID := uuid.New()
	id := uuid.New()
	repo := &mockCandidateRepo{items: []candidate.Candidate{{ID: id, OwnerID: ownerID, Name: "Dana"}}}
	uc := NewCandidateUsecase(repo, &mockRequirementRepo{}, &mockObjectStore{}, &mockCache{})

	_, _, err := uc.GetResume(context.Background(), ownerID, id)
	if !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
}

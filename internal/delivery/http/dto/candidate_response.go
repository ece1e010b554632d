package dto

import (
	"time"

	"hireflow/internal/domain/candidate"

	"github.com/google/uuid"
)

type CandidateResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	AppliedPosition string    `json:"applied_position"`
	Status          string    `json:"status"`
	Skills          []string  `json:"skills"`
	MatchingScore   *int      `json:"matching_score"`
	HasResume       bool      `json:"has_resume"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewCandidateResponse(c candidate.Candidate) CandidateResponse {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	return CandidateResponse{
		ID:              c.ID,
		Name:            c.Name,
		AppliedPosition: c.AppliedPosition,
		Status:          string(c.Status),
		Skills:          skills,
		MatchingScore:   c.MatchingScore,
		HasResume:       c.ResumeKey != "",
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func NewCandidateListResponse(items []candidate.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCandidateResponse(c))
	}
	return out
}

package dto

import (
	"time"

	"hireflow/internal/domain/requirement"

	"github.com/google/uuid"
)

type RequirementResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRequirementResponse(r requirement.JobRequirement) RequirementResponse {
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	return RequirementResponse{ID: r.ID, Title: r.Title, Skills: skills, CreatedAt: r.CreatedAt}
}

func NewRequirementListResponse(items []requirement.JobRequirement) []RequirementResponse {
	out := make([]RequirementResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewRequirementResponse(r))
	}
	return out
}

package usecase

import (
	"context"
	"strings"

	"hireflow/internal/domain/requirement"
	"hireflow/internal/repository"

	"github.com/google/uuid"
)

type CreateRequirementInput struct {
	Title  string
	Skills []string
}

type RequirementUsecase interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]requirement.JobRequirement, error)
	Create(ctx context.Context, ownerID uuid.UUID, in CreateRequirementInput) (requirement.JobRequirement, error)
}

type Requirements struct {
	requirements repository.RequirementRepository
	cache        RecommendationCache
}

func NewRequirementUsecase(requirements repository.RequirementRepository, cache RecommendationCache) *Requirements {
	return &Requirements{requirements: requirements, cache: cache}
}

func (u *Requirements) List(ctx context.Context, ownerID uuid.UUID) ([]requirement.JobRequirement, error) {
	if ownerID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.requirements.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Requirements) Create(ctx context.Context, ownerID uuid.UUID, in CreateRequirementInput) (requirement.JobRequirement, error) {
	if ownerID == uuid.Nil {
		return requirement.JobRequirement{}, ErrUnauthorized
	}

	title := strings.TrimSpace(in.Title)
	skills := cleanSkills(in.Skills)
	if title == "" || len(skills) == 0 {
		return requirement.JobRequirement{}, ErrInvalidInput
	}

	created, err := u.requirements.Create(ctx, requirement.JobRequirement{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Title:   title,
		Skills:  skills,
	})
	if err != nil {
		return requirement.JobRequirement{}, ErrInternal
	}

	// New requirements change what a position query resolves to.
	if u.cache != nil {
		_ = u.cache.DeleteByPattern(ctx, recommendationKeyPattern(ownerID))
	}

	return created, nil
}

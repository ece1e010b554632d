package repository

import (
	"context"
	"database/sql"
	"errors"

	"hireflow/internal/database"
	"hireflow/internal/domain/requirement"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrRequirementNotFound = errors.New("job requirement not found")
)

type RequirementRepository interface {
	Create(ctx context.Context, r requirement.JobRequirement) (requirement.JobRequirement, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]requirement.JobRequirement, error)
	// FindByTitle resolves a free-text position name to at most one
	// requirement via substring title match, newest first.
	FindByTitle(ctx context.Context, ownerID uuid.UUID, query string) (requirement.JobRequirement, error)
}

type PostgresRequirementRepository struct {
	db database.DB
}

func NewPostgresRequirementRepository(db database.DB) *PostgresRequirementRepository {
	return &PostgresRequirementRepository{db: db}
}

func (r *PostgresRequirementRepository) Create(ctx context.Context, req requirement.JobRequirement) (requirement.JobRequirement, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_requirements (id, owner_id, title, skills)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, owner_id, title, skills, created_at`,
		req.ID, req.OwnerID, req.Title, req.Skills,
	)
	return scanRequirement(row)
}

func (r *PostgresRequirementRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]requirement.JobRequirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, title, skills, created_at
		 FROM job_requirements
		 WHERE owner_id = $1
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]requirement.JobRequirement, 0)
	for rows.Next() {
		var req requirement.JobRequirement
		if err := rows.Scan(&req.ID, &req.OwnerID, &req.Title, &req.Skills, &req.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRequirementRepository) FindByTitle(ctx context.Context, ownerID uuid.UUID, query string) (requirement.JobRequirement, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, owner_id, title, skills, created_at
		 FROM job_requirements
		 WHERE owner_id = $1 AND title ILIKE '%' || $2 || '%'
		 ORDER BY created_at DESC
		 LIMIT 1`,
		ownerID, query,
	)
	return scanRequirement(row)
}

func scanRequirement(row database.Row) (requirement.JobRequirement, error) {
	var req requirement.JobRequirement
	if err := row.Scan(&req.ID, &req.OwnerID, &req.Title, &req.Skills, &req.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return requirement.JobRequirement{}, ErrRequirementNotFound
		}
		return requirement.JobRequirement{}, err
	}
	return req, nil
}

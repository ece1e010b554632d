package repository

import (
	"context"
	"database/sql"
	"errors"

	"hireflow/internal/database"
	"hireflow/internal/domain/candidate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
)

type CandidateFilter struct {
	Status   string
	Position string
	Search   string
	Limit    int
	Offset   int
}

type CandidateRepository interface {
	Create(ctx context.Context, c candidate.Candidate) (candidate.Candidate, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (candidate.Candidate, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, f CandidateFilter) ([]candidate.Candidate, error)
	ListWithSkillsByOwner(ctx context.Context, ownerID uuid.UUID) ([]candidate.Candidate, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status candidate.Status) (candidate.Candidate, error)
	SetResumeKey(ctx context.Context, ownerID, id uuid.UUID, key string) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

const candidateColumns = `id, owner_id, name, COALESCE(applied_position, ''), status, skills, matching_score, COALESCE(resume_key, ''), created_at, updated_at`

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) Create(ctx context.Context, c candidate.Candidate) (candidate.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO candidates (id, owner_id, name, applied_position, status, skills, matching_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+candidateColumns,
		c.ID, c.OwnerID, c.Name, c.AppliedPosition, c.Status, c.Skills, c.MatchingScore,
	)
	return scanCandidate(row)
}

func (r *PostgresCandidateRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (candidate.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	return scanCandidate(row)
}

func (r *PostgresCandidateRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, f CandidateFilter) ([]candidate.Candidate, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates
		 WHERE owner_id = $1
		   AND ($2 = '' OR status = $2)
		   AND ($3 = '' OR applied_position ILIKE '%' || $3 || '%')
		   AND ($4 = '' OR name ILIKE '%' || $4 || '%')
		 ORDER BY created_at DESC
		 LIMIT $5 OFFSET $6`,
		ownerID, f.Status, f.Position, f.Search, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (r *PostgresCandidateRepository) ListWithSkillsByOwner(ctx context.Context, ownerID uuid.UUID) ([]candidate.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates
		 WHERE owner_id = $1 AND skills IS NOT NULL AND cardinality(skills) > 0
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (r *PostgresCandidateRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates WHERE owner_id = $1`, ownerID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresCandidateRepository) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status candidate.Status) (candidate.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE candidates
		 SET status = $1, updated_at = now()
		 WHERE id = $2 AND owner_id = $3
		 RETURNING `+candidateColumns,
		status, id, ownerID,
	)
	return scanCandidate(row)
}

func (r *PostgresCandidateRepository) SetResumeKey(ctx context.Context, ownerID, id uuid.UUID, key string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE candidates SET resume_key = $1, updated_at = now() WHERE id = $2 AND owner_id = $3`,
		key, id, ownerID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *PostgresCandidateRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM candidates WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func scanCandidate(row database.Row) (candidate.Candidate, error) {
	var c candidate.Candidate
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.AppliedPosition, &c.Status,
		&c.Skills, &c.MatchingScore, &c.ResumeKey, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, ErrCandidateNotFound
		}
		return candidate.Candidate{}, err
	}
	return c, nil
}

func scanCandidates(rows database.Rows) ([]candidate.Candidate, error) {
	out := make([]candidate.Candidate, 0)
	for rows.Next() {
		var c candidate.Candidate
		err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Name, &c.AppliedPosition, &c.Status,
			&c.Skills, &c.MatchingScore, &c.ResumeKey, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

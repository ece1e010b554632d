package candidate

import (
	"time"

	"github.com/google/uuid"
)

// Status is the fixed pipeline stage enumeration.
type Status string

const (
	StatusNew          Status = "New"
	StatusScreening    Status = "Screening"
	StatusInterviewing Status = "Interviewing"
	StatusHired        Status = "Hired"
	StatusRejected     Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusScreening, StatusInterviewing, StatusHired, StatusRejected:
		return true
	}
	return false
}

// Candidate is a tracked applicant. MatchingScore is computed once at
// creation time against the requirement that best matched the applied
// position; it is never recomputed when skills change, so it stays nil only
// for rows predating score computation.
type Candidate struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Name            string
	AppliedPosition string
	Status          Status
	Skills          []string
	MatchingScore   *int
	ResumeKey       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasSkills reports whether the candidate supplied any skill labels;
// recommendation ranking only considers candidates that did.
func (c Candidate) HasSkills() bool {
	return len(c.Skills) > 0
}

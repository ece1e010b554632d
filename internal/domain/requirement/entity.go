package requirement

import (
	"time"

	"github.com/google/uuid"
)

// JobRequirement is a posting's required-skill set. Skills must be
// non-empty for scoring against it to be meaningful.
type JobRequirement struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	Skills    []string
	CreatedAt time.Time
}

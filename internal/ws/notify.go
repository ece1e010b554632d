package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type CandidatesUpdatedEvent struct {
	Type        string    `json:"type"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Timestamp   string    `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyCandidatesUpdated broadcasts a pipeline change to all connected
// clients. A nil default hub makes this a no-op.
func NotifyCandidatesUpdated(eventType string, candidateID uuid.UUID) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if eventType == "" {
		return
	}

	evt := CandidatesUpdatedEvent{
		Type:        eventType,
		CandidateID: candidateID,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}

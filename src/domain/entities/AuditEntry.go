package entities

import (
	"encoding/json"
	"time"
)

// Linha persistida pelo audit-consumer a partir dos eventos de domínio.
type AuditEntry struct {
	ID         int64           `json:"id"`
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	MemberID   int64           `json:"member_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

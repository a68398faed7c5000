package entities

import (
	"time"
)

type EventType string

const (
	EventBirth     EventType = "birth"
	EventMarriage  EventType = "marriage"
	EventEducation EventType = "education"
	EventCareer    EventType = "career"
	EventDeath     EventType = "death"
	EventOther     EventType = "other"
)

func (et EventType) IsValid() bool {
	switch et {
	case EventBirth, EventMarriage, EventEducation, EventCareer, EventDeath, EventOther:
		return true
	}
	return false
}

// Anotação datada na linha do tempo de um membro. Fora do motor de
// consistência: a única regra é a FK para o membro (cascade no delete).
type TimelineEvent struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"member_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	EventDate   time.Time `json:"event_date"`
	EventType   EventType `json:"event_type"`
	Location    *string   `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

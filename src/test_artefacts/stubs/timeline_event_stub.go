package stubs

import (
	"time"

	"familygraph/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type TimelineEventStub struct {
	event entities.TimelineEvent
}

func NewTimelineEventStub() TimelineEventStub {
	location := gofakeit.City()

	event := entities.TimelineEvent{
		ID:        gofakeit.Int64(),
		MemberID:  gofakeit.Int64(),
		Title:     gofakeit.Sentence(3),
		EventDate: gofakeit.Date().Truncate(24 * time.Hour),
		EventType: entities.EventOther,
		Location:  &location,
		CreatedAt: time.Now().UTC(),
	}

	return TimelineEventStub{event: event}
}

func (ts TimelineEventStub) WithMemberID(memberID int64) TimelineEventStub {
	ts.event.MemberID = memberID
	return ts
}

func (ts TimelineEventStub) WithEventType(eventType entities.EventType) TimelineEventStub {
	ts.event.EventType = eventType
	return ts
}

func (ts TimelineEventStub) WithEventDate(eventDate time.Time) TimelineEventStub {
	ts.event.EventDate = eventDate
	return ts
}

func (ts TimelineEventStub) Get() entities.TimelineEvent {
	return ts.event
}

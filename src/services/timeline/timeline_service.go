package timeline

import (
	"context"
	"time"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/repositories"
)

// TimelineService cuida das anotações datadas de um membro. Não há regra
// de consistência aqui além da FK; a cascata fica com o DeleteMember.
type TimelineService struct {
	timelineRepository *repositories.TimelineRepository
}

func NewTimelineService(timelineRepository *repositories.TimelineRepository) *TimelineService {
	return &TimelineService{timelineRepository: timelineRepository}
}

func (s *TimelineService) AddEvent(ctx context.Context, memberID int64, title string, description *string, eventDate time.Time, eventType entities.EventType, location *string) (*entities.TimelineEvent, error) {
	if memberID <= 0 {
		return nil, &domain.ValidationError{Field: "memberId", Message: "must be a positive integer"}
	}
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Message: "is required"}
	}
	if !eventType.IsValid() {
		return nil, &domain.ValidationError{Field: "eventType", Message: "must be one of birth, marriage, education, career, death, other"}
	}
	if eventDate.IsZero() {
		return nil, &domain.ValidationError{Field: "eventDate", Message: "is required"}
	}

	event := &entities.TimelineEvent{
		MemberID:    memberID,
		Title:       title,
		Description: description,
		EventDate:   eventDate,
		EventType:   eventType,
		Location:    location,
	}

	if err := s.timelineRepository.InsertEvent(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *TimelineService) ListEvents(ctx context.Context, memberID int64) ([]entities.TimelineEvent, error) {
	if memberID <= 0 {
		return nil, &domain.ValidationError{Field: "memberId", Message: "must be a positive integer"}
	}

	return s.timelineRepository.ListEventsByMember(ctx, memberID)
}

func (s *TimelineService) DeleteEvent(ctx context.Context, eventID int64) error {
	if eventID <= 0 {
		return &domain.ValidationError{Field: "eventId", Message: "must be a positive integer"}
	}

	return s.timelineRepository.DeleteEvent(ctx, eventID)
}

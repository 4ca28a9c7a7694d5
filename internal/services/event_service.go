package services

import (
	"context"

	"nutrition-admin/internal/domain"
	"nutrition-admin/internal/repository"
)

type EventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// List returns a user's funnel events, optionally limited to one event type.
// A non-empty type is matched exactly, whitespace included.
func (s *EventService) List(ctx context.Context, chatID, eventType string) ([]domain.UserEvent, error) {
	events, err := s.repo.ListByChat(ctx, chatID, eventType)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.UserEvent{}
	}
	return events, nil
}

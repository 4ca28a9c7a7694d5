package services

import (
	"context"

	"nutrition-admin/internal/domain"
	"nutrition-admin/internal/repository"
)

type ChatService struct {
	repo repository.ChatRepository
}

func NewChatService(repo repository.ChatRepository) *ChatService {
	return &ChatService{repo: repo}
}

// History returns the normalized transcript of a session, oldest first.
// An unknown session yields an empty slice.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	messages, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return messages, nil
}

package repository

import (
	"context"
	"time"

	"nutrition-admin/internal/domain"
)

type PostgresChatRepository struct {
	db DBTX
}

func NewChatRepository(db DBTX) ChatRepository {
	return &PostgresChatRepository{db: db}
}

// ListBySession returns the session's turns oldest first. n8n keys sessions by
// the Telegram chat id rendered as text, so sessionID is bound as a string.
func (r *PostgresChatRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	query := `SELECT id, session_id, message
FROM n8n_chat_histories
WHERE session_id = $1
ORDER BY id ASC`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, wrapQueryErr("chat.list", start, err)
	}
	defer rows.Close()

	messages := make([]domain.ChatMessage, 0)
	for rows.Next() {
		var (
			id      int64
			session string
			raw     []byte
		)
		if err := rows.Scan(&id, &session, &raw); err != nil {
			return nil, wrapQueryErr("chat.list", start, err)
		}
		messages = append(messages, domain.NormalizeChatMessage(id, raw))
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("chat.list", start, err)
	}
	return messages, wrapQueryErr("chat.list", start, nil)
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"nutrition-admin/internal/domain"
)

type PostgresEventRepository struct {
	db DBTX
}

func NewEventRepository(db DBTX) EventRepository {
	return &PostgresEventRepository{db: db}
}

// ListByChat returns a user's events oldest first, optionally narrowed to one event_type.
func (r *PostgresEventRepository) ListByChat(ctx context.Context, chatID, eventType string) ([]domain.UserEvent, error) {
	query := `SELECT id, chat_id, event_type, event_data, language, workflow_name, created_at
FROM user_events
WHERE chat_id = $1`
	args := []interface{}{chatID}

	if eventType != "" {
		args = append(args, eventType)
		query += ` AND event_type = ` + placeholder(len(args))
	}
	query += `
ORDER BY created_at ASC`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryErr("events.list", start, err)
	}
	defer rows.Close()

	events := make([]domain.UserEvent, 0)
	for rows.Next() {
		var (
			e            domain.UserEvent
			eventType    sql.NullString
			data         []byte
			language     sql.NullString
			workflowName sql.NullString
			createdAt    sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.ChatID, &eventType, &data, &language, &workflowName, &createdAt); err != nil {
			return nil, wrapQueryErr("events.list", start, err)
		}
		if data != nil {
			e.EventData = json.RawMessage(data)
		}
		e.EventType = stringPtr(eventType)
		e.Language = stringPtr(language)
		e.WorkflowName = stringPtr(workflowName)
		e.CreatedAt = timePtr(createdAt)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("events.list", start, err)
	}
	return events, wrapQueryErr("events.list", start, nil)
}

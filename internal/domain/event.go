package domain

import (
	"encoding/json"
	"time"
)

// UserEvent is a raw user_events row: button presses and funnel transitions
// recorded by the bot workflows. Every column but id and chat_id is nullable.
type UserEvent struct {
	ID           int64           `json:"id"`
	ChatID       int64           `json:"chat_id"`
	EventType    *string         `json:"event_type"`
	EventData    json.RawMessage `json:"event_data"`
	Language     *string         `json:"language"`
	WorkflowName *string         `json:"workflow_name"`
	CreatedAt    *time.Time      `json:"created_at"`
}

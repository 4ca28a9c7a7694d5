package domain

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

const UnknownMessageType = "unknown"

var (
	emptyContent   = json.RawMessage(`""`)
	emptyToolCalls = json.RawMessage("[]")
)

// ChatMessage is one turn of an n8n chat history, flattened for the dashboard.
// Content is usually a JSON string; multimodal or numeric content is passed
// through as the JSON value it was stored as.
type ChatMessage struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	ToolCalls json.RawMessage `json:"tool_calls"`
}

// NormalizeChatMessage maps the loosely typed message document onto ChatMessage.
// Missing, null, false, zero and empty-string fields fall back to their defaults.
// A payload that is not a JSON object yields an all-default message.
func NormalizeChatMessage(id int64, raw []byte) ChatMessage {
	msg := ChatMessage{
		ID:        id,
		Type:      UnknownMessageType,
		Content:   emptyContent,
		ToolCalls: emptyToolCalls,
	}
	if !gjson.ValidBytes(raw) {
		return msg
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return msg
	}

	if t := doc.Get("type"); truthy(t) {
		msg.Type = t.String()
	}

	if c := doc.Get("content"); truthy(c) {
		msg.Content = json.RawMessage(c.Raw)
	}

	if tc := doc.Get("tool_calls"); truthy(tc) {
		msg.ToolCalls = json.RawMessage(tc.Raw)
	}

	return msg
}

func truthy(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	}
	return true
}

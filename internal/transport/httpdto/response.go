package httpdto

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewHealthResponse stamps the response in UTC with millisecond precision.
func NewHealthResponse(now time.Time) HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// Fixed client-facing messages. Driver errors are logged, never returned.
const (
	MsgUnauthorizedHeader = "Unauthorized: Missing or invalid authorization header"
	MsgInvalidInitData    = "Invalid init data"
	MsgInvalidToken       = "Invalid service token"
	MsgRateLimited        = "Too many requests"
	MsgInternal           = "Internal server error"
	MsgNotFound           = "Not found"
	MsgUserNotFound       = "User not found"
	MsgFetchUsers         = "Failed to fetch users"
	MsgFetchRecentUsers   = "Failed to fetch recent users"
	MsgFetchUser          = "Failed to fetch user"
	MsgFetchChatHistory   = "Failed to fetch chat history"
	MsgFetchUserEvents    = "Failed to fetch user events"
	MsgFetchStats         = "Failed to fetch stats"
	MsgNotReady           = "Service unavailable"
)

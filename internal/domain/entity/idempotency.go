package entity

import "time"

// IdempotencyKey stores the outcome of a processed request so a retried
// payment replays the first response instead of settling twice.
type IdempotencyKey struct {
	Key          string    `json:"key"`
	TerminalID   string    `json:"terminal_id"`
	Endpoint     string    `json:"endpoint"`
	ResponseCode int       `json:"response_code"`
	ResponseBody string    `json:"response_body"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

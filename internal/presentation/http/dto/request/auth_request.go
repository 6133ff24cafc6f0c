package request

// LoginRequest exchanges the staff PIN for a terminal token
type LoginRequest struct {
	Pin        string `json:"pin" binding:"required,min=4,max=12"`
	TerminalID string `json:"terminal_id" binding:"omitempty,max=64"`
}

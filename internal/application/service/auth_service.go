package service

import (
	"strings"
	"time"

	"github.com/tewankitchen/pos-api/pkg/apperror"
	"github.com/tewankitchen/pos-api/pkg/utils"
)

// DefaultTerminalID is used for every request while login is disabled.
const DefaultTerminalID = "default"

// AuthService issues terminal tokens in exchange for the staff PIN.
type AuthService struct {
	pinHash    string
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service. An empty pinHash disables login.
func NewAuthService(pinHash string, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{pinHash: pinHash, jwtManager: jwtManager}
}

// LoginResult is returned on a successful login
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	TerminalID  string    `json:"terminal_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Enabled reports whether routes require a terminal token.
func (s *AuthService) Enabled() bool {
	return s.pinHash != ""
}

// Login checks pin and issues a token bound to terminalID.
func (s *AuthService) Login(pin, terminalID string) (*LoginResult, error) {
	if !s.Enabled() {
		return nil, apperror.ErrAuthDisabled
	}
	if !utils.CheckPin(s.pinHash, pin) {
		return nil, apperror.ErrInvalidPin
	}

	terminalID = strings.TrimSpace(terminalID)
	if terminalID == "" {
		terminalID = DefaultTerminalID
	}
	token, exp, err := s.jwtManager.GenerateAccessToken(terminalID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, TokenType: "Bearer", TerminalID: terminalID, ExpiresAt: exp}, nil
}

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tewankitchen/pos-api/pkg/apperror"
	"github.com/tewankitchen/pos-api/pkg/utils"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPin("2468")
	require.NoError(t, err)
	jwtManager := utils.NewJWTManager("secret", time.Hour)
	svc := NewAuthService(hash, jwtManager)
	require.True(t, svc.Enabled())

	_, err = svc.Login("0000", "till-1")
	assert.ErrorIs(t, err, apperror.ErrInvalidPin)

	res, err := svc.Login("2468", " ")
	require.NoError(t, err)
	assert.Equal(t, DefaultTerminalID, res.TerminalID)

	claims, err := jwtManager.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, DefaultTerminalID, claims.TerminalID)
}

func TestAuthService_Disabled(t *testing.T) {
	svc := NewAuthService("", utils.NewJWTManager("secret", time.Hour))
	assert.False(t, svc.Enabled())
	_, err := svc.Login("2468", "till-1")
	assert.ErrorIs(t, err, apperror.ErrAuthDisabled)
}

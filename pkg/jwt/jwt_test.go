package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Minute)

	token, err := m.GenerateAccessToken("4b1f0e0c-6b58-4a57-8d0c-4a1f4f2b3c11", "a@shop.in", "customer")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "4b1f0e0c-6b58-4a57-8d0c-4a1f4f2b3c11", claims.UserID)
	assert.Equal(t, "customer", claims.Role)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	token, err := NewManager("one", time.Minute).GenerateAccessToken("u", "e", "admin")
	require.NoError(t, err)

	_, err = NewManager("two", time.Minute).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Nanosecond)
	token, err := m.GenerateAccessToken("u", "e", "customer")
	require.NoError(t, err)

	time.Sleep(2 * time.Second)
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

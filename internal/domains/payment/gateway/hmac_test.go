package gateway

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHMACVerifier(t *testing.T) {
	v := NewHMACVerifier("whsec_test")
	body := []byte(`{"order_id":"3f1c","status":"success"}`)
	sig := v.Sign(body)

	assert.Len(t, sig, 64)
	assert.True(t, v.Verify(body, sig))
	assert.True(t, v.Verify(body, strings.ToUpper(sig)), "hex is case-insensitive")

	assert.False(t, v.Verify([]byte(`{"order_id":"3f1c","status":"failed"}`), sig))
	assert.False(t, v.Verify(body, ""))
	assert.False(t, v.Verify(body, "not-hex"))
	assert.False(t, NewHMACVerifier("other").Verify(body, sig))
}

func TestHMACVerifier_EmptySecretRejectsEverything(t *testing.T) {
	v := NewHMACVerifier("")
	body := []byte(`{}`)

	assert.False(t, v.Verify(body, v.Sign(body)))
}

package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// =====================================================
// HMAC-SHA256 SIGNATURE
// =====================================================

// SignatureHeader chứa hex(HMAC-SHA256(raw body, secret))
const SignatureHeader = "X-Payment-Signature"

// Verifier kiểm tra chữ ký webhook của payment gateway
type Verifier interface {
	Verify(body []byte, signature string) bool
}

type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

// Sign: hex lowercase, dùng cho test và tool gửi webhook giả
func (v *HMACVerifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify so sánh constant-time. Secret rỗng thì từ chối mọi request.
func (v *HMACVerifier) Verify(body []byte, signature string) bool {
	if len(v.secret) == 0 || signature == "" {
		return false
	}

	received, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return hmac.Equal(received, mac.Sum(nil))
}

package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// Signer computes and checks HMAC-SHA512 webhook signatures with the
// gateway secret.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the hex encoded signature of payload.
func (s *Signer) Sign(payload []byte) string {
	h := hmac.New(sha512.New, s.secret)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature reports whether signature matches payload. The compare
// is constant time.
func (s *Signer) VerifySignature(payload []byte, signature string) bool {
	if len(s.secret) == 0 || signature == "" {
		return false
	}
	given, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	h := hmac.New(sha512.New, s.secret)
	h.Write(payload)
	return hmac.Equal(given, h.Sum(nil))
}

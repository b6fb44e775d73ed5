package webhook

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// VerifySignature checks the x-paystack-signature header against an
// HMAC-SHA512 of the raw request bytes. It fails closed when the header or
// the configured secret is empty.
//
// The payload must be the untouched request body. Hashing a re-serialized
// form of the parsed JSON breaks on key reordering and whitespace, because
// the provider signs the exact bytes it sent.
func VerifySignature(payload []byte, signatureHeader, secret string) bool {
	sig := strings.TrimSpace(signatureHeader)
	sec := strings.TrimSpace(secret)
	if sig == "" || sec == "" {
		return false
	}

	decodedSig, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, []byte(sec))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decodedSig)
}

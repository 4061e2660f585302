package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// randomHex returns n random bytes hex-encoded. crypto/rand.Read never fails.
func randomHex(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// GenerateTicketCode generates a promo ticket code: fixed prefix plus 8
// random uppercase hex characters. Example: WIN-3FA9C01B. A client receives
// exactly one; it is never regenerated.
func GenerateTicketCode() string {
	return fmt.Sprintf("WIN-%s", strings.ToUpper(randomHex(4)))
}

// GenerateSessionToken generates an opaque bearer token for account sessions.
func GenerateSessionToken() string {
	return randomHex(16)
}

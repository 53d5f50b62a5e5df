package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// InviteCodeLength is the symbol count of generated invite codes.
const InviteCodeLength = 12

// inviteAlphabet excludes ambiguous symbols (0/O, 1/I/L, U/V). 31 symbols
// over 12 positions gives ~59 bits of entropy.
const inviteAlphabet = "23456789ABCDEFGHJKMNPQRSTWXYZab"

// GenerateInviteCode creates a high-entropy opaque invite code of
// InviteCodeLength symbols using crypto/rand.
func GenerateInviteCode() (string, error) {
	code := make([]byte, InviteCodeLength)

	// Rejection sampling keeps the symbol distribution uniform.
	buf := make([]byte, 1)
	limit := byte(256 - 256%len(inviteAlphabet))
	for i := 0; i < len(code); {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("cryptox: failed to generate invite code: %w", err)
		}
		if buf[0] >= limit {
			continue
		}
		code[i] = inviteAlphabet[int(buf[0])%len(inviteAlphabet)]
		i++
	}
	return string(code), nil
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a
// token, base64url encoded. Stores hold fingerprints so the raw code
// value never touches disk.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

package id

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

// NewID32 returns a random 32-character lowercase hex string, the public
// id format shared by groups, members, and every ledger record.
func NewID32() string {
	b := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err) // crypto/rand does not fail on supported platforms
	}
	return hex.EncodeToString(b)
}

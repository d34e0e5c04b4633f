package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenKeyLength is the length of an API token key in hex characters.
const TokenKeyLength = 40

// GenerateKey returns a random 40-character hex key for an API token.
func GenerateKey() (string, error) {
	buf := make([]byte, TokenKeyLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

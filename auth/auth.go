// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidToken    = errors.New("invalid token format")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminKey creates an HMAC-based admin key for a round.
// Deterministic from (roundID, salt), so the key never needs to be stored.
func GenerateAdminKey(roundID, salt string) string {
	return trimmedHMAC(roundID, salt)
}

// ValidateAdminKey checks if the provided admin key is valid for the round
func ValidateAdminKey(roundID, adminKey, salt string) error {
	expected := GenerateAdminKey(roundID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateVoterToken creates a random secure token for a voter.
// The token identifies a voter within one round and allows vote updates.
func GenerateVoterToken() (string, error) {
	b := make([]byte, 24) // 192 bits of entropy
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate voter token: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// GenerateShareSlug creates a short, deterministic URL slug for a round.
// HMAC for determinism, base62 so the slug survives copy-paste into chat.
func GenerateShareSlug(roundID, salt string) string {
	sum := saltedSum(roundID, salt)
	return base62Encode(sum[:8])
}

// HashIP creates a salted one-way hash of an IP address for privacy.
// Returns the first 16 hex chars (64 bits), enough for deduplication.
func HashIP(ip, salt string) string {
	sum := saltedSum(ip, salt)
	return hex.EncodeToString(sum[:8])
}

func saltedSum(msg, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(msg))
	return h.Sum(nil)
}

func trimmedHMAC(msg, salt string) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(saltedSum(msg, salt)), "=")
}

// base62Encode converts up to 8 bytes into base62 (0-9, a-z, A-Z),
// producing URL-friendly slugs without special characters.
func base62Encode(data []byte) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}
	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // ceil(64 / log2(62))
	for num > 0 {
		result = append(result, alphabet[num%62])
		num /= 62
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return string(result)
}

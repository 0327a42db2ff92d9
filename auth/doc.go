// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(roundID, salt)
	err := auth.ValidateAdminKey(roundID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same round ID and salt always produce the same key. This allows validation
without storing the key in the database.

# Voter Tokens

Voter tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateVoterToken()

Tokens are URL-safe base64 encoded and authenticate vote submissions. Each
voter gets a unique token when claiming a username in a round.

# Share Slugs

Share slugs create URL-friendly identifiers for published rounds:

	slug := auth.GenerateShareSlug(roundID, salt)

Slugs are base62 encoded (alphanumeric only) for easy sharing. Like admin
keys, they're deterministic from the round ID and salt.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

Recipe and vote rows use UUIDs (github.com/google/uuid) instead; GenerateID
is kept for round IDs, which predate the UUID convention.

# IP Hashing

For privacy-preserving fraud detection:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth

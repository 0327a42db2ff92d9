// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values resolve in order: CLI flags, a local .env file (via joho/godotenv),
then process environment variables.

# Config Fields

  - Port: Server listen port (default: 4318)
  - DatabaseURL: Connection string or sqlite file path (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - SlugSalt: Secret for share slug generation (required)
  - BaseURL: Public base URL used when building share links

# CLI Flags

	-p           Server port
	-d           Database URL or sqlite path
	-t           Database type
	--base-url   Public base URL
	--admin-salt Admin key salt
	--slug-salt  Share slug salt

# Environment Variables

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	BASE_URL       → --base-url
	ADMIN_KEY_SALT → --admin-salt
	SLUG_SALT      → --slug-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - ADMIN_KEY_SALT must be provided
  - SLUG_SALT must be provided
*/
package cliparse

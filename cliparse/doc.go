// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - VoterSecret: Secret for voter token HMAC (required)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	--voter-secret Voter token secret

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	VOTER_ID_SECRET → --voter-secret

CLI flags take precedence over environment variables. LoadEnv reads a
.env file into the environment before parsing:

	cliparse.LoadEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - VOTER_ID_SECRET must be provided
*/
package cliparse

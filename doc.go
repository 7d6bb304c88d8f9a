// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the QuickPoll API server.

QuickPoll lets anyone create a poll with a question and a set of options,
share a link, and collect votes. Results are live vote counts and
percentages recomputed on every read.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... DATABASE_TYPE=postgres go run main.go

Or with flags:

	go run main.go -p 3318 -t sqlite -d "file:quickpoll.db"

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - VOTER_ID_SECRET (--voter-secret): secret for voter token signatures

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)

A .env file in the working directory is loaded if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, results, standings)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - identity: Voter token generation and verification
  - db: Schema creation and store operations
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

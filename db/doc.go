// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database access: schema creation and the store
operations the handlers build on.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Postgres (lib/pq) is the production target; SQLite (modernc.org/sqlite)
serves development and tests.

# Schema Creation

CreateSchema initializes all required tables for the given dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll: question and allowMultipleAnswers flag
  - option: voting options per poll
  - vote: one row per recorded selection

# Relationships

	poll 1──* option
	poll 1──* vote
	option 1──* vote

The poll reference on vote is denormalized for query convenience and
always agrees with the option's owning poll. All foreign keys use
ON DELETE CASCADE.

# Vote Uniqueness

The vote table carries UNIQUE (option_id, voter_id). This store-level
index is the sole duplicate-vote mechanism: a conflicting insert is
translated to ErrDuplicateVote and never retried. Vote counts are never
stored; every read recomputes them from the live vote set.

# Store Operations

	CreatePoll(conn, question, options, allowMultiple)  // atomic poll + options
	GetPoll(conn, pollID)                               // options, votes, counts
	ListPolls(conn)                                     // counts only
	CreateVote(conn, pollID, optionID, voterID, name)   // one vote
	CreateVotes(conn, pollID, optionIDs, voterID, name) // atomic batch

Failures surface as ErrPollNotFound, ErrOptionNotFound, ErrDuplicateVote
(or DuplicateVoteError for batches), or a wrapped driver error.
*/
package db

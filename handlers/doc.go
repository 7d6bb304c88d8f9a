// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the QuickPoll API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - PollHandler: Poll creation and listing
  - VotingHandler: Single and batch vote submission
  - ResultsHandler: Poll retrieval and standings

Handlers are created via constructor functions that accept *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Poll Lifecycle

Polls are created fully formed and never edited:

	POST /api/polls      → CreatePoll (question + at least 2 options)
	GET  /api/polls      → ListPolls (counts only)
	GET  /api/polls/{id} → GetPoll (counts + voter names)

# Voting Flow

Voters submit votes against a poll's options:

	POST /api/polls/{id}/votes       → SubmitVote (one option)
	POST /api/polls/{id}/votes/batch → SubmitVotes (atomic multi-select)

The display name is optional free text, defaulting to "Anonymous". The
duplicate-vote check keys on the opaque voter identity (qp_voter cookie
or X-Voter-ID header), minted on first vote.

# Standings

Current standings are recomputed from the vote table on demand:

	GET /api/polls/{id}/standings → GetStandings

standings.go holds the pure aggregation core: ranked counts, percentages
to one decimal place, and the leading option (nil when the lead is
shared).
*/
package handlers

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to match the web client.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options, allowMultipleAnswers
  - VoteRequest: optionId, voterName
  - BatchVoteRequest: optionIds, voterName

# Response Types

Types for JSON responses:

  - BatchVoteResponse: votes
  - StandingsResponse: pollId, totalVotes, standings, leading
  - ErrorResponse: error

# Domain Types

  - Poll: question, allowMultipleAnswers flag, and its options
  - Option: one selectable choice; VoteCount is computed on every read,
    never stored
  - Vote: one recorded selection with an optional display name
  - OptionStanding: vote count and percentage for one option

# Constants

Database types:

	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"

Display name fallback:

	DefaultVoterName = "Anonymous"
*/
package models

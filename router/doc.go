// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the QuickPoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Poll management:

	POST /api/polls - Create poll
	GET  /api/polls - List polls with vote counts

Results:

	GET /api/polls/{id}           - Poll with votes and voter names
	GET /api/polls/{id}/standings - Ranked counts, percentages, leader

Voting:

	POST /api/polls/{id}/votes       - Submit one vote
	POST /api/polls/{id}/votes/batch - Submit a multi-select batch

# Handler Initialization

The router creates handler instances with dependency injection:

	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickpoll/cliparse"
	"github.com/danielhkuo/quickpoll/db"
	"github.com/danielhkuo/quickpoll/identity"
	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// voterName trims the submitted display name, falling back to the
// anonymous default.
func voterName(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return models.DefaultVoterName
}

// SubmitVote handles POST /api/polls/:id/votes
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parsePollID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll ID")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.OptionID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option ID")
		return
	}

	voterID := identity.EnsureVoter(w, r, h.cfg.VoterSecret)

	vote, err := db.CreateVote(h.db, pollID, req.OptionID, voterID, voterName(req.VoterName))
	if err != nil {
		switch {
		case errors.Is(err, db.ErrPollNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		case errors.Is(err, db.ErrOptionNotFound):
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option ID")
		case errors.Is(err, db.ErrDuplicateVote):
			middleware.ErrorResponse(w, http.StatusBadRequest, "You have already voted for this option in this poll.")
		default:
			slog.Error("failed to submit vote", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote. Please try again.")
		}
		return
	}

	slog.Info("vote recorded", "poll_id", pollID, "option_id", vote.OptionID)

	middleware.JSONResponse(w, http.StatusOK, vote)
}

// SubmitVotes handles POST /api/polls/:id/votes/batch
// Every selected option is recorded in one transaction; a duplicate
// selection fails the whole batch.
func (h *VotingHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	pollID, err := parsePollID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll ID")
		return
	}

	var req models.BatchVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.OptionIDs) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option ID")
		return
	}
	for _, optionID := range req.OptionIDs {
		if optionID <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option ID")
			return
		}
	}

	voterID := identity.EnsureVoter(w, r, h.cfg.VoterSecret)

	votes, err := db.CreateVotes(h.db, pollID, req.OptionIDs, voterID, voterName(req.VoterName))
	if err != nil {
		switch {
		case errors.Is(err, db.ErrPollNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		case errors.Is(err, db.ErrOptionNotFound):
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option ID")
		case errors.Is(err, db.ErrSingleAnswerPoll):
			middleware.ErrorResponse(w, http.StatusBadRequest, "This poll does not allow multiple answers.")
		case errors.Is(err, db.ErrDuplicateVote):
			middleware.ErrorResponse(w, http.StatusBadRequest, "You have already voted for this option in this poll.")
		default:
			slog.Error("failed to submit votes", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote. Please try again.")
		}
		return
	}

	slog.Info("votes recorded", "poll_id", pollID, "count", len(votes))

	middleware.JSONResponse(w, http.StatusOK, models.BatchVoteResponse{Votes: votes})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickpoll/models"
)

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrDuplicateVote    = errors.New("duplicate vote")
	ErrSingleAnswerPoll = errors.New("poll does not allow multiple answers")
)

// DuplicateVoteError reports which selection of a batch hit the vote
// uniqueness constraint. The whole batch is rolled back.
type DuplicateVoteError struct {
	OptionID int64
}

func (e *DuplicateVoteError) Error() string {
	return fmt.Sprintf("duplicate vote for option %d", e.OptionID)
}

func (e *DuplicateVoteError) Unwrap() error { return ErrDuplicateVote }

// Open connects to the configured database. SQLite connections are
// limited to a single writer to avoid SQLITE_BUSY under concurrent
// handlers.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case models.DBTypePostgres:
		return sql.Open("postgres", url)
	case models.DBTypeSQLite:
		conn, err := sql.Open("sqlite", url)
		if err != nil {
			return nil, err
		}
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, err
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

// CreatePoll persists a poll and its options in one transaction.
// A partial poll is never visible to readers.
func CreatePoll(dbh *sql.DB, question string, options []string, allowMultiple bool) (*models.Poll, error) {
	tx, err := dbh.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := time.Now().UTC()

	var poll models.Poll
	err = tx.QueryRow(`
		INSERT INTO poll (question, allow_multiple_answers, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, question, allowMultiple, createdAt).Scan(&poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	poll.Question = question
	poll.AllowMultipleAnswers = allowMultiple
	poll.CreatedAt = createdAt
	poll.Options = make([]models.Option, 0, len(options))

	for _, text := range options {
		var opt models.Option
		err = tx.QueryRow(`
			INSERT INTO option (poll_id, text)
			VALUES ($1, $2)
			RETURNING id
		`, poll.ID, text).Scan(&opt.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert option: %w", err)
		}
		opt.PollID = poll.ID
		opt.Text = text
		opt.Votes = []models.Vote{}
		poll.Options = append(poll.Options, opt)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit poll: %w", err)
	}

	return &poll, nil
}

// GetPoll returns a poll with its options in insertion order, each
// annotated with its votes and a vote count recomputed from the live
// vote set.
func GetPoll(dbh *sql.DB, pollID int64) (*models.Poll, error) {
	var poll models.Poll
	err := dbh.QueryRow(`
		SELECT id, question, allow_multiple_answers, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Question, &poll.AllowMultipleAnswers, &poll.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	rows, err := dbh.Query(`
		SELECT id, poll_id, text
		FROM option
		WHERE poll_id = $1
		ORDER BY id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	poll.Options = []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	voteRows, err := dbh.Query(`
		SELECT id, option_id, poll_id, voter_name
		FROM vote
		WHERE poll_id = $1
		ORDER BY id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer voteRows.Close()

	votesByOption := make(map[int64][]models.Vote)
	for voteRows.Next() {
		var v models.Vote
		if err := voteRows.Scan(&v.ID, &v.OptionID, &v.PollID, &v.VoterName); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votesByOption[v.OptionID] = append(votesByOption[v.OptionID], v)
	}
	if err := voteRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	for i := range poll.Options {
		opt := &poll.Options[i]
		opt.Votes = votesByOption[opt.ID]
		if opt.Votes == nil {
			opt.Votes = []models.Vote{}
		}
		opt.VoteCount = len(opt.Votes)
	}

	return &poll, nil
}

// ListPolls returns every poll with per-option vote counts. Voter lists
// are omitted to keep list payloads small.
func ListPolls(dbh *sql.DB) ([]models.Poll, error) {
	rows, err := dbh.Query(`
		SELECT id, question, allow_multiple_answers, created_at
		FROM poll
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	index := make(map[int64]int)
	for rows.Next() {
		var poll models.Poll
		if err := rows.Scan(&poll.ID, &poll.Question, &poll.AllowMultipleAnswers, &poll.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		poll.Options = []models.Option{}
		index[poll.ID] = len(polls)
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read polls: %w", err)
	}

	optRows, err := dbh.Query(`
		SELECT o.id, o.poll_id, o.text, COUNT(v.id)
		FROM option o
		LEFT JOIN vote v ON v.option_id = o.id
		GROUP BY o.id, o.poll_id, o.text
		ORDER BY o.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var opt models.Option
		if err := optRows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		if i, ok := index[opt.PollID]; ok {
			polls[i].Options = append(polls[i].Options, opt)
		}
	}
	if err := optRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	return polls, nil
}

// CreateVote appends exactly one vote for an option of the given poll.
// A second vote for the same option by the same voter is reported as
// ErrDuplicateVote, never retried.
func CreateVote(dbh *sql.DB, pollID, optionID int64, voterID, voterName string) (*models.Vote, error) {
	// The poll is validated before the option
	var exists bool
	if err := dbh.QueryRow(`SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)`, pollID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}
	if !exists {
		return nil, ErrPollNotFound
	}

	var optionPollID int64
	err := dbh.QueryRow(`
		SELECT poll_id FROM option WHERE id = $1
	`, optionID).Scan(&optionPollID)
	if err == sql.ErrNoRows {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query option: %w", err)
	}
	if optionPollID != pollID {
		return nil, ErrOptionNotFound
	}

	vote := models.Vote{OptionID: optionID, PollID: pollID, VoterName: voterName}
	err = dbh.QueryRow(`
		INSERT INTO vote (option_id, poll_id, voter_id, voter_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, optionID, pollID, voterID, voterName, time.Now().UTC()).Scan(&vote.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateVote
		}
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}

	return &vote, nil
}

// CreateVotes records one vote per selected option in a single
// transaction: either every selection is persisted or none is. A
// duplicate selection rolls back the batch and names the offending
// option via DuplicateVoteError. Polls that do not allow multiple
// answers accept at most one selection per batch.
func CreateVotes(dbh *sql.DB, pollID int64, optionIDs []int64, voterID, voterName string) ([]models.Vote, error) {
	var allowMultiple bool
	err := dbh.QueryRow(`SELECT allow_multiple_answers FROM poll WHERE id = $1`, pollID).Scan(&allowMultiple)
	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}
	if !allowMultiple && len(optionIDs) > 1 {
		return nil, ErrSingleAnswerPoll
	}

	rows, err := dbh.Query(`SELECT id FROM option WHERE poll_id = $1`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	validOptions := make(map[int64]bool)
	for rows.Next() {
		var optionID int64
		if err := rows.Scan(&optionID); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		validOptions[optionID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	for _, optionID := range optionIDs {
		if !validOptions[optionID] {
			return nil, ErrOptionNotFound
		}
	}

	tx, err := dbh.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := time.Now().UTC()
	votes := make([]models.Vote, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		vote := models.Vote{OptionID: optionID, PollID: pollID, VoterName: voterName}
		err = tx.QueryRow(`
			INSERT INTO vote (option_id, poll_id, voter_id, voter_name, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, optionID, pollID, voterID, voterName, createdAt).Scan(&vote.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, &DuplicateVoteError{OptionID: optionID}
			}
			return nil, fmt.Errorf("failed to insert vote: %w", err)
		}
		votes = append(votes, vote)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit votes: %w", err)
	}

	return votes, nil
}

// isUniqueViolation recognizes the vote uniqueness constraint firing
// on either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// modernc sqlite reports constraint failures as plain text
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

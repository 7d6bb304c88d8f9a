package models

import "time"

// Database type constants
const (
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"
)

// DefaultVoterName is recorded when a vote arrives without a display name.
const DefaultVoterName = "Anonymous"

// Request types

type CreatePollRequest struct {
	Question             string   `json:"question"`
	Options              []string `json:"options"`
	AllowMultipleAnswers bool     `json:"allowMultipleAnswers"`
}

type VoteRequest struct {
	OptionID  int64  `json:"optionId"`
	VoterName string `json:"voterName"`
}

// option ids selected in a multi-answer poll, committed atomically
type BatchVoteRequest struct {
	OptionIDs []int64 `json:"optionIds"`
	VoterName string  `json:"voterName"`
}

// Response types

type BatchVoteResponse struct {
	Votes []Vote `json:"votes"`
}

type StandingsResponse struct {
	PollID     int64            `json:"pollId"`
	TotalVotes int              `json:"totalVotes"`
	Standings  []OptionStanding `json:"standings"`
	Leading    *OptionStanding  `json:"leading"`
}

// Domain types

type Poll struct {
	ID                   int64     `json:"id"`
	Question             string    `json:"question"`
	AllowMultipleAnswers bool      `json:"allowMultipleAnswers"`
	Options              []Option  `json:"options"`
	CreatedAt            time.Time `json:"createdAt"`
}

type Option struct {
	ID        int64  `json:"id"`
	PollID    int64  `json:"pollId"`
	Text      string `json:"text"`
	VoteCount int    `json:"voteCount"`
	Votes     []Vote `json:"votes,omitempty"`
}

type Vote struct {
	ID        int64  `json:"id"`
	OptionID  int64  `json:"optionId"`
	PollID    int64  `json:"pollId"`
	VoterName string `json:"voterName"`
}

// OptionStanding is one row of a poll's current standings. Percentage is
// rounded to one decimal place and 0 when the poll has no votes.
type OptionStanding struct {
	OptionID   int64   `json:"optionId"`
	Text       string  `json:"text"`
	VoteCount  int     `json:"voteCount"`
	Percentage float64 `json:"percentage"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickpoll/identity"
	"github.com/danielhkuo/quickpoll/models"
	"github.com/danielhkuo/quickpoll/testutil"
)

// TestConcurrentVoteSubmissions verifies that simultaneous votes from
// different voters all land and none is lost or double counted.
func TestConcurrentVoteSubmissions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(conn, cfg)

	poll := testutil.CreateTestPoll(t, conn, "Lunch?", []string{"Pizza", "Salad", "Tacos"}, false)
	pollID := strconv.FormatInt(poll.ID, 10)

	numVoters := 12
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			body, _ := json.Marshal(models.VoteRequest{
				OptionID:  poll.Options[voterIdx%3].ID,
				VoterName: "Voter" + strconv.Itoa(voterIdx),
			})
			req := httptest.NewRequest("POST", "/api/polls/"+pollID+"/votes", bytes.NewReader(body))
			req.SetPathValue("id", pollID)
			req.Header.Set(identity.HeaderName, identity.Token(identity.NewVoterID(), cfg.VoterSecret))
			w := httptest.NewRecorder()

			votingHandler.SubmitVote(w, req)
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	var stored int
	if err := conn.QueryRow("SELECT COUNT(*) FROM vote WHERE poll_id = $1", poll.ID).Scan(&stored); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if stored != numVoters {
		t.Errorf("Expected %d stored votes, got %d", numVoters, stored)
	}
}

// TestDuplicateVoteRace fires the same voter at the same option from many
// goroutines; the uniqueness constraint must let exactly one through.
func TestDuplicateVoteRace(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(conn, cfg)

	poll := testutil.CreateTestPoll(t, conn, "Lunch?", []string{"Pizza", "Salad"}, false)
	pollID := strconv.FormatInt(poll.ID, 10)
	token := identity.Token(identity.NewVoterID(), cfg.VoterSecret)

	attempts := 8
	var successCount, duplicateCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body, _ := json.Marshal(models.VoteRequest{OptionID: poll.Options[0].ID, VoterName: "Racer"})
			req := httptest.NewRequest("POST", "/api/polls/"+pollID+"/votes", bytes.NewReader(body))
			req.SetPathValue("id", pollID)
			req.Header.Set(identity.HeaderName, token)
			w := httptest.NewRecorder()

			votingHandler.SubmitVote(w, req)
			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusBadRequest:
				duplicateCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if int(duplicateCount.Load()) != attempts-1 {
		t.Errorf("Expected %d duplicate rejections, got %d", attempts-1, duplicateCount.Load())
	}

	var stored int
	if err := conn.QueryRow("SELECT COUNT(*) FROM vote WHERE option_id = $1", poll.Options[0].ID).Scan(&stored); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if stored != 1 {
		t.Errorf("Expected 1 stored vote, got %d", stored)
	}
}

// TestConcurrentReadsDuringVoting interleaves poll reads with vote writes
// and checks every read sees a consistent count.
func TestConcurrentReadsDuringVoting(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(conn, cfg)
	resultsHandler := NewResultsHandler(conn, cfg)

	poll := testutil.CreateTestPoll(t, conn, "Lunch?", []string{"Pizza", "Salad"}, false)
	pollID := strconv.FormatInt(poll.ID, 10)

	numVoters := 6
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			body, _ := json.Marshal(models.VoteRequest{OptionID: poll.Options[0].ID})
			req := httptest.NewRequest("POST", "/api/polls/"+pollID+"/votes", bytes.NewReader(body))
			req.SetPathValue("id", pollID)
			req.Header.Set(identity.HeaderName, identity.Token(identity.NewVoterID(), cfg.VoterSecret))
			votingHandler.SubmitVote(httptest.NewRecorder(), req)
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest("GET", "/api/polls/"+pollID, nil)
			req.SetPathValue("id", pollID)
			w := httptest.NewRecorder()
			resultsHandler.GetPoll(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("Expected status 200 on read, got %d", w.Code)
				return
			}
			var resp models.Poll
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Errorf("Failed to decode response: %v", err)
				return
			}
			// Count must always equal the number of votes in the payload
			if resp.Options[0].VoteCount != len(resp.Options[0].Votes) {
				t.Errorf("Count %d does not match %d votes", resp.Options[0].VoteCount, len(resp.Options[0].Votes))
			}
		}()
	}
	wg.Wait()

	var stored int
	if err := conn.QueryRow("SELECT COUNT(*) FROM vote WHERE poll_id = $1", poll.ID).Scan(&stored); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if stored != numVoters {
		t.Errorf("Expected %d stored votes, got %d", numVoters, stored)
	}
}

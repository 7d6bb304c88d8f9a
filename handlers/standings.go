// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"
	"sort"

	"github.com/danielhkuo/quickpoll/models"
)

// ComputeStandings derives the current standings of a poll from its
// per-option vote counts. Options are ranked by descending count; equal
// counts keep their insertion order. Percentages are rounded to one
// decimal place and 0 when the poll has no votes.
func ComputeStandings(poll *models.Poll) models.StandingsResponse {
	total := 0
	for _, opt := range poll.Options {
		total += opt.VoteCount
	}

	standings := make([]models.OptionStanding, 0, len(poll.Options))
	for _, opt := range poll.Options {
		standings = append(standings, models.OptionStanding{
			OptionID:   opt.ID,
			Text:       opt.Text,
			VoteCount:  opt.VoteCount,
			Percentage: percentage(opt.VoteCount, total),
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].VoteCount > standings[j].VoteCount
	})

	return models.StandingsResponse{
		PollID:     poll.ID,
		TotalVotes: total,
		Standings:  standings,
		Leading:    leadingOption(standings),
	}
}

// leadingOption returns the option with strictly more votes than every
// other option, or nil when the lead is shared.
func leadingOption(standings []models.OptionStanding) *models.OptionStanding {
	if len(standings) == 0 {
		return nil
	}
	if len(standings) > 1 && standings[1].VoteCount == standings[0].VoteCount {
		return nil
	}
	lead := standings[0]
	return &lead
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

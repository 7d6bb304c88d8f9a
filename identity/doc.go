// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity provides voter identity tokens for duplicate-vote
scoping.

Voters are not authenticated. The display name on a vote is free text;
what prevents double voting is an opaque, browser-scoped identity: a
random UUID signed with HMAC-SHA256 so clients cannot mint arbitrary
identities cheaply.

# Tokens

A token is "<uuid>.<signature>", URL-safe base64 without padding:

	token := identity.Token(voterID, secret)
	voterID, err := identity.Verify(token, secret)

Since the signature is deterministic from the ID and secret, tokens are
verified without any database lookup.

# Request Handling

EnsureVoter resolves the caller's identity from the X-Voter-ID header or
the qp_voter cookie, minting and setting a new one on first contact:

	voterID := identity.EnsureVoter(w, r, cfg.VoterSecret)

The voter ID lands in the vote table's UNIQUE (option_id, voter_id)
index, which is the sole duplicate-vote mechanism.
*/
package identity

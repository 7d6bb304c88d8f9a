// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// CookieName carries the voter token between browser visits
	CookieName = "qp_voter"
	// HeaderName lets non-browser clients present a voter token
	HeaderName = "X-Voter-ID"
)

var ErrInvalidToken = errors.New("invalid voter token")

// NewVoterID returns a fresh random voter identifier
func NewVoterID() string {
	return uuid.NewString()
}

// Token returns the wire form of a voter ID: "<id>.<signature>"
// The signature is deterministic, so the token can be verified without
// storing it in the database.
func Token(voterID, secret string) string {
	return voterID + "." + sign(voterID, secret)
}

// Verify checks a token's signature and returns the embedded voter ID
func Verify(token, secret string) (string, error) {
	id, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(sign(id, secret))) {
		return "", ErrInvalidToken
	}
	return id, nil
}

// EnsureVoter resolves the caller's voter identity, minting one on first
// contact. The token is read from the X-Voter-ID header or the qp_voter
// cookie; a fresh identity is handed back as a cookie on the response.
// Tokens that fail verification are replaced, not rejected.
func EnsureVoter(w http.ResponseWriter, r *http.Request, secret string) string {
	token := r.Header.Get(HeaderName)
	if token == "" {
		if c, err := r.Cookie(CookieName); err == nil {
			token = c.Value
		}
	}
	if token != "" {
		if id, err := Verify(token, secret); err == nil {
			return id
		}
	}

	id := NewVoterID()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    Token(id, secret),
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// sign computes an HMAC-SHA256 signature over the voter ID
// URL-safe base64 without padding for cleaner cookie values
func sign(voterID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(voterID))
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

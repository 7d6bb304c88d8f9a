// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	id := NewVoterID()
	token := Token(id, "secret-1")

	got, err := Verify(token, "secret-1")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got != id {
		t.Errorf("Expected voter ID %q, got %q", id, got)
	}
}

func TestVerify_Rejects(t *testing.T) {
	id := NewVoterID()
	token := Token(id, "secret-1")

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", token}, // verified below with secret-2
		{"no separator", strings.ReplaceAll(token, ".", "")},
		{"not a uuid", "not-a-uuid." + strings.SplitN(token, ".", 2)[1]},
		{"tampered signature", id + ".AAAA"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := "secret-1"
			if tt.name == "wrong secret" {
				secret = "secret-2"
			}
			if _, err := Verify(tt.token, secret); err == nil {
				t.Error("Expected verification to fail")
			}
		})
	}
}

func TestEnsureVoter_MintsOnFirstContact(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/polls/1/votes", nil)
	w := httptest.NewRecorder()

	id := EnsureVoter(w, req, "secret-1")
	if id == "" {
		t.Fatal("Expected a voter ID")
	}

	// A cookie carrying a verifiable token must be set
	res := w.Result()
	var cookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("Expected qp_voter cookie to be set")
	}
	got, err := Verify(cookie.Value, "secret-1")
	if err != nil {
		t.Fatalf("Cookie token did not verify: %v", err)
	}
	if got != id {
		t.Errorf("Cookie voter ID %q does not match returned %q", got, id)
	}
	if !cookie.HttpOnly {
		t.Error("Expected HttpOnly cookie")
	}
}

func TestEnsureVoter_ReusesCookie(t *testing.T) {
	id := NewVoterID()
	req := httptest.NewRequest("POST", "/api/polls/1/votes", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: Token(id, "secret-1")})
	w := httptest.NewRecorder()

	got := EnsureVoter(w, req, "secret-1")
	if got != id {
		t.Errorf("Expected existing voter ID %q, got %q", id, got)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("Expected no new cookie for a returning voter")
	}
}

func TestEnsureVoter_HeaderWins(t *testing.T) {
	headerID := NewVoterID()
	cookieID := NewVoterID()

	req := httptest.NewRequest("POST", "/api/polls/1/votes", nil)
	req.Header.Set(HeaderName, Token(headerID, "secret-1"))
	req.AddCookie(&http.Cookie{Name: CookieName, Value: Token(cookieID, "secret-1")})
	w := httptest.NewRecorder()

	got := EnsureVoter(w, req, "secret-1")
	if got != headerID {
		t.Errorf("Expected header voter ID %q, got %q", headerID, got)
	}
}

func TestEnsureVoter_ReplacesForgedToken(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/polls/1/votes", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged.token"})
	w := httptest.NewRecorder()

	id := EnsureVoter(w, req, "secret-1")
	if id == "" {
		t.Fatal("Expected a fresh voter ID")
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("Expected replacement cookie for forged token")
	}
}

package game

import (
	"errors"
	"testing"
	"time"
)

func TestTokenVerifier(t *testing.T) {
	v := NewTokenVerifier("secret", true)

	token, err := v.Issue("alice", time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if got, err := v.Verify(token); err != nil || got != "alice" {
		t.Errorf("Verify() = %q, %v, want alice, nil", got, err)
	}

	expired, _ := v.Issue("alice", -time.Minute)
	other, _ := NewTokenVerifier("other", true).Issue("alice", time.Minute)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"expired":      expired,
		"wrong secret": other,
	}
	for name, tok := range tests {
		if _, err := v.Verify(tok); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%s: Verify() error = %v, want ErrUnauthorized", name, err)
		}
	}
}

func TestTokenVerifier_Optional(t *testing.T) {
	v := NewTokenVerifier("secret", false)

	if got, err := v.Verify(""); err != nil || got != anonymousSubject {
		t.Errorf("Verify(\"\") = %q, %v, want anonymous", got, err)
	}
	if _, err := v.Verify("not-a-token"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Verify(garbage) error = %v, want ErrUnauthorized", err)
	}
}

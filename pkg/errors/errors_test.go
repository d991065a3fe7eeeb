package errors

import (
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidAmount, "negative amount: %d", -5)
	if got, want := err.Error(), "INVALID_AMOUNT: negative amount: -5"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := Wrap(ErrCodeNetwork, fmt.Errorf("connection refused"), "fetch failed")
	if got, want := wrapped.Error(), "NETWORK_ERROR: fetch failed: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsAndGetCode(t *testing.T) {
	base := New(ErrCodeWalletNotFound, "no such wallet")
	wrapped := fmt.Errorf("loading: %w", base)

	if !Is(wrapped, ErrCodeWalletNotFound) {
		t.Error("Is() should find the code through fmt.Errorf wrapping")
	}
	if Is(wrapped, ErrCodeNetwork) {
		t.Error("Is() matched the wrong code")
	}
	if got := GetCode(wrapped); got != ErrCodeWalletNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeWalletNotFound)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode(plain error) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInternal, fmt.Errorf("disk full"), "write report")
	if got := UserMessage(err); got != "write report" {
		t.Errorf("UserMessage() = %q, want %q", got, "write report")
	}
	if got := UserMessage(fmt.Errorf("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "plain")
	}
}

func TestRateLimitedError(t *testing.T) {
	e := &RateLimitedError{RetryAfter: 30}
	if got, want := e.Error(), "rate limited: retry after 30 seconds"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if (&RateLimitedError{}).Error() != "rate limited" {
		t.Error("zero RetryAfter should not mention a retry delay")
	}
	if e.Code() != ErrCodeRateLimited {
		t.Errorf("Code() = %q, want %q", e.Code(), ErrCodeRateLimited)
	}
}

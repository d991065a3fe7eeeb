package httputil

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRetryRetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: fmt.Errorf("transient %d", calls)}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("bad request")
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("Retry() error = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return &RetryableError{Err: errors.New("still failing")}
	})
	if err == nil {
		t.Fatal("Retry() = nil, want last error")
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}

	var re *RetryableError
	if !errors.As(err, &re) {
		t.Errorf("Retry() error = %T, want the last RetryableError", err)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Minute, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}

func TestRetryClampsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 0, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("Retry(attempts=0) calls = %d err = %v, want 1 call and nil", calls, err)
	}
}

func TestRetryableErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	re := &RetryableError{Err: inner}
	if re.Error() != "inner" {
		t.Errorf("Error() = %q, want %q", re.Error(), "inner")
	}
	if !errors.Is(re, inner) {
		t.Error("errors.Is should see through RetryableError")
	}
}

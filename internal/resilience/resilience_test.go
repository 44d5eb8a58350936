package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		if err := cb.Do(func() error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("attempt %d: expected boom, got %v", i, err)
		}
	}

	if cb.State() != StateOpen {
		t.Fatalf("breaker should be open after 3 failures, state %v", cb.State())
	}

	called := false
	err := cb.Do(func() error { called = true; return nil })
	if !errors.Is(err, ErrOpen) {
		t.Errorf("open breaker should return ErrOpen, got %v", err)
	}
	if called {
		t.Error("open breaker must not invoke the function")
	}
}

func TestCircuitBreakerRecovers(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	cb.Do(func() error { return errors.New("fail") })
	if cb.State() != StateOpen {
		t.Fatal("breaker should open after one failure")
	}

	time.Sleep(20 * time.Millisecond)

	if err := cb.Do(func() error { return nil }); err != nil {
		t.Fatalf("probe call should be allowed and succeed, got %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("successful probe should close the breaker, state %v", cb.State())
	}
}

func TestCircuitBreakerFailedProbeReopens(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	cb.Do(func() error { return errors.New("fail") })
	time.Sleep(20 * time.Millisecond)
	cb.Do(func() error { return errors.New("still failing") })

	if cb.State() != StateOpen {
		t.Errorf("failed probe should reopen the breaker, state %v", cb.State())
	}
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute)

	cb.Do(func() error { return errors.New("fail") })
	cb.Do(func() error { return nil })
	cb.Do(func() error { return errors.New("fail") })

	if cb.State() != StateClosed {
		t.Error("non-consecutive failures should not open the breaker")
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond}, func() error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("connection refused")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	fatal := errors.New("invalid request")
	err := Retry(context.Background(), DefaultRetryConfig(), func() error {
		attempts++
		return fatal
	})

	if !errors.Is(err, fatal) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("non-retryable errors should not be retried, got %d attempts", attempts)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, RetryConfig{MaxAttempts: 5, InitialBackoff: 10 * time.Millisecond}, func() error {
		return fmt.Errorf("timeout")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context cancellation, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err       error
		retryable bool
	}{
		{nil, false},
		{errors.New("connection refused"), true},
		{errors.New("context deadline exceeded"), true},
		{errors.New("service Unavailable"), true},
		{errors.New("malformed payload"), false},
	}

	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.retryable {
			t.Errorf("IsRetryable(%v): got %v, want %v", tt.err, got, tt.retryable)
		}
	}
}

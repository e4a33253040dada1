package llm

import (
	"fmt"
	"testing"
	"time"
)

func testBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
}

func TestBreakerDisabled(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: false}, testLogger(t))
	if b != nil {
		t.Fatal("disabled breaker should be nil")
	}

	// Nil breaker executes directly and reports healthy.
	got, err := b.Execute(func() (string, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Errorf("Execute = (%q, %v), want (ok, nil)", got, err)
	}
	if !b.Healthy() {
		t.Error("nil breaker should be healthy")
	}
	stats := b.Stats()
	if enabled, ok := stats["enabled"].(bool); !ok || enabled {
		t.Errorf("Stats enabled = %v, want false", stats["enabled"])
	}
}

func TestBreakerPassesResults(t *testing.T) {
	b := NewBreaker(testBreakerConfig(), testLogger(t))

	got, err := b.Execute(func() (string, error) { return "response", nil })
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got != "response" {
		t.Errorf("Execute = %q, want %q", got, "response")
	}
	if !b.Healthy() {
		t.Error("breaker should stay closed after a success")
	}
}

func TestBreakerOpensOnFailures(t *testing.T) {
	b := NewBreaker(testBreakerConfig(), testLogger(t))
	failing := func() (string, error) { return "", fmt.Errorf("endpoint down") }

	// MinRequests is 3 with a 0.6 failure threshold, so three straight
	// failures trip the breaker.
	for range 3 {
		if _, err := b.Execute(failing); err == nil {
			t.Fatal("expected failure to propagate")
		}
	}

	if b.Healthy() {
		t.Fatal("breaker should be open after repeated failures")
	}

	// An open breaker short-circuits without invoking the function.
	called := false
	_, err := b.Execute(func() (string, error) {
		called = true
		return "late", nil
	})
	if err == nil {
		t.Fatal("expected open breaker to reject the call")
	}
	if called {
		t.Error("open breaker should not invoke the function")
	}

	stats := b.Stats()
	if stats["state"] != "open" {
		t.Errorf("Stats state = %v, want open", stats["state"])
	}
}

func TestBreakerStaysClosedBelowThreshold(t *testing.T) {
	b := NewBreaker(testBreakerConfig(), testLogger(t))

	// One failure among successes stays under the 0.6 ratio.
	_, _ = b.Execute(func() (string, error) { return "", fmt.Errorf("blip") })
	for range 4 {
		if _, err := b.Execute(func() (string, error) { return "ok", nil }); err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
	}

	if !b.Healthy() {
		t.Error("breaker should stay closed below the failure threshold")
	}
}

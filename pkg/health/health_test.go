package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubCheck struct {
	name    string
	healthy bool
}

func (s *stubCheck) Name() string { return s.name }

func (s *stubCheck) Check(ctx context.Context) error {
	if !s.healthy {
		return fmt.Errorf("%s failed", s.name)
	}
	return nil
}

func TestHealthChecker_CheckHealth(t *testing.T) {
	tests := []struct {
		name     string
		checks   []*stubCheck
		expected string
	}{
		{"no checks", nil, "healthy"},
		{"all healthy", []*stubCheck{{"a", true}, {"b", true}}, "healthy"},
		{"one unhealthy", []*stubCheck{{"a", true}, {"b", false}}, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker()
			for _, c := range tt.checks {
				hc.AddCheck(c)
			}

			status := hc.CheckHealth(context.Background())
			if status.Status != tt.expected {
				t.Errorf("Status = %s, want %s", status.Status, tt.expected)
			}
			if len(status.Checks) != len(tt.checks) {
				t.Errorf("got %d results, want %d", len(status.Checks), len(tt.checks))
			}
			for _, c := range tt.checks {
				if !c.healthy && status.Checks[c.name].Message == "" {
					t.Errorf("check %s: missing failure message", c.name)
				}
			}
		})
	}
}

func TestHealthChecker_RemoveCheck(t *testing.T) {
	hc := NewHealthChecker()
	hc.AddCheck(&stubCheck{"a", false})
	hc.RemoveCheck("a")

	if status := hc.CheckHealth(context.Background()); status.Status != "healthy" {
		t.Errorf("Status = %s after removal, want healthy", status.Status)
	}
}

func TestHealthChecker_LivenessHandler(t *testing.T) {
	hc := NewHealthChecker()
	w := httptest.NewRecorder()
	hc.LivenessHandler(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("code = %d, want %d", w.Code, http.StatusOK)
	}
	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if response["status"] != "alive" {
		t.Errorf("status = %q, want alive", response["status"])
	}
}

func TestHealthChecker_ReadinessHandler(t *testing.T) {
	tests := []struct {
		name     string
		healthy  bool
		wantCode int
	}{
		{"ready", true, http.StatusOK},
		{"not ready", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker()
			hc.AddCheck(&stubCheck{"session", tt.healthy})

			w := httptest.NewRecorder()
			hc.ReadinessHandler(w, httptest.NewRequest("GET", "/ready", nil))

			if w.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", w.Code, tt.wantCode)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %s", ct)
			}
			var status HealthStatus
			if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if _, ok := status.Checks["session"]; !ok {
				t.Error("session result missing from report")
			}
		})
	}
}

func TestFrameLoopHealthCheck(t *testing.T) {
	base := time.Unix(1000, 0)

	tests := []struct {
		name        string
		lastFrame   time.Time
		now         time.Time
		expectError bool
	}{
		{"no frame yet", time.Time{}, base, true},
		{"recent frame", base, base.Add(100 * time.Millisecond), false},
		{"stalled", base, base.Add(2 * time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var clock FrameClock
			if !tt.lastFrame.IsZero() {
				clock.Tick(tt.lastFrame)
			}
			check := NewFrameLoopHealthCheck(&clock, time.Second)
			check.now = func() time.Time { return tt.now }

			if check.Name() != "frame_loop" {
				t.Errorf("Name() = %s", check.Name())
			}
			err := check.Check(context.Background())
			if (err != nil) != tt.expectError {
				t.Errorf("Check() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

func TestFrameClock(t *testing.T) {
	var clock FrameClock
	if !clock.LastFrame().IsZero() {
		t.Error("LastFrame() should be zero before the first tick")
	}

	at := time.Unix(42, 500)
	clock.Tick(at)
	if !clock.LastFrame().Equal(at) {
		t.Errorf("LastFrame() = %v, want %v", clock.LastFrame(), at)
	}

	if clock.GameOver() {
		t.Error("GameOver() should start false")
	}
	clock.SetGameOver()
	if !clock.GameOver() {
		t.Error("GameOver() should be true after SetGameOver")
	}
}

func TestSessionHealthCheck(t *testing.T) {
	var clock FrameClock
	check := NewSessionHealthCheck(&clock)

	if err := check.Check(context.Background()); err != nil {
		t.Errorf("Check() = %v before game over", err)
	}
	clock.SetGameOver()
	if err := check.Check(context.Background()); err == nil {
		t.Error("Check() should fail after game over")
	}
}

func TestMemoryHealthCheck(t *testing.T) {
	tests := []struct {
		name        string
		usage       int64
		expectError bool
	}{
		{"under limit", 50, false},
		{"at limit", 100, false},
		{"over limit", 150, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := NewMemoryHealthCheck(100, func() int64 { return tt.usage })
			err := check.Check(context.Background())
			if (err != nil) != tt.expectError {
				t.Errorf("Check() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

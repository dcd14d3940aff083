// Package health serves liveness and readiness probes for a running flight
// session.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HealthCheck is one named readiness condition.
type HealthCheck interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthStatus is the aggregated readiness report.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth is the result of a single check.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker runs the registered checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates an empty checker.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers check, replacing any check with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes the check called name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth runs every check. The overall status is "healthy" only if all
// of them pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			continue
		}
		status.Checks[name] = ComponentHealth{Status: "healthy"}
	}

	return status
}

// LivenessHandler answers 200 while the process is up.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler runs the checks and answers 200 when all pass, 503
// otherwise. The report is written as JSON either way.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")
	if health.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}

// FrameClock is written by the frame loop and read by probes running on
// other goroutines.
type FrameClock struct {
	last atomic.Int64
	over atomic.Bool
}

// Tick records that a frame was committed at t.
func (c *FrameClock) Tick(t time.Time) {
	c.last.Store(t.UnixNano())
}

// SetGameOver marks the session as finished.
func (c *FrameClock) SetGameOver() {
	c.over.Store(true)
}

// LastFrame returns the time of the last Tick, or the zero time.
func (c *FrameClock) LastFrame() time.Time {
	n := c.last.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

// GameOver reports whether SetGameOver was called.
func (c *FrameClock) GameOver() bool {
	return c.over.Load()
}

// FrameLoopHealthCheck fails when no frame has been committed for longer
// than maxStall.
type FrameLoopHealthCheck struct {
	clock    *FrameClock
	maxStall time.Duration
	now      func() time.Time
}

// NewFrameLoopHealthCheck creates a stall check over clock.
func NewFrameLoopHealthCheck(clock *FrameClock, maxStall time.Duration) *FrameLoopHealthCheck {
	return &FrameLoopHealthCheck{clock: clock, maxStall: maxStall, now: time.Now}
}

// Name returns "frame_loop".
func (f *FrameLoopHealthCheck) Name() string {
	return "frame_loop"
}

// Check fails before the first frame and after a stall.
func (f *FrameLoopHealthCheck) Check(ctx context.Context) error {
	last := f.clock.LastFrame()
	if last.IsZero() {
		return fmt.Errorf("no frame committed yet")
	}
	if stall := f.now().Sub(last); stall > f.maxStall {
		return fmt.Errorf("no frame for %v (limit %v)", stall.Round(time.Millisecond), f.maxStall)
	}
	return nil
}

// SessionHealthCheck fails once the game is over.
type SessionHealthCheck struct {
	clock *FrameClock
}

// NewSessionHealthCheck creates a game-over check over clock.
func NewSessionHealthCheck(clock *FrameClock) *SessionHealthCheck {
	return &SessionHealthCheck{clock: clock}
}

// Name returns "session".
func (s *SessionHealthCheck) Name() string {
	return "session"
}

// Check fails when the ship has no lives left.
func (s *SessionHealthCheck) Check(ctx context.Context) error {
	if s.clock.GameOver() {
		return fmt.Errorf("game over")
	}
	return nil
}

// MemoryHealthCheck fails when heap usage passes a limit.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a memory check. getMemoryUsage reports MB.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns "memory".
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check compares current usage against the limit.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	if currentMB := m.getMemoryUsage(); currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

// cmd/skyroll/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/opd-ai/go-skyroll/pkg/config"
	"github.com/opd-ai/go-skyroll/pkg/health"
	"github.com/opd-ai/go-skyroll/pkg/logging"
	"github.com/opd-ai/go-skyroll/pkg/physics"
	"github.com/opd-ai/go-skyroll/pkg/render"
	"github.com/opd-ai/go-skyroll/pkg/sim"
)

func main() {
	logger := logging.NewLogger()

	configPath := flag.String("config", "", "Path to configuration file (defaults and SKYROLL_* environment when empty)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	frames := flag.Int("frames", 1800, "Number of frames to simulate")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal' or 'null'")
	seed := flag.Uint64("seed", 0, "Asteroid field seed (overrides config)")
	realtime := flag.Bool("realtime", false, "Pace frames at the configured time step")
	width := flag.Int("width", 80, "View width in cells (terminal only)")
	height := flag.Int("height", 24, "View height in cells (terminal only)")
	scale := flag.Float64("scale", 2, "World units per cell (terminal only)")
	healthAddr := flag.String("health", "", "Serve /health and /ready on this address (disabled when empty)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *createDefault {
		if *configPath == "" {
			logger.Error(ctx, "No configuration path given", nil)
			os.Exit(1)
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	gameConfig, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			gameConfig.Asteroids.Seed = *seed
		}
	})

	runID := logging.GenerateRunID()
	session, err := sim.New(gameConfig, logger, runID)
	if err != nil {
		logger.Error(ctx, "Failed to create session", err)
		os.Exit(1)
	}
	ctx = logging.WithRunID(ctx, runID)

	var term *render.TerminalRenderer
	var out render.Renderer
	switch *renderer {
	case "terminal":
		term = render.NewTerminalRenderer(os.Stdout, *width, *height, *scale)
		out = term
	case "null":
		out = render.NewNullRenderer(logger)
	default:
		logger.Error(ctx, "Unknown renderer", nil, "renderer", *renderer)
		os.Exit(1)
	}

	clock := &health.FrameClock{}
	if *healthAddr != "" {
		srv := startHealthServer(ctx, logger, clock, *healthAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error(ctx, "Health check server shutdown failed", err)
			}
		}()
	}

	if err := run(ctx, session, out, term, clock, gameConfig.TimeStep, *frames, *realtime); err != nil {
		logger.Error(ctx, "Session failed", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Session finished",
		"time", session.Now(),
		"lives", session.Lives(),
		"state", session.Ship().State().String(),
	)
}

// run steps the session by step seconds per frame until frames have been
// drawn, the game ends or ctx is cancelled. term, when set, follows the ship
// and shows a status line. clock is ticked after every committed frame.
func run(ctx context.Context, s *sim.Context, out render.Renderer, term *render.TerminalRenderer, clock *health.FrameClock, step float64, frames int, realtime bool) error {
	pilot := newAutopilot()

	var tick <-chan time.Time
	if realtime {
		ticker := time.NewTicker(time.Duration(step * float64(time.Second)))
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := 0; n < frames; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		frame, err := s.Advance(step, pilot.Input(n))
		if err != nil {
			return err
		}

		if term != nil {
			term.SetCenter(physics.PlaneOf(s.Ship().Position()))
			term.SetStatus(fmt.Sprintf("t=%6.2f  state=%-10s  lives=%d  near=%d",
				frame.Time, frame.State, frame.Lives, len(frame.NearMisses)))
		}
		if err := frame.Draw(out); err != nil {
			return err
		}
		if err := s.CommitFrame(); err != nil {
			return err
		}
		clock.Tick(time.Now())

		if frame.Lives == 0 {
			clock.SetGameOver()
			return nil
		}
	}
	return nil
}

// startHealthServer serves the liveness and readiness probes in the
// background.
func startHealthServer(ctx context.Context, logger *logging.Logger, clock *health.FrameClock, addr string) *http.Server {
	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewFrameLoopHealthCheck(clock, 2*time.Second))
	checker.AddCheck(health.NewSessionHealthCheck(clock))
	checker.AddCheck(health.NewMemoryHealthCheck(500, func() int64 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return int64(m.Alloc / 1024 / 1024)
	}))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", checker.LivenessHandler)
	mux.HandleFunc("/ready", checker.ReadinessHandler)

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "Starting health check server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()
	return srv
}

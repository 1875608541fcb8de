package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// Step is one piece of teardown. Steps run in the order given to Run.
type Step struct {
	Name string
	Fn   func(ctx context.Context) error
}

// WaitForSignal blocks until SIGINT/SIGTERM arrives or ctx is done.
func WaitForSignal(ctx context.Context) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case <-ctx.Done():
	}
}

// Run executes every step within timeout. A failing step is logged and the
// remaining steps still run. It returns the number of failed steps.
func Run(timeout time.Duration, steps ...Step) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	failed := 0
	for _, step := range steps {
		if err := step.Fn(ctx); err != nil {
			failed++
			log.Error().Err(err).Str("step", step.Name).Msg("Shutdown step failed")
			continue
		}
		log.Debug().Str("step", step.Name).Msg("Shutdown step complete")
	}

	log.Info().Int("failed_steps", failed).Msg("Shutdown complete")
	return failed
}

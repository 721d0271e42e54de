package watch

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/hakkan/internal/logfields"
)

// BuildFunc performs one rebuild. trigger names what requested it.
type BuildFunc func(ctx context.Context, trigger string) error

// Rebuilder runs BuildFunc for incoming requests, one at a time. Requests
// arriving while a build runs collapse into a single follow-up build.
type Rebuilder struct {
	build    BuildFunc
	requests chan string
}

// NewRebuilder creates a rebuilder around build.
func NewRebuilder(build BuildFunc) *Rebuilder {
	return &Rebuilder{
		build:    build,
		requests: make(chan string, 1),
	}
}

// Request asks for a rebuild. It never blocks.
func (r *Rebuilder) Request(trigger string) {
	select {
	case r.requests <- trigger:
	default:
		slog.Debug("Rebuild already pending", logfields.Trigger(trigger))
	}
}

// Run processes requests until ctx is done.
func (r *Rebuilder) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case trigger := <-r.requests:
			r.runOnce(ctx, trigger)
		}
	}
}

func (r *Rebuilder) runOnce(ctx context.Context, trigger string) {
	slog.Info("Rebuilding site", logfields.Trigger(trigger))
	start := time.Now()
	if err := r.build(ctx, trigger); err != nil {
		slog.Warn("Rebuild failed", logfields.Trigger(trigger), logfields.Error(err))
		return
	}
	slog.Info("Rebuild finished", logfields.Trigger(trigger),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}

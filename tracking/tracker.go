package tracking

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider forwards events to an analytics backend.
type Provider interface {
	Name() string
	Track(ctx context.Context, event Event, detail Detail) error
}

// Tracker fans events out to the registered providers. Track never panics and never
// returns an error since it runs inside request handling.
type Tracker struct {
	logger    *zap.Logger
	dev       bool
	providers []Provider
}

func NewTracker(logger *zap.Logger, dev bool, providers ...Provider) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{logger: logger, dev: dev, providers: providers}
}

func (t *Tracker) Track(ctx context.Context, event Event, detail Detail) {
	if t == nil {
		return
	}
	if t.dev {
		t.logger.Debug("track", append([]zap.Field{zap.String("event", string(event))}, detail.fields()...)...)
	}
	for _, p := range t.providers {
		if err := t.call(ctx, p, event, detail); err != nil {
			t.logger.Warn("analytics provider failed",
				zap.String("provider", p.Name()),
				zap.String("event", string(event)),
				zap.Error(err))
		}
	}
}

func (t *Tracker) call(ctx context.Context, p Provider, event Event, detail Detail) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return p.Track(ctx, event, detail)
}

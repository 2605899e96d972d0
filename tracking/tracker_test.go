package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingProvider struct {
	name   string
	events []Event
	err    error
	panic  bool
}

func (p *recordingProvider) Name() string { return p.name }

func (p *recordingProvider) Track(_ context.Context, event Event, _ Detail) error {
	if p.panic {
		panic("provider exploded")
	}
	p.events = append(p.events, event)
	return p.err
}

func TestParseEvent(t *testing.T) {
	for _, e := range Events {
		got, ok := ParseEvent(string(e))
		assert.True(t, ok)
		assert.Equal(t, e, got)
	}

	_, ok := ParseEvent("purchase")
	assert.False(t, ok)
	_, ok = ParseEvent("")
	assert.False(t, ok)
}

func TestTrackLogsInDevMode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracker := NewTracker(zap.New(core), true)

	tracker.Track(context.Background(), StepComplete, Detail{Step: Int(2), Reason: "next"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "track", entry.Message)
	ctx := entry.ContextMap()
	assert.Equal(t, "step_complete", ctx["event"])
	assert.Equal(t, int64(2), ctx["step"])
	assert.Equal(t, "next", ctx["reason"])
}

func TestTrackSilentOutsideDevMode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracker := NewTracker(zap.New(core), false)

	tracker.Track(context.Background(), PageView, Detail{})

	assert.Equal(t, 0, logs.Len())
}

func TestTrackForwardsToProviders(t *testing.T) {
	a := &recordingProvider{name: "a"}
	b := &recordingProvider{name: "b"}
	tracker := NewTracker(nil, false, a, b)

	tracker.Track(context.Background(), CTAClick, Detail{Position: Int(1)})
	tracker.Track(context.Background(), ApplyStart, Detail{})

	assert.Equal(t, []Event{CTAClick, ApplyStart}, a.events)
	assert.Equal(t, []Event{CTAClick, ApplyStart}, b.events)
}

func TestTrackSwallowsProviderFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	failing := &recordingProvider{name: "failing", err: errors.New("quota")}
	panicking := &recordingProvider{name: "panicking", panic: true}
	healthy := &recordingProvider{name: "healthy"}
	tracker := NewTracker(zap.New(core), false, failing, panicking, healthy)

	assert.NotPanics(t, func() {
		tracker.Track(context.Background(), Disqualified, Detail{Reason: "no_license"})
	})

	assert.Equal(t, []Event{Disqualified}, healthy.events)
	assert.Equal(t, 2, logs.Len())
}

func TestNilTrackerIsNoop(t *testing.T) {
	var tracker *Tracker
	assert.NotPanics(t, func() {
		tracker.Track(context.Background(), PageView, Detail{})
	})
}

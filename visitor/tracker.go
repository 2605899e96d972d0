package visitor

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const sendTimeout = 5 * time.Second

// Tracker sends the visitor payload of a single page view. A Tracker is created per
// page view; Track only dispatches on its first call.
type Tracker struct {
	sender Sender
	sent   atomic.Bool
	wg     sync.WaitGroup
}

func NewTracker(sender Sender) *Tracker {
	return &Tracker{sender: sender}
}

// Track assembles the payload for r and sends it in the background. It reports
// whether this call dispatched. Delivery failures are discarded: at most once, no
// retry, never surfaced to the caller.
func (t *Tracker) Track(r *http.Request) bool {
	if t == nil || t.sender == nil || r == nil {
		return false
	}
	if !t.sent.CompareAndSwap(false, true) {
		return false
	}

	p := NewPayload(r)
	// Detached from the request so finishing the response does not abort delivery.
	ctx := context.WithoutCancel(r.Context())
	if ClientIP(ctx) == "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ctx = WithClientIP(ctx, host)
		}
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() { _ = recover() }()
		ctx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()
		_ = t.sender.Send(ctx, p)
	}()
	return true
}

// Wait blocks until a dispatched send has finished.
func (t *Tracker) Wait() {
	if t == nil {
		return
	}
	t.wg.Wait()
}

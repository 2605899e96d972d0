// Package tracking dispatches funnel events to pluggable analytics providers.
package tracking

import "go.uber.org/zap"

// Event names a step or interaction in the application funnel.
type Event string

const (
	PageView           Event = "page_view"
	CTAClick           Event = "cta_click"
	StickyCTAClick     Event = "sticky_cta_click"
	ApplyStart         Event = "apply_start"
	StepComplete       Event = "step_complete"
	StepBack           Event = "step_back"
	ApplicationSubmit  Event = "application_submit"
	ApplicationSuccess Event = "application_success"
	ApplicationError   Event = "application_error"
	Qualified          Event = "qualified"
	Disqualified       Event = "disqualified"
	FAQOpen            Event = "faq_open"
)

// Events is the full vocabulary.
var Events = []Event{
	PageView, CTAClick, StickyCTAClick, ApplyStart, StepComplete, StepBack,
	ApplicationSubmit, ApplicationSuccess, ApplicationError, Qualified, Disqualified, FAQOpen,
}

// ParseEvent maps a wire name onto the vocabulary.
func ParseEvent(name string) (Event, bool) {
	for _, e := range Events {
		if string(e) == name {
			return e, true
		}
	}
	return "", false
}

// Detail is the optional payload of an event. The named fields are the ones
// providers understand; anything else goes into Extra.
type Detail struct {
	Position *int           `json:"position,omitempty"`
	Step     *int           `json:"step,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Score    *int           `json:"score,omitempty"`
	Priority string         `json:"priority,omitempty"`
	Outcome  string         `json:"outcome,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// Int is a helper for the optional numeric fields of Detail.
func Int(v int) *int {
	return &v
}

func (d Detail) fields() []zap.Field {
	var out []zap.Field
	if d.Position != nil {
		out = append(out, zap.Int("position", *d.Position))
	}
	if d.Step != nil {
		out = append(out, zap.Int("step", *d.Step))
	}
	if d.Reason != "" {
		out = append(out, zap.String("reason", d.Reason))
	}
	if d.Score != nil {
		out = append(out, zap.Int("score", *d.Score))
	}
	if d.Priority != "" {
		out = append(out, zap.String("priority", d.Priority))
	}
	if d.Outcome != "" {
		out = append(out, zap.String("outcome", d.Outcome))
	}
	if len(d.Extra) > 0 {
		out = append(out, zap.Any("extra", d.Extra))
	}
	return out
}

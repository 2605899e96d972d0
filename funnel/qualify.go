package funnel

import (
	"time"

	"recruitfunnel/site/models"
)

const (
	OutcomeQualified    = "qualified"
	OutcomeDisqualified = "disqualified"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	ReasonNoConsent   = "no_consent"
	ReasonNoLicense   = "no_license"
	ReasonUnavailable = "unavailable"
)

// maxAvailabilityWindow is how far out a start date may be before the applicant is
// turned away.
const maxAvailabilityWindow = 180 * 24 * time.Hour

// Result is the qualification verdict for one application.
type Result struct {
	Score    int    `json:"score"`
	Priority string `json:"priority"`
	Outcome  string `json:"outcome"`
	Reason   string `json:"reason,omitempty"`
}

// Qualify scores an application. Experience is worth 5 points a year up to 50, a
// driving licence 20, and an early start up to 30.
func Qualify(req models.ApplicationRequest, now time.Time) Result {
	if !req.Consent {
		return disqualify(ReasonNoConsent)
	}
	if RequiresLicense(req.Role) && !req.HasLicense {
		return disqualify(ReasonNoLicense)
	}

	start, err := time.Parse(time.DateOnly, req.AvailableFrom)
	if err != nil {
		start = now
	}
	wait := start.Sub(now.Truncate(24 * time.Hour))
	if wait > maxAvailabilityWindow {
		return disqualify(ReasonUnavailable)
	}

	years := req.ExperienceYears
	if years > 10 {
		years = 10
	}
	score := years * 5
	if req.HasLicense {
		score += 20
	}
	switch {
	case wait <= 14*24*time.Hour:
		score += 30
	case wait <= 30*24*time.Hour:
		score += 15
	}

	return Result{Score: score, Priority: priority(score), Outcome: OutcomeQualified}
}

// RequiresLicense reports whether a role needs a driving licence.
func RequiresLicense(role string) bool {
	return role == models.RoleDriver
}

func disqualify(reason string) Result {
	return Result{Priority: PriorityLow, Outcome: OutcomeDisqualified, Reason: reason}
}

func priority(score int) string {
	switch {
	case score >= 70:
		return PriorityHigh
	case score >= 40:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

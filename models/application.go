package models

import "time"

const (
	RoleDriver      = "driver"
	RoleWarehouse   = "warehouse"
	RoleHospitality = "hospitality"
	RoleCare        = "care"
)

// JobRoles lists the positions the funnel recruits for.
var JobRoles = []string{RoleDriver, RoleWarehouse, RoleHospitality, RoleCare}

// ApplicationRequest is the body of POST /api/applications.
type ApplicationRequest struct {
	FirstName       string `json:"first_name" binding:"required,max=100"`
	LastName        string `json:"last_name" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,min=6,max=32"`
	Role            string `json:"role" binding:"required,oneof=driver warehouse hospitality care"`
	ExperienceYears int    `json:"experience_years" binding:"min=0,max=60"`
	HasLicense      bool   `json:"has_license"`
	AvailableFrom   string `json:"available_from" binding:"required,datetime=2006-01-02"`
	Consent         bool   `json:"consent"`
	// Attribution is the query string the applicant arrived with; only allow-listed
	// parameters are kept.
	Attribution string `json:"attribution"`
}

// Application is a stored submission.
type Application struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	ExperienceYears int       `json:"experience_years"`
	HasLicense      bool      `json:"has_license"`
	AvailableFrom   string    `json:"available_from"`
	Consent         bool      `json:"consent"`
	Score           int       `json:"score"`
	Priority        string    `json:"priority"`
	Outcome         string    `json:"outcome"`
	Reason          string    `json:"reason,omitempty"`
	Attribution     string    `json:"attribution"`
	CreatedAt       time.Time `json:"created_at"`
}

type OutcomeCount struct {
	Outcome string `json:"outcome"`
	Count   uint64 `json:"count"`
}

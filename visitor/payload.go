// Package visitor records one visitor-context payload per landing-page view.
package visitor

import (
	"net/http"
	"strings"
)

const (
	// SessionCookie carries the opaque session id issued by the session middleware.
	SessionCookie = "fs_sid"
	// FBPCookie and FBCCookie are the ad-platform browser and click markers.
	FBPCookie = "_fbp"
	FBCCookie = "_fbc"
)

// Payload is the body posted to the visitor collection endpoint. All seven fields are
// always serialized; sources that are absent encode as null.
type Payload struct {
	SessionID *string `json:"session_id"`
	FBP       *string `json:"fbp"`
	FBC       *string `json:"fbc"`
	PageURL   string  `json:"page_url" binding:"required"`
	Referrer  *string `json:"referrer"`
	UserAgent string  `json:"user_agent"`
	Search    string  `json:"search"`
}

// NewPayload assembles the visitor context of r. Cookie values are not validated.
func NewPayload(r *http.Request) Payload {
	p := Payload{
		SessionID: cookieValue(r, SessionCookie),
		FBP:       cookieValue(r, FBPCookie),
		FBC:       cookieValue(r, FBCCookie),
		PageURL:   pageURL(r),
		UserAgent: r.UserAgent(),
	}
	if ref := r.Referer(); ref != "" {
		p.Referrer = &ref
	}
	if r.URL != nil && r.URL.RawQuery != "" {
		p.Search = "?" + r.URL.RawQuery
	}
	return p
}

func cookieValue(r *http.Request, name string) *string {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return nil
	}
	v := c.Value
	return &v
}

func pageURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host + r.URL.RequestURI()
}

// Value returns the dereferenced string or "" for nil.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

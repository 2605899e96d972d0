// Package landing holds the landing-page variants, the sticky call-to-action
// component and the HTML templates of the site.
package landing

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"recruitfunnel/site/attribution"
	"recruitfunnel/site/funnel"
	"recruitfunnel/site/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StickyCTA is a call-to-action bar revealed once the page has scrolled past
// Threshold pixels. MaxViewport > 0 restricts it to viewports at most that wide.
type StickyCTA struct {
	ID          string
	Threshold   int
	MaxViewport int
	Href        string
	Label       string
}

// StickyView is a StickyCTA bound to the current request's attribution.
type StickyView struct {
	StickyCTA
	Link string
}

// Bind resolves the CTA link against the visitor's query string.
func (s StickyCTA) Bind(search string) StickyView {
	return StickyView{StickyCTA: s, Link: attribution.Merge(s.Href, search)}
}

// Variant is one audience-specific landing page.
type Variant struct {
	Slug        string
	Path        string
	Audience    string
	Headline    string
	Subheadline string
	CTALabel    string
	Benefits    []string
	Sticky      StickyCTA
}

var Variants = []Variant{
	{
		Slug:        "general",
		Path:        "/",
		Audience:    "Job seekers",
		Headline:    "Find your next job this week",
		Subheadline: "Driving, warehouse, hospitality and care roles with weekly pay.",
		CTALabel:    "Start your application",
		Benefits: []string{
			"Weekly pay, every Friday",
			"Flexible shifts that fit around you",
			"A dedicated recruiter from day one",
		},
		Sticky: StickyCTA{ID: "sticky-general", Threshold: 600, Href: "/apply", Label: "Apply in 3 minutes"},
	},
	{
		Slug:        "fast-track",
		Path:        "/fast-track",
		Audience:    "Experienced candidates",
		Headline:    "Experienced? Start in 48 hours",
		Subheadline: "Skip the queue: verified experience gets an interview the same day.",
		CTALabel:    "Fast-track my application",
		Benefits: []string{
			"Same-day interview for experienced applicants",
			"Higher starting rates",
			"Priority placement with our top clients",
		},
		Sticky: StickyCTA{ID: "sticky-fast-track", Threshold: 300, MaxViewport: 768, Href: "/apply", Label: "Fast-track now"},
	},
}

// ApplySticky is shown on the funnel's first step for visitors who scroll past the intro.
var ApplySticky = StickyCTA{ID: "sticky-apply", Threshold: 400, MaxViewport: 768, Href: "/apply?step=2", Label: "Continue"}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("site").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.tmpl")
}

// Static serves the embedded stylesheet and assets.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// FuncMap exposes the helpers the templates use.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"withAttribution": attribution.Merge,
		"sticky": func(s StickyCTA, search string) StickyView {
			return s.Bind(search)
		},
		"stepURL": func(step int, search string) string {
			return attribution.Merge("/apply?step="+strconv.Itoa(step), search)
		},
		"steps": func() []funnel.Step {
			return funnel.Steps
		},
		"jobRoles": func() []string {
			return models.JobRoles
		},
	}
}

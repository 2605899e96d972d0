// Package funnel holds the application funnel: its steps and the qualification
// rules applied to a submitted application.
package funnel

import "strconv"

// Step is one screen of the application form.
type Step struct {
	Number int
	Title  string
	Fields []string
}

var Steps = []Step{
	{Number: 1, Title: "About you", Fields: []string{"first_name", "last_name", "email", "phone"}},
	{Number: 2, Title: "Your experience", Fields: []string{"role", "experience_years", "has_license"}},
	{Number: 3, Title: "Availability", Fields: []string{"available_from", "consent"}},
}

// StepFromQuery parses the step query parameter. Anything outside the funnel maps
// to the first step.
func StepFromQuery(raw string) Step {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(Steps) {
		return Steps[0]
	}
	return Steps[n-1]
}

// Last reports whether s is the final step.
func (s Step) Last() bool {
	return s.Number == len(Steps)
}

// Next is the number of the following step, or the last step number.
func (s Step) Next() int {
	if s.Last() {
		return s.Number
	}
	return s.Number + 1
}

// Prev is the number of the preceding step, or 1.
func (s Step) Prev() int {
	if s.Number <= 1 {
		return 1
	}
	return s.Number - 1
}

package pipeline

import (
	"github.com/gertd/go-pluralize"
)

// DaysSinceIncident feeds the incident card.
const DaysSinceIncident = 42

type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Sub   string `json:"sub"`
	Good  bool   `json:"good"`
}

var plural = pluralize.NewClient()

// Cards returns the status page.
func Cards() []Card {
	return []Card{
		{Label: "API Availability", Value: "99.99%", Sub: "Response: 24ms", Good: true},
		{Label: "Portfolio CDN", Value: "Operational", Sub: "Global Cache Hit", Good: true},
		{Label: "Current Incident", Value: "None", Sub: "Last incident: " + Ago(DaysSinceIncident)},
	}
}

// Ago formats a day count as "1 day ago" or "42 days ago".
func Ago(days int) string {
	return plural.Pluralize("day", days, true) + " ago"
}

// Count formats n with a pluralized noun, e.g. "3 bugs".
func Count(noun string, n int) string {
	return plural.Pluralize(noun, n, true)
}

// Package suggest is the core, composing the prefix index, the record store and the scorers behind two ranked queries.
package suggest

// ISuggester defines the interface for suggestion engines
type ISuggester interface {
	// SuggestByPopulation returns every name starting with prefix, most populated first
	SuggestByPopulation(prefix string) ([]Suggestion, error)

	// SuggestByProximity returns every name starting with prefix, closest to (lat, lon) first
	SuggestByProximity(prefix string, lat, lon float64) ([]Suggestion, error)

	// Stats returns statistics about the loaded records
	Stats() map[string]int
}

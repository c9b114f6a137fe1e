package suggest

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bastiangx/geoserve/pkg/geo"
	"github.com/bastiangx/geoserve/pkg/score"
	"github.com/bastiangx/geoserve/pkg/store"
	"github.com/bastiangx/geoserve/pkg/trie"
	"github.com/charmbracelet/log"
)

// ErrInconsistentIndex means the prefix index produced a name the record store
// does not hold. Both are built from the same records, so this is a build bug.
var ErrInconsistentIndex = errors.New("inconsistent index")

// Suggestion is one ranked result. Score is in [0, 1], higher is better.
type Suggestion struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Score     float64 `json:"score"`
}

// Engine answers prefix queries over a fixed record set.
// It is never mutated after New returns, so queries need no locking.
type Engine struct {
	index      *trie.PrefixIndex
	records    *store.RecordStore
	duplicates int
	skipped    int
}

// New builds an engine from already validated records.
// For a repeated name the first record wins and later ones are dropped.
func New(records []geo.Record) *Engine {
	e := &Engine{
		index:   trie.New(),
		records: store.New(),
	}

	for _, rec := range records {
		if rec.Name == "" {
			e.skipped++
			continue
		}
		e.index.Insert(rec.Name)
		if !e.records.Put(rec) {
			e.duplicates++
		}
	}

	log.Debug("Engine built", "records", e.records.Len(), "duplicates", e.duplicates, "skipped", e.skipped)
	return e
}

// SuggestByPopulation returns every record whose name starts with prefix,
// sorted by population descending. Equal populations fall back to name order.
func (e *Engine) SuggestByPopulation(prefix string) ([]Suggestion, error) {
	recs, err := e.lookup(prefix)
	if err != nil {
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Population != recs[j].Population {
			return recs[i].Population > recs[j].Population
		}
		return recs[i].Name < recs[j].Name
	})

	populations := make([]int64, len(recs))
	for i, rec := range recs {
		populations[i] = rec.Population
	}

	return zip(recs, score.Population(populations)), nil
}

// SuggestByProximity returns every record whose name starts with prefix,
// sorted by haversine distance to (lat, lon) ascending. Equal distances fall
// back to name order.
func (e *Engine) SuggestByProximity(prefix string, lat, lon float64) ([]Suggestion, error) {
	recs, err := e.lookup(prefix)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		rec  geo.Record
		dist float64
	}
	candidates := make([]candidate, len(recs))
	for i, rec := range recs {
		candidates[i] = candidate{rec: rec, dist: rec.DistanceTo(lat, lon)}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].rec.Name < candidates[j].rec.Name
	})

	distances := make([]float64, len(candidates))
	for i, c := range candidates {
		recs[i] = c.rec
		distances[i] = c.dist
	}

	return zip(recs, score.Proximity(distances)), nil
}

// Stats returns statistics about the loaded records.
func (e *Engine) Stats() map[string]int {
	return map[string]int{
		"records":    e.records.Len(),
		"names":      e.index.Len(),
		"duplicates": e.duplicates,
		"skipped":    e.skipped,
	}
}

// lookup resolves every indexed name matching prefix to its record.
func (e *Engine) lookup(prefix string) ([]geo.Record, error) {
	names := e.index.MatchesWithPrefix(prefix)
	recs := make([]geo.Record, 0, len(names))
	for _, name := range names {
		rec, ok := e.records.Get(name)
		if !ok {
			log.Errorf("Index name %q has no record", name)
			return nil, fmt.Errorf("%w: no record for %q", ErrInconsistentIndex, name)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func zip(recs []geo.Record, scores []float64) []Suggestion {
	suggestions := make([]Suggestion, len(recs))
	for i, rec := range recs {
		suggestions[i] = Suggestion{
			Name:      rec.Name,
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
			Score:     scores[i],
		}
	}
	return suggestions
}

// Top returns at most limit suggestions. A limit below 1 keeps all of them.
func Top(suggestions []Suggestion, limit int) []Suggestion {
	if limit > 0 && len(suggestions) > limit {
		return suggestions[:limit]
	}
	return suggestions
}

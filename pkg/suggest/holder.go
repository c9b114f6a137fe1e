package suggest

import (
	"sync/atomic"

	"github.com/bastiangx/geoserve/pkg/geo"
	"github.com/charmbracelet/log"
)

// Holder publishes the live engine. A reload builds a complete new engine and
// swaps it in; readers holding the old one keep a consistent view.
type Holder struct {
	current atomic.Pointer[Engine]
}

// NewHolder returns a holder publishing e, or an empty engine when e is nil.
func NewHolder(e *Engine) *Holder {
	if e == nil {
		e = New(nil)
	}
	h := &Holder{}
	h.current.Store(e)
	return h
}

// Load returns the live engine.
func (h *Holder) Load() *Engine {
	return h.current.Load()
}

// Swap publishes e and returns the engine it replaced.
func (h *Holder) Swap(e *Engine) *Engine {
	if e == nil {
		e = New(nil)
	}
	return h.current.Swap(e)
}

// Reload builds a new engine from records and publishes it.
func (h *Holder) Reload(records []geo.Record) *Engine {
	e := New(records)
	h.Swap(e)
	log.Debug("Engine reloaded", "records", e.records.Len())
	return e
}

// SuggestByPopulation ranks prefix matches of the live engine by population.
func (h *Holder) SuggestByPopulation(prefix string) ([]Suggestion, error) {
	return h.Load().SuggestByPopulation(prefix)
}

// SuggestByProximity ranks prefix matches of the live engine by distance to
// lat, lon.
func (h *Holder) SuggestByProximity(prefix string, lat, lon float64) ([]Suggestion, error) {
	return h.Load().SuggestByProximity(prefix, lat, lon)
}

// Stats reports the counters of the live engine.
func (h *Holder) Stats() map[string]int {
	return h.Load().Stats()
}

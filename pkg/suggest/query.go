package suggest

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/bastiangx/geoserve/internal/utils"
	"github.com/bastiangx/geoserve/pkg/geo"
)

// Options bound what a front end accepts before a query reaches an engine.
//
// A zero MinPrefix, MaxPrefix or MaxLimit disables that bound, and a zero
// DefaultLimit returns every match when the query sets no limit.
type Options struct {
	MinPrefix    int
	MaxPrefix    int
	MaxLimit     int
	DefaultLimit int
	// Capitalize uppercases the first letter of every word of the prefix.
	Capitalize bool
}

// DefaultOptions mirrors the built-in config defaults.
func DefaultOptions() Options {
	return Options{
		MinPrefix:    1,
		MaxPrefix:    100,
		MaxLimit:     50,
		DefaultLimit: 10,
		Capitalize:   true,
	}
}

// Query is a prefix request as received by the IPC or HTTP front.
// Proximity ranking is used only when both coordinates are set.
type Query struct {
	Prefix    string
	Latitude  *float64
	Longitude *float64
	Limit     int
}

// RequestError reports a query rejected before it reached the engine.
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string {
	return e.Msg
}

func badRequest(format string, args ...any) error {
	return &RequestError{Msg: fmt.Sprintf(format, args...)}
}

// Run validates q against o, runs it on s and trims the result to the limit.
// An empty prefix matches every name unless MinPrefix rules it out.
func (o Options) Run(s ISuggester, q Query) ([]Suggestion, error) {
	length := utf8.RuneCountInString(q.Prefix)
	if o.MinPrefix > 0 && length < o.MinPrefix {
		return nil, badRequest("query must be at least %d characters", o.MinPrefix)
	}
	if o.MaxPrefix > 0 && length > o.MaxPrefix {
		return nil, badRequest("query exceeds maximum length of %d characters", o.MaxPrefix)
	}

	prefix := q.Prefix
	if o.Capitalize {
		prefix = utils.CapitalizeWords(prefix)
	}

	var (
		suggestions []Suggestion
		err         error
	)
	if q.Latitude != nil && q.Longitude != nil {
		lat, lon := *q.Latitude, *q.Longitude
		if math.IsNaN(lat) || lat < -90 || lat > 90 {
			return nil, badRequest("%v", geo.ErrLatitudeRange)
		}
		if math.IsNaN(lon) || lon < -180 || lon > 180 {
			return nil, badRequest("%v", geo.ErrLongitudeRange)
		}
		suggestions, err = s.SuggestByProximity(prefix, lat, lon)
	} else {
		suggestions, err = s.SuggestByPopulation(prefix)
	}
	if err != nil {
		return nil, err
	}
	return Top(suggestions, o.limit(q.Limit)), nil
}

func (o Options) limit(requested int) int {
	limit := requested
	if limit < 1 {
		limit = o.DefaultLimit
	}
	if o.MaxLimit > 0 && limit > o.MaxLimit {
		limit = o.MaxLimit
	}
	return limit
}

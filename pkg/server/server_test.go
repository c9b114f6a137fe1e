package server

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/bastiangx/geoserve/pkg/geo"
	"github.com/bastiangx/geoserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var (
	toronto  = geo.Record{Name: "Toronto, Ontario, CA", Latitude: 43.70011, Longitude: -79.4163, Population: 2600000}
	tampa    = geo.Record{Name: "Tampa, FL, US", Latitude: 27.94752, Longitude: -82.45843, Population: 335709}
	victoria = geo.Record{Name: "Victoria, British Columbia, CA", Latitude: 48.43294, Longitude: -123.3693, Population: 289625}
)

func ptr(f float64) *float64 { return &f }

// run feeds the encoded messages to a server and returns a decoder over its output.
func run(t *testing.T, h Engine, reload ReloadFunc, messages ...any) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, m := range messages {
		require.NoError(t, enc.Encode(m))
	}

	s := NewServerWithIO(h, reload, suggest.DefaultOptions(), &in, &out)
	require.NoError(t, s.Start())

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)
	return dec
}

func TestSuggestByPopulation(t *testing.T) {
	h := suggest.NewHolder(suggest.New([]geo.Record{toronto, tampa, victoria}))
	dec := run(t, h, nil, Request{ID: "req_001", Query: "t"})

	var resp SuggestResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "req_001", resp.ID)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, toronto.Name, resp.Suggestions[0].Name)
	assert.Equal(t, toronto.Latitude, resp.Suggestions[0].Latitude)
	assert.Equal(t, tampa.Name, resp.Suggestions[1].Name)
	assert.Greater(t, resp.Suggestions[0].Score, resp.Suggestions[1].Score)
	assert.GreaterOrEqual(t, resp.TimeTaken, int64(0))
}

func TestSuggestByProximityAndLimit(t *testing.T) {
	h := suggest.NewHolder(suggest.New([]geo.Record{toronto, tampa, victoria}))
	dec := run(t, h, nil,
		Request{ID: "near", Action: ActionSuggest, Query: "T", Lat: ptr(27.9), Lon: ptr(-82.4)},
		Request{ID: "one", Query: "T", Limit: 1},
	)

	var near SuggestResponse
	require.NoError(t, dec.Decode(&near))
	assert.Equal(t, "near", near.ID)
	require.Len(t, near.Suggestions, 2)
	assert.Equal(t, tampa.Name, near.Suggestions[0].Name)

	var one SuggestResponse
	require.NoError(t, dec.Decode(&one))
	assert.Equal(t, 1, one.Count)
	assert.Equal(t, toronto.Name, one.Suggestions[0].Name)
}

func TestBadRequests(t *testing.T) {
	h := suggest.NewHolder(suggest.New([]geo.Record{toronto}))
	dec := run(t, h, nil,
		Request{ID: "empty"},
		Request{ID: "lat", Query: "T", Lat: ptr(100), Lon: ptr(0)},
		Request{ID: "odd", Action: "shrug"},
		map[string]any{"id": 7, "q": []int{1}},
		Request{ID: "after", Query: "To"},
	)

	for _, want := range []struct {
		id   string
		code int
	}{{"empty", 400}, {"lat", 400}, {"odd", 400}, {"", 400}} {
		var resp ErrorResponse
		require.NoError(t, dec.Decode(&resp))
		assert.Equal(t, want.id, resp.ID)
		assert.Equal(t, want.code, resp.Code)
		assert.NotEmpty(t, resp.Error)
	}

	// a malformed request does not break the stream
	var after SuggestResponse
	require.NoError(t, dec.Decode(&after))
	assert.Equal(t, "after", after.ID)
	assert.Equal(t, 1, after.Count)
}

// brokenEngine fails every query the way an index without its record does.
type brokenEngine struct {
	*suggest.Holder
}

func (brokenEngine) SuggestByPopulation(prefix string) ([]suggest.Suggestion, error) {
	return nil, fmt.Errorf("%w: no record for %q", suggest.ErrInconsistentIndex, prefix)
}

func TestInconsistentIndexIsInternalError(t *testing.T) {
	dec := run(t, brokenEngine{suggest.NewHolder(nil)}, nil, Request{ID: "x", Query: "Ta"})
	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, 500, resp.Code)
	assert.Contains(t, resp.Error, "inconsistent index")
}

func TestReloadAndHealth(t *testing.T) {
	h := suggest.NewHolder(suggest.New([]geo.Record{toronto}))
	calls := 0
	reload := func() ([]geo.Record, error) {
		calls++
		return []geo.Record{toronto, tampa, victoria}, nil
	}

	dec := run(t, h, reload,
		Request{ID: "h1", Action: ActionHealth},
		Request{ID: "r1", Action: ActionReload},
		Request{ID: "q1", Query: "T"},
	)

	var health StatusResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, StatusResponse{ID: "h1", Status: "ok", Count: 1}, health)

	var reloaded StatusResponse
	require.NoError(t, dec.Decode(&reloaded))
	assert.Equal(t, StatusResponse{ID: "r1", Status: "ok", Count: 3}, reloaded)
	assert.Equal(t, 1, calls)

	var q SuggestResponse
	require.NoError(t, dec.Decode(&q))
	assert.Equal(t, 2, q.Count)
}

func TestReloadFailureKeepsEngine(t *testing.T) {
	h := suggest.NewHolder(suggest.New([]geo.Record{toronto}))
	before := h.Load()
	reload := func() ([]geo.Record, error) {
		return nil, errors.New("dataset vanished")
	}

	dec := run(t, h, reload, Request{ID: "r1", Action: ActionReload})
	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, ErrorResponse{ID: "r1", Error: "dataset vanished", Code: 500}, resp)
	assert.Same(t, before, h.Load())

	dec = run(t, h, nil, Request{ID: "r2", Action: ActionReload})
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, 500, resp.Code)
}

func TestTruncatedInput(t *testing.T) {
	raw, err := msgpack.Marshal(Request{ID: "cut", Query: "Toronto"})
	require.NoError(t, err)

	var out bytes.Buffer
	s := NewServerWithIO(suggest.NewHolder(nil), nil, suggest.DefaultOptions(), bytes.NewReader(raw[:len(raw)-3]), &out)
	assert.Error(t, s.Start())
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/geoserve/pkg/geo"
	"github.com/bastiangx/geoserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func testEngine() *suggest.Engine {
	return suggest.New([]geo.Record{
		{Name: "Toronto, Ontario, CA", Latitude: 43.70011, Longitude: -79.4163, Population: 2600000},
		{Name: "Tampa, FL, US", Latitude: 27.94752, Longitude: -82.45843, Population: 335709},
	})
}

func runREPL(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	h := NewInputHandler(testEngine(), suggest.DefaultOptions(), strings.NewReader(input), &out)
	require.NoError(t, h.Start())
	return out.String()
}

func TestREPLPopulationThenProximity(t *testing.T) {
	out := runREPL(t, "t\n:near 27.9 -82.4\nt\n:pop\nt\n")

	blocks := strings.Split(out, "> ")
	require.GreaterOrEqual(t, len(blocks), 6)

	first := blocks[1]
	assert.Less(t, strings.Index(first, "Toronto"), strings.Index(first, "Tampa"))

	assert.Contains(t, blocks[2], "ranking by distance")
	near := blocks[3]
	assert.Less(t, strings.Index(near, "Tampa"), strings.Index(near, "Toronto"))

	assert.Contains(t, blocks[4], "ranking by population")
	again := blocks[5]
	assert.Less(t, strings.Index(again, "Toronto"), strings.Index(again, "Tampa"))
}

func TestREPLMessages(t *testing.T) {
	out := runREPL(t, "\nzurich\n:stats\n:near x\n:quit\nt\n")

	assert.Contains(t, out, "2 cities loaded")
	assert.Contains(t, out, "no cities start with 'zurich'")
	assert.Contains(t, out, "records    2")
	assert.Contains(t, out, "duplicates 0")
	assert.NotContains(t, out, "Toronto", ":quit stops before the last query")
}

func TestRenderSuggestions(t *testing.T) {
	var out bytes.Buffer
	RenderSuggestions(&out, []suggest.Suggestion{
		{Name: "Toronto, Ontario, CA", Latitude: 43.70011, Longitude: -79.4163, Score: 0.9},
		{Name: "Tampa, FL, US", Latitude: 27.94752, Longitude: -82.45843, Score: 0.1},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Toronto, Ontario, CA")
	assert.Contains(t, lines[0], "0.9000")
	assert.Contains(t, lines[1], "(27.94752, -82.45843)")
}

func TestFormatWithCommas(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		2600000:  "2,600,000",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatWithCommas(in))
	}
}

package store

import (
	"testing"

	"github.com/bastiangx/geoserve/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	s := New()
	toronto := geo.Record{Name: "Toronto, Ontario, Canada", Latitude: 43.7, Longitude: -79.42, Population: 3000000}

	require.True(t, s.Put(toronto))

	got, ok := s.Get("Toronto, Ontario, Canada")
	require.True(t, ok)
	assert.Equal(t, toronto, got)
	assert.Equal(t, 1, s.Len())
}

func TestGetMissing(t *testing.T) {
	s := New()
	s.Put(geo.Record{Name: "Toronto, Ontario, Canada"})

	for _, name := range []string{"Tor", "Toronto", "Tampa, Florida, USA", ""} {
		_, ok := s.Get(name)
		assert.False(t, ok, name)
	}
}

func TestFirstWriteWins(t *testing.T) {
	s := New()
	first := geo.Record{Name: "Springfield, IL, US", Latitude: 39.8, Longitude: -89.64, Population: 116250}
	second := geo.Record{Name: "Springfield, IL, US", Latitude: 0, Longitude: 0, Population: 1}

	assert.True(t, s.Put(first))
	assert.False(t, s.Put(second))

	got, ok := s.Get(first.Name)
	require.True(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, 1, s.Len())
}

func TestNestedNames(t *testing.T) {
	s := New()
	s.Put(geo.Record{Name: "Paris", Population: 1})
	s.Put(geo.Record{Name: "Paris, TX, US", Population: 2})
	s.Put(geo.Record{Name: "Par", Population: 3})

	for name, pop := range map[string]int64{"Paris": 1, "Paris, TX, US": 2, "Par": 3} {
		got, ok := s.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, pop, got.Population)
	}
	assert.ElementsMatch(t, []string{"Par", "Paris", "Paris, TX, US"}, s.Names())
}

func TestEmptyNameRejected(t *testing.T) {
	s := New()
	assert.False(t, s.Put(geo.Record{}))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Names())
}

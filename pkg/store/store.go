// Package store keeps the full record for every indexed name.
package store

import (
	"github.com/bastiangx/geoserve/pkg/geo"
	"github.com/tchap/go-patricia/v2/patricia"
)

// RecordStore maps a full name to its record. The first record put under a
// name is kept; later ones with the same name are dropped.
// Put is not safe for concurrent use; Get is, once building is done.
type RecordStore struct {
	trie  *patricia.Trie
	count int
}

// New returns an empty store.
func New() *RecordStore {
	return &RecordStore{trie: patricia.NewTrie()}
}

// Put stores rec unless its name is already taken.
// Returns false when rec was discarded as a duplicate.
func (s *RecordStore) Put(rec geo.Record) bool {
	if rec.Name == "" {
		return false
	}
	if !s.trie.Insert(patricia.Prefix(rec.Name), rec) {
		return false
	}
	s.count++
	return true
}

// Get returns the record stored under name.
func (s *RecordStore) Get(name string) (geo.Record, bool) {
	if name == "" {
		return geo.Record{}, false
	}
	item := s.trie.Get(patricia.Prefix(name))
	if item == nil {
		return geo.Record{}, false
	}
	rec, ok := item.(geo.Record)
	return rec, ok
}

// Len returns the number of stored records.
func (s *RecordStore) Len() int {
	return s.count
}

// Names returns every stored name, in no particular order.
func (s *RecordStore) Names() []string {
	names := make([]string, 0, s.count)
	_ = s.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		names = append(names, string(p))
		return nil
	})
	return names
}

// Package trie implements the prefix index the suggestion engine matches
// city names against.
//
// The index is built once and then only read. It keeps names exactly as they
// were inserted: "Toronto" and "toronto" are different keys, so callers that
// want friendlier matching normalize the query before calling in.
package trie

// node is a single rune step in the index.
type node struct {
	children map[rune]*node
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// PrefixIndex is a rune trie over full names.
// Insert is not safe for concurrent use; once building is done, any number of
// goroutines may call MatchesWithPrefix.
type PrefixIndex struct {
	root  *node
	count int
}

// New returns an empty index.
func New() *PrefixIndex {
	return &PrefixIndex{root: newNode()}
}

// Insert adds name to the index. Inserting the same name twice has no further effect.
func (t *PrefixIndex) Insert(name string) {
	if name == "" {
		return
	}
	current := t.root
	for _, r := range name {
		child, ok := current.children[r]
		if !ok {
			child = newNode()
			current.children[r] = child
		}
		current = child
	}
	if !current.terminal {
		current.terminal = true
		t.count++
	}
}

// Len returns the number of distinct names in the index.
func (t *PrefixIndex) Len() int {
	return t.count
}

// Contains reports whether name was inserted as a full name.
func (t *PrefixIndex) Contains(name string) bool {
	n := t.find(name)
	return n != nil && n.terminal
}

// frame is one pending subtree visit. Each frame owns its path.
type frame struct {
	n    *node
	path []rune
}

// MatchesWithPrefix returns every inserted name starting with prefix, in no
// particular order. A prefix with no match gives an empty slice; the empty
// prefix gives every name.
func (t *PrefixIndex) MatchesWithPrefix(prefix string) []string {
	start := t.find(prefix)
	if start == nil {
		return []string{}
	}

	var matches []string
	stack := []frame{{n: start, path: []rune(prefix)}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.n.terminal {
			matches = append(matches, string(top.path))
		}
		for r, child := range top.n.children {
			path := make([]rune, len(top.path), len(top.path)+1)
			copy(path, top.path)
			stack = append(stack, frame{n: child, path: append(path, r)})
		}
	}

	if matches == nil {
		return []string{}
	}
	return matches
}

// find walks one node per rune of key and returns nil when the path breaks.
func (t *PrefixIndex) find(key string) *node {
	current := t.root
	for _, r := range key {
		child, ok := current.children[r]
		if !ok {
			return nil
		}
		current = child
	}
	return current
}

// Package mapfile maintains the hash-to-character mapping consumed by
// DRCS-substituting subtitle renderers: an insertion-ordered table of
// 32-digit glyph hashes and substitute strings, plus the newline file
// format it is stored in.
package mapfile

import (
	"strings"
	"sync"
)

// Entry associates one glyph hash with its substitute string.
type Entry struct {
	Hash string
	Char string
}

// Table represents an insertion-ordered hash-to-character mapping.
// First write wins: adding a hash that is already present leaves the
// table unchanged, which makes the table itself the duplicate filter
// when merging an existing file with freshly converted glyphs. Hashes
// are normalized to uppercase on the way in.
type Table struct {
	keys  []string
	chars map[string]string
	mu    sync.RWMutex
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{
		keys:  make([]string, 0),
		chars: make(map[string]string),
	}
}

// Add records a hash-to-character mapping and reports whether it was
// new. A hash already in the table keeps its original character.
func (t *Table) Add(hash, char string) bool {
	hash = strings.ToUpper(hash)
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.chars[hash]; exists {
		return false
	}
	t.keys = append(t.keys, hash)
	t.chars[hash] = char
	return true
}

// Get retrieves the character mapped to a hash.
func (t *Table) Get(hash string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	char, exists := t.chars[strings.ToUpper(hash)]
	return char, exists
}

// Has reports whether a hash is already mapped.
func (t *Table) Has(hash string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, exists := t.chars[strings.ToUpper(hash)]
	return exists
}

// Entries returns a copy of the mapping in insertion order.
func (t *Table) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := make([]Entry, 0, len(t.keys))
	for _, k := range t.keys {
		entries = append(entries, Entry{Hash: k, Char: t.chars[k]})
	}
	return entries
}

// Iterate calls the provided function for each mapping in insertion
// order.
func (t *Table) Iterate(f func(hash, char string)) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, k := range t.keys {
		f(k, t.chars[k])
	}
}

// Len returns the number of mappings in the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.keys)
}

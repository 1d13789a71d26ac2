package symbols

import (
	"sort"
)

type tableKey struct {
	kind SymbolKind
	name string
}

// Table maps (kind, name) to a Symbol. Insertion order is irrelevant; the
// same table instance can back the file-global scope or one production's
// private parameter scope.
type Table struct {
	entries map[tableKey]*Symbol
}

func NewTable() *Table {
	return &Table{entries: make(map[tableKey]*Symbol)}
}

// Declare fetches the existing symbol for (kind, name) or mints a new one
// with the given parent. The second result reports whether a new symbol was
// created. Re-declaring under the same name always yields the same symbol:
// a production defined in several places keeps one identity.
func (t *Table) Declare(m *Minter, kind SymbolKind, name string, parent *Symbol) (*Symbol, bool) {
	key := tableKey{kind: kind, name: name}
	if sym, ok := t.entries[key]; ok {
		return sym, false
	}
	sym := m.New(kind, name, parent)
	t.entries[key] = sym
	return sym, true
}

// Resolve returns the symbol for (meaning, name), or nil.
func (t *Table) Resolve(name string, meaning SymbolKind) *Symbol {
	if t == nil {
		return nil
	}
	return t.entries[tableKey{kind: meaning, name: name}]
}

// CopyTo merges every entry of t into dst. Existing entries in dst win, so
// composing multi-file grammars keeps the first declaration's identity.
func (t *Table) CopyTo(dst *Table) {
	for key, sym := range t.entries {
		if _, exists := dst.entries[key]; !exists {
			dst.entries[key] = sym
		}
	}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Symbols returns the table's symbols ordered by id, for deterministic
// iteration in tests and dumps.
func (t *Table) Symbols() []*Symbol {
	if t == nil {
		return nil
	}
	out := make([]*Symbol, 0, len(t.entries))
	for _, sym := range t.entries {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

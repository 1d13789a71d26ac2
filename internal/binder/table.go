package binder

import (
	"gram/internal/ast"
	"gram/internal/symbols"
)

// BindingTable is the side-table store of one compilation. Nodes stay free
// of parent links and symbols by design; everything the later phases need
// to navigate upward or across files lives here, keyed by node identity.
//
// Таблица одна на компиляцию: связывание нескольких файлов в неё
// складывается последовательно, и расщеплённые продукции из разных файлов
// сходятся к одному символу.
type BindingTable struct {
	parents     map[ast.Node]ast.Node
	nodeSymbols map[ast.Node]*symbols.Symbol

	declarations map[*symbols.Symbol][]ast.Node
	references   map[*symbols.Symbol][]ast.Node
	refSeen      map[refKey]struct{}

	// scopes holds the private parameter table of each production symbol,
	// created lazily on the first parameter declaration.
	scopes map[*symbols.Symbol]*symbols.Table

	globals *symbols.Table
	minter  *symbols.Minter

	bound map[string]struct{} // file paths already bound into this table
}

type refKey struct {
	sym  *symbols.Symbol
	node ast.Node
}

func NewBindingTable() *BindingTable {
	return &BindingTable{
		parents:      make(map[ast.Node]ast.Node),
		nodeSymbols:  make(map[ast.Node]*symbols.Symbol),
		declarations: make(map[*symbols.Symbol][]ast.Node),
		references:   make(map[*symbols.Symbol][]ast.Node),
		refSeen:      make(map[refKey]struct{}),
		scopes:       make(map[*symbols.Symbol]*symbols.Table),
		globals:      symbols.NewTable(),
		minter:       symbols.NewMinter(),
		bound:        make(map[string]struct{}),
	}
}

// Parent returns the parent of n, or nil for roots and unbound nodes.
func (t *BindingTable) Parent(n ast.Node) ast.Node {
	return t.parents[n]
}

// SymbolOf returns the symbol attached to n: the declared symbol for
// declaration sites, nil for everything else.
func (t *BindingTable) SymbolOf(n ast.Node) *symbols.Symbol {
	return t.nodeSymbols[n]
}

// Declarations returns every declaration site recorded for sym, in binding
// order. A production defined in several places has several entries.
func (t *BindingTable) Declarations(sym *symbols.Symbol) []ast.Node {
	return t.declarations[sym]
}

// References returns the recorded reference sites of sym, deduplicated.
func (t *BindingTable) References(sym *symbols.Symbol) []ast.Node {
	return t.references[sym]
}

// RecordReference remembers that node references sym. Recording the same
// pair again is a no-op.
func (t *BindingTable) RecordReference(sym *symbols.Symbol, node ast.Node) {
	key := refKey{sym: sym, node: node}
	if _, dup := t.refSeen[key]; dup {
		return
	}
	t.refSeen[key] = struct{}{}
	t.references[sym] = append(t.references[sym], node)
}

// Globals returns the file-global scope shared by every bound file.
func (t *BindingTable) Globals() *symbols.Table {
	return t.globals
}

// Scope returns sym's private scope, or nil when sym declares nothing.
func (t *BindingTable) Scope(sym *symbols.Symbol) *symbols.Table {
	return t.scopes[sym]
}

// scopeFor returns sym's private scope, creating it on first use.
func (t *BindingTable) scopeFor(sym *symbols.Symbol) *symbols.Table {
	if scope, ok := t.scopes[sym]; ok {
		return scope
	}
	scope := symbols.NewTable()
	t.scopes[sym] = scope
	return scope
}

// ResolveSymbol resolves name with the given meaning from the position of
// location: ancestor declaration scopes are searched innermost-first, then
// the global scope. Returns nil when nothing declares the name.
func (t *BindingTable) ResolveSymbol(location ast.Node, name string, meaning symbols.SymbolKind) *symbols.Symbol {
	for n := location; n != nil; n = t.parents[n] {
		owner := t.nodeSymbols[n]
		if owner == nil {
			continue
		}
		if sym := t.scopes[owner].Resolve(name, meaning); sym != nil {
			return sym
		}
	}
	return t.globals.Resolve(name, meaning)
}

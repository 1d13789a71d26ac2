package binder

import (
	"gram/internal/ast"
	"gram/internal/symbols"
)

// Binder populates a BindingTable from parsed source files. It declares
// symbols and records structure; resolving references is left to the
// checker, which reports what it cannot find.
type Binder struct {
	table *BindingTable
}

func New(table *BindingTable) *Binder {
	return &Binder{table: table}
}

// BindSourceFile records parent links for every node of sf, declares the
// file itself, its productions, and their parameters, and attaches symbols
// to the declaration sites. Every declaration site and its name identifier
// is also recorded as a reference of its own symbol, so References lists
// definitions alongside uses. Binding a file path that is already in the
// table is a no-op, so re-entrant import graphs stay consistent.
func (b *Binder) BindSourceFile(sf *ast.SourceFile) {
	if _, done := b.table.bound[sf.Path]; done {
		return
	}
	b.table.bound[sf.Path] = struct{}{}

	b.bindParents(sf)

	fileSym, _ := b.table.globals.Declare(b.table.minter, symbols.SymbolSourceFile, sf.Path, nil)
	b.table.nodeSymbols[sf] = fileSym
	b.table.declarations[fileSym] = append(b.table.declarations[fileSym], sf)
	b.table.RecordReference(fileSym, sf)

	for _, el := range sf.Elements {
		if prod, ok := el.(*ast.Production); ok {
			b.bindProduction(fileSym, prod)
		}
	}
}

func (b *Binder) bindParents(n ast.Node) {
	for _, c := range ast.Children(n) {
		b.table.parents[c] = n
		b.bindParents(c)
	}
}

// bindProduction declares prod's symbol in the global scope. Split
// definitions of the same name converge on one symbol and accumulate
// declaration sites; parameters go into the production's private scope.
func (b *Binder) bindProduction(fileSym *symbols.Symbol, prod *ast.Production) {
	if prod.Name == nil || prod.Name.Text == "" {
		return // error production, nothing to declare
	}

	sym, _ := b.table.globals.Declare(b.table.minter, symbols.SymbolProduction, prod.Name.Text, fileSym)
	b.table.nodeSymbols[prod] = sym
	b.table.nodeSymbols[prod.Name] = sym
	b.table.declarations[sym] = append(b.table.declarations[sym], prod)
	b.table.RecordReference(sym, prod)
	b.table.RecordReference(sym, prod.Name)

	if prod.Params == nil {
		return
	}
	scope := b.table.scopeFor(sym)
	for _, param := range prod.Params.Elements {
		if param.Name == nil || param.Name.Text == "" {
			continue
		}
		psym, _ := scope.Declare(b.table.minter, symbols.SymbolParameter, param.Name.Text, sym)
		b.table.nodeSymbols[param] = psym
		b.table.nodeSymbols[param.Name] = psym
		b.table.declarations[psym] = append(b.table.declarations[psym], param)
		b.table.RecordReference(psym, param)
		b.table.RecordReference(psym, param.Name)
	}
}

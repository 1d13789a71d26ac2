package binder_test

import (
	"context"
	"testing"

	"gram/internal/ast"
	"gram/internal/binder"
	"gram/internal/parser"
	"gram/internal/source"
	"gram/internal/symbols"
)

func parseFile(t *testing.T, name, input string) *ast.SourceFile {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(input))
	sf, err := parser.ParseSourceFile(context.Background(), fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if sf.Bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", sf.Bag.Items())
	}
	return sf
}

func TestBindDeclaresProductionsAndParameters(t *testing.T) {
	sf := parseFile(t, "g.grammar", "A[In, Yield] : B[+In]")
	table := binder.NewBindingTable()
	binder.New(table).BindSourceFile(sf)

	prodSym := table.Globals().Resolve("A", symbols.SymbolProduction)
	if prodSym == nil {
		t.Fatal("production A not declared")
	}
	if got := len(table.Declarations(prodSym)); got != 1 {
		t.Fatalf("declarations = %d, want 1", got)
	}

	scope := table.Scope(prodSym)
	if scope == nil {
		t.Fatal("production with parameters must own a scope")
	}
	in := scope.Resolve("In", symbols.SymbolParameter)
	if in == nil || in.Parent != prodSym {
		t.Fatalf("parameter In = %+v", in)
	}
	if scope.Resolve("Yield", symbols.SymbolParameter) == nil {
		t.Fatal("parameter Yield not declared")
	}

	// B is referenced, not declared: no production symbol yet.
	if table.Globals().Resolve("B", symbols.SymbolProduction) != nil {
		t.Fatal("reference must not declare")
	}
}

func TestBindRecordsDeclarationReferences(t *testing.T) {
	sf := parseFile(t, "g.grammar", "A[In] : `x`")
	table := binder.NewBindingTable()
	binder.New(table).BindSourceFile(sf)

	prod := sf.Elements[0].(*ast.Production)
	prodSym := table.Globals().Resolve("A", symbols.SymbolProduction)
	if prodSym == nil {
		t.Fatal("production A not declared")
	}
	wantRefs(t, table.References(prodSym), prod, prod.Name)

	param := prod.Params.Elements[0]
	psym := table.SymbolOf(param)
	if psym == nil {
		t.Fatal("parameter In carries no symbol")
	}
	wantRefs(t, table.References(psym), ast.Node(param), param.Name)

	fileSym := table.SymbolOf(sf)
	if fileSym == nil {
		t.Fatal("source file carries no symbol")
	}
	wantRefs(t, table.References(fileSym), sf)
}

// wantRefs asserts every node of want is among refs.
func wantRefs(t *testing.T, refs []ast.Node, want ...ast.Node) {
	t.Helper()
	seen := make(map[ast.Node]struct{}, len(refs))
	for _, r := range refs {
		seen[r] = struct{}{}
	}
	for _, n := range want {
		if _, ok := seen[n]; !ok {
			t.Fatalf("references %v miss %v (%T)", refs, n, n)
		}
	}
}

func TestParentLinks(t *testing.T) {
	sf := parseFile(t, "g.grammar", "A : `x`")
	table := binder.NewBindingTable()
	binder.New(table).BindSourceFile(sf)

	prod := sf.Elements[0].(*ast.Production)
	if table.Parent(prod) != ast.Node(sf) {
		t.Fatal("production's parent must be the source file")
	}
	if table.Parent(prod.Name) != ast.Node(prod) {
		t.Fatal("name's parent must be the production")
	}
	if table.Parent(sf) != nil {
		t.Fatal("root has no parent")
	}
}

func TestRebindIsIdempotent(t *testing.T) {
	sf := parseFile(t, "g.grammar", "A[In] : `x`")
	table := binder.NewBindingTable()
	b := binder.New(table)
	b.BindSourceFile(sf)
	b.BindSourceFile(sf)

	prodSym := table.Globals().Resolve("A", symbols.SymbolProduction)
	if got := len(table.Declarations(prodSym)); got != 1 {
		t.Fatalf("declarations after rebind = %d, want 1", got)
	}
	// declaration-site references are deduplicated, not doubled
	if got := len(table.References(prodSym)); got != 2 {
		t.Fatalf("references after rebind = %d, want 2", got)
	}
}

func TestSplitProductionSharesOneSymbol(t *testing.T) {
	first := parseFile(t, "one.grammar", "A : `x`")
	second := parseFile(t, "two.grammar", "A : `y`")

	table := binder.NewBindingTable()
	b := binder.New(table)
	b.BindSourceFile(first)
	b.BindSourceFile(second)

	sym := table.Globals().Resolve("A", symbols.SymbolProduction)
	if sym == nil {
		t.Fatal("A not declared")
	}
	if got := len(table.Declarations(sym)); got != 2 {
		t.Fatalf("declarations = %d, want 2", got)
	}
	for _, decl := range table.Declarations(sym) {
		if table.SymbolOf(decl) != sym {
			t.Fatal("both declaration sites must carry the shared symbol")
		}
	}
}

func TestResolveSymbolWalksAncestors(t *testing.T) {
	sf := parseFile(t, "g.grammar", "A[In] : B[+In]")
	table := binder.NewBindingTable()
	binder.New(table).BindSourceFile(sf)

	// Find the nonterminal reference B inside the right-hand side.
	var ref *ast.Nonterminal
	ast.Walk(sf, func(n ast.Node) bool {
		if nt, ok := n.(*ast.Nonterminal); ok && nt.Name.Text == "B" {
			ref = nt
		}
		return true
	})
	if ref == nil {
		t.Fatal("reference B not found in tree")
	}

	if table.ResolveSymbol(ref, "In", symbols.SymbolParameter) == nil {
		t.Fatal("parameter In must be visible from inside the production")
	}
	if table.ResolveSymbol(ref, "A", symbols.SymbolProduction) == nil {
		t.Fatal("global production must be visible from inside the production")
	}
	if table.ResolveSymbol(ref, "Out", symbols.SymbolParameter) != nil {
		t.Fatal("undeclared parameter must resolve to nil")
	}
}

func TestRecordReferenceDeduplicates(t *testing.T) {
	sf := parseFile(t, "g.grammar", "A : `x`")
	table := binder.NewBindingTable()
	binder.New(table).BindSourceFile(sf)

	sym := table.Globals().Resolve("A", symbols.SymbolProduction)
	before := len(table.References(sym))
	table.RecordReference(sym, sf)
	table.RecordReference(sym, sf)
	if got := len(table.References(sym)); got != before+1 {
		t.Fatalf("references = %d, want %d", got, before+1)
	}
}

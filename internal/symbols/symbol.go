package symbols

// SymbolKind classifies a named declaration site.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	// SymbolSourceFile names a grammar file in the file-global scope.
	SymbolSourceFile
	// SymbolProduction names a production; split definitions share one symbol.
	SymbolProduction
	// SymbolParameter names a parameter inside its production's private scope.
	SymbolParameter
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolSourceFile:
		return "source file"
	case SymbolProduction:
		return "production"
	case SymbolParameter:
		return "parameter"
	default:
		return "invalid"
	}
}

// SymbolID identifies a symbol within one compilation. IDs start at 1.
type SymbolID uint32

const NoSymbolID SymbolID = 0

// Symbol is a named declaration site. Parent is a weak back-reference to the
// enclosing symbol (the file for productions, the production for
// parameters); ownership stays with the minting compilation.
type Symbol struct {
	ID     SymbolID
	Kind   SymbolKind
	Name   string
	Parent *Symbol
}

// Minter hands out symbol identities for one compilation session.
// Like the AST factory, minters are never shared across compilations.
type Minter struct {
	next SymbolID
}

func NewMinter() *Minter {
	return &Minter{next: 1}
}

func (m *Minter) New(kind SymbolKind, name string, parent *Symbol) *Symbol {
	id := m.next
	m.next++
	return &Symbol{ID: id, Kind: kind, Name: name, Parent: parent}
}

package checker

import (
	"gram/internal/ast"
	"gram/internal/binder"
	"gram/internal/diag"
	"gram/internal/symbols"
	"gram/internal/token"
)

// Known `@define` option keys and the checks they relax.
const (
	DefineNoStrictParametricProductions = "noStrictParametricProductions"
	DefineNoUnusedParameters            = "noUnusedParameters"
)

var knownDefines = map[string]struct{}{
	DefineNoStrictParametricProductions: {},
	DefineNoUnusedParameters:            {},
}

// Checker validates bound source files against the shared binding table:
// unresolved nonterminal references, argument lists that disagree with the
// target's parameters, assertions naming undeclared parameters, duplicate
// parameters, unknown option keys. Resolved references are recorded back
// into the table, which the unused-parameter pass reads afterwards.
type Checker struct {
	table *binder.BindingTable
	fmtr  diag.Formatter

	// file-local option values, keyed by file path
	defines map[string]map[string]string
}

func New(table *binder.BindingTable, formatter diag.Formatter) *Checker {
	if formatter == nil {
		formatter = diag.DefaultFormatter{}
	}
	return &Checker{
		table:   table,
		fmtr:    formatter,
		defines: make(map[string]map[string]string),
	}
}

func (c *Checker) report(r diag.Reporter, code diag.Code, n ast.Node, args ...any) {
	info := diag.Info(code)
	r.Report(code, info.Severity, n.Span(), c.fmtr.Format(code, args...), nil)
}

func (c *Checker) defined(sf *ast.SourceFile, key string) bool {
	return c.defines[sf.Path][key] == "true"
}

// CheckSourceFile runs every per-file check on sf, reporting through r.
// The file must already be bound into the checker's table.
func (c *Checker) CheckSourceFile(sf *ast.SourceFile, r diag.Reporter) {
	c.collectDefines(sf, r)
	for _, el := range sf.Elements {
		if prod, ok := el.(*ast.Production); ok {
			c.checkProduction(sf, prod, r)
		}
	}
}

// collectDefines validates `@define` keys and remembers the values so the
// relaxation switches apply to the rest of the file's checks.
func (c *Checker) collectDefines(sf *ast.SourceFile, r diag.Reporter) {
	if c.defines[sf.Path] != nil {
		return
	}
	values := make(map[string]string)
	c.defines[sf.Path] = values
	for _, el := range sf.Elements {
		def, ok := el.(*ast.Define)
		if !ok || def.Key == nil {
			continue
		}
		if _, known := knownDefines[def.Key.Text]; !known {
			c.report(r, diag.ChkUnknownDefineKey, def.Key, def.Key.Text)
			continue
		}
		if def.Value != nil {
			values[def.Key.Text] = def.Value.Text
		}
	}
}

func (c *Checker) checkProduction(sf *ast.SourceFile, prod *ast.Production, r diag.Reporter) {
	if prod.Params != nil {
		seen := make(map[string]struct{}, len(prod.Params.Elements))
		for _, param := range prod.Params.Elements {
			if param.Name == nil || param.Name.Text == "" {
				continue
			}
			if _, dup := seen[param.Name.Text]; dup {
				c.report(r, diag.ChkDuplicateParameter, param.Name, param.Name.Text)
				continue
			}
			seen[param.Name.Text] = struct{}{}
		}
	}
	if prod.Body == nil {
		return
	}
	ast.Walk(prod.Body, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Nonterminal:
			c.checkNonterminal(sf, v, r)
			return false // arguments are checked against the target's scope
		case *ast.ParameterValueAssertion:
			c.checkParameterName(v, v.Name, r)
			return false
		}
		return true
	})
}

// checkNonterminal resolves a reference, records it, and validates its
// argument list against the target production's parameters.
func (c *Checker) checkNonterminal(sf *ast.SourceFile, ref *ast.Nonterminal, r diag.Reporter) {
	if ref.Name == nil || ref.Name.Text == "" {
		return
	}
	target := c.table.ResolveSymbol(ref, ref.Name.Text, symbols.SymbolProduction)
	if target == nil {
		c.report(r, diag.ChkUndefinedNonterminal, ref.Name, ref.Name.Text)
		return
	}
	c.table.RecordReference(target, ref)

	if ref.Args == nil {
		return
	}
	targetScope := c.table.Scope(target)
	if !c.defined(sf, DefineNoStrictParametricProductions) {
		want := targetScope.Len()
		if got := len(ref.Args.Elements); got != want {
			c.report(r, diag.ChkArgumentCountMismatch, ref.Args, target.Name, want, got)
		}
	}
	for _, arg := range ref.Args.Elements {
		if arg.Name == nil || arg.Name.Text == "" {
			continue
		}
		param := targetScope.Resolve(arg.Name.Text, symbols.SymbolParameter)
		if param == nil {
			c.report(r, diag.ChkUndefinedParameter, arg.Name, arg.Name.Text)
			continue
		}
		c.table.RecordReference(param, arg)
		// '?' passes the caller's own parameter through: it must exist
		// on the referencing side as well.
		if arg.Operator == token.Question {
			if own := c.table.ResolveSymbol(ref, arg.Name.Text, symbols.SymbolParameter); own == nil {
				c.report(r, diag.ChkUndefinedParameter, arg.Name, arg.Name.Text)
			} else {
				c.table.RecordReference(own, arg)
			}
		}
	}
}

func (c *Checker) checkParameterName(at ast.Node, name *ast.Identifier, r diag.Reporter) {
	if name == nil || name.Text == "" {
		return
	}
	param := c.table.ResolveSymbol(at, name.Text, symbols.SymbolParameter)
	if param == nil {
		c.report(r, diag.ChkUndefinedParameter, name, name.Text)
		return
	}
	c.table.RecordReference(param, at)
}

// ReportUnusedParameters warns on parameters of sf's productions that no
// recorded reference outside the declaration itself ever touches. Run after
// every file in the compilation has been checked, so cross-file uses of
// split productions count.
func (c *Checker) ReportUnusedParameters(sf *ast.SourceFile, r diag.Reporter) {
	c.collectDefines(sf, diag.NopReporter{})
	if c.defined(sf, DefineNoUnusedParameters) {
		return
	}
	for _, el := range sf.Elements {
		prod, ok := el.(*ast.Production)
		if !ok || prod.Params == nil {
			continue
		}
		for _, param := range prod.Params.Elements {
			psym := c.table.SymbolOf(param)
			if psym == nil {
				continue
			}
			if !c.usedOutsideDeclaration(psym) {
				c.report(r, diag.ChkUnusedParameter, param.Name, param.Name.Text)
			}
		}
	}
}

// usedOutsideDeclaration reports whether any recorded reference of psym is
// something other than a declaration site or its name identifier. The binder
// registers declarations as references of their own symbol, so a bare
// non-empty reference list does not mean the symbol is used.
func (c *Checker) usedOutsideDeclaration(psym *symbols.Symbol) bool {
	own := make(map[ast.Node]struct{})
	for _, decl := range c.table.Declarations(psym) {
		own[decl] = struct{}{}
		if p, ok := decl.(*ast.Parameter); ok && p.Name != nil {
			own[p.Name] = struct{}{}
		}
	}
	for _, ref := range c.table.References(psym) {
		if _, self := own[ref]; !self {
			return true
		}
	}
	return false
}

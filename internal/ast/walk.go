package ast

// Children returns n's direct children in document order. Absent optional
// children are skipped; the result is freshly allocated.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}

	switch v := n.(type) {
	case *SourceFile:
		out = append(out, v.Elements...)
	case *Import:
		if v.Path != nil {
			add(v.Path)
		}
	case *Define:
		if v.Key != nil {
			add(v.Key)
		}
		if v.Value != nil {
			add(v.Value)
		}
	case *Production:
		if v.Name != nil {
			add(v.Name)
		}
		if v.Params != nil {
			add(v.Params)
		}
		add(v.Body)
	case *ParameterList:
		for _, p := range v.Elements {
			add(p)
		}
	case *Parameter:
		if v.Name != nil {
			add(v.Name)
		}
	case *ArgumentList:
		for _, a := range v.Elements {
			add(a)
		}
	case *Argument:
		if v.Name != nil {
			add(v.Name)
		}
	case *UnicodeCharacterRange:
		if v.Left != nil {
			add(v.Left)
		}
		if v.Right != nil {
			add(v.Right)
		}
	case *Nonterminal:
		if v.Name != nil {
			add(v.Name)
		}
		if v.Args != nil {
			add(v.Args)
		}
	case *OneOfSymbol:
		out = append(out, v.Symbols...)
	case *ButNotSymbol:
		add(v.Left)
		add(v.Right)
	case *SymbolSpan:
		out = append(out, v.Symbols...)
	case *RightHandSide:
		if v.Symbols != nil {
			add(v.Symbols)
		}
		if v.Reference != nil {
			add(v.Reference)
		}
	case *RightHandSideList:
		for _, r := range v.Elements {
			add(r)
		}
	case *OneOfList:
		out = append(out, v.Terminals...)
	case *LookaheadAssertion:
		add(v.Lookahead)
	case *SymbolSet:
		for _, s := range v.Elements {
			add(s)
		}
	case *NoSymbolHereAssertion:
		out = append(out, v.Symbols...)
	case *LexicalGoalAssertion:
		if v.Symbol != nil {
			add(v.Symbol)
		}
	case *ParameterValueAssertion:
		if v.Name != nil {
			add(v.Name)
		}
	case *ProseAssertion:
		out = append(out, v.Fragments...)
	case *Prose:
		out = append(out, v.Fragments...)
	}
	return out
}

// Walk visits n and every descendant depth-first in document order.
// Returning false from fn prunes the subtree below the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// FirstChild returns the first child of n, or nil.
func FirstChild(n Node) Node {
	children := Children(n)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// LastChild returns the last child of n, or nil.
func LastChild(n Node) Node {
	children := Children(n)
	if len(children) == 0 {
		return nil
	}
	return children[len(children)-1]
}

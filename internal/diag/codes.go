package diag

import (
	"fmt"
)

// Code identifies a diagnostic message. The numeric space is partitioned:
// 1xxx lexical, 2xxx syntactic, 3xxx semantic.
type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar            Code = 1001
	LexUnterminatedString     Code = 1002
	LexUnterminatedTerminal   Code = 1003
	LexInvalidEscape          Code = 1004
	LexInvalidUnicodeLiteral  Code = 1005
	LexUnterminatedHtmlTrivia Code = 1006

	// Парсерные
	SynExpected               Code = 2001
	SynExpectedSourceElement  Code = 2002
	SynExpectedParameter      Code = 2003
	SynExpectedArgument       Code = 2004
	SynExpectedRightHandSide  Code = 2005
	SynExpectedSymbol         Code = 2006
	SynExpectedTerminal       Code = 2007
	SynInvalidAssertion       Code = 2008
	SynInvalidSymbol          Code = 2009
	SynExpectedOperator       Code = 2010
	SynExpectedProductionBody Code = 2011
	SynExpectedMetaElement    Code = 2012

	// Семантические (checker)
	ChkUndefinedNonterminal  Code = 3001
	ChkUndefinedParameter    Code = 3002
	ChkDuplicateParameter    Code = 3003
	ChkArgumentCountMismatch Code = 3004
	ChkUnknownDefineKey      Code = 3005
	ChkUnusedParameter       Code = 3006
)

// CodeInfo pairs a code's default severity with its English message template.
// The template placeholders use fmt verbs; localized message catalogs key on
// the English template text (see internal/messages).
type CodeInfo struct {
	Severity Severity
	Template string
}

var codeTable = map[Code]CodeInfo{
	LexUnknownChar:            {SevError, "unexpected character %q"},
	LexUnterminatedString:     {SevError, "unterminated string literal"},
	LexUnterminatedTerminal:   {SevError, "unterminated terminal literal"},
	LexInvalidEscape:          {SevError, "invalid escape sequence"},
	LexInvalidUnicodeLiteral:  {SevError, "invalid unicode character literal"},
	LexUnterminatedHtmlTrivia: {SevError, "unterminated HTML tag"},

	SynExpected:               {SevError, "expected %s"},
	SynExpectedSourceElement:  {SevError, "expected production, '@import', or '@define'"},
	SynExpectedParameter:      {SevError, "expected parameter name"},
	SynExpectedArgument:       {SevError, "expected argument"},
	SynExpectedRightHandSide:  {SevError, "expected right-hand side of production"},
	SynExpectedSymbol:         {SevError, "expected terminal, nonterminal, or assertion"},
	SynExpectedTerminal:       {SevError, "expected terminal"},
	SynInvalidAssertion:       {SevError, "invalid assertion"},
	SynInvalidSymbol:          {SevError, "invalid symbol"},
	SynExpectedOperator:       {SevError, "expected '==', '!=', '∈', or '∉'"},
	SynExpectedProductionBody: {SevError, "expected production body"},
	SynExpectedMetaElement:    {SevError, "expected 'import' or 'define' after '@'"},

	ChkUndefinedNonterminal:  {SevError, "cannot find name %q"},
	ChkUndefinedParameter:    {SevError, "parameter %q is not declared"},
	ChkDuplicateParameter:    {SevError, "duplicate parameter %q"},
	ChkArgumentCountMismatch: {SevError, "production %q expects %d arguments, got %d"},
	ChkUnknownDefineKey:      {SevError, "unknown @define key %q"},
	ChkUnusedParameter:       {SevWarning, "parameter %q is never used"},
}

// Info returns the catalog entry for code. Unknown codes degrade to an
// error-severity placeholder instead of panicking.
func Info(code Code) CodeInfo {
	if info, ok := codeTable[code]; ok {
		return info
	}
	return CodeInfo{SevError, fmt.Sprintf("diagnostic GD%04d", uint16(code))}
}

// Codes returns every known code; the order is unspecified.
func Codes() []Code {
	out := make([]Code, 0, len(codeTable))
	for c := range codeTable {
		out = append(out, c)
	}
	return out
}

// ID renders the code in its user-facing form, e.g. "GD2001".
func (c Code) ID() string {
	return fmt.Sprintf("GD%04d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}

// Formatter renders a code plus arguments into final message text.
// The default formatter uses the built-in English templates; localized
// catalogs (internal/messages) provide overriding implementations.
type Formatter interface {
	Format(code Code, args ...any) string
}

// DefaultFormatter formats with the built-in English templates.
type DefaultFormatter struct{}

func (DefaultFormatter) Format(code Code, args ...any) string {
	info := Info(code)
	if len(args) == 0 {
		return info.Template
	}
	return fmt.Sprintf(info.Template, args...)
}

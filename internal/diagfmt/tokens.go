package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gram/internal/source"
	"gram/internal/token"
)

// TokenJSON представляет один токен для JSON-вывода
type TokenJSON struct {
	Kind      string `json:"kind"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Text      string `json:"text,omitempty"`
	Value     string `json:"value,omitempty"`
}

// FormatTokensPretty пишет по токену на строку: <line>:<col> <kind> <text>.
func FormatTokensPretty(w io.Writer, fs *source.FileSet, toks []token.Token) error {
	for _, tok := range toks {
		start, _ := fs.Resolve(tok.Span)
		if tok.Text == "" {
			if _, err := fmt.Fprintf(w, "%d:%d\t%s\n", start.Line, start.Col, tok.Kind); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%d:%d\t%s\t%q\n", start.Line, start.Col, tok.Kind, tok.Text); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON пишет массив токенов одним JSON-документом.
func FormatTokensJSON(w io.Writer, toks []token.Token) error {
	out := make([]TokenJSON, 0, len(toks))
	for _, tok := range toks {
		out = append(out, TokenJSON{
			Kind:      tok.Kind.String(),
			StartByte: tok.Span.Start,
			EndByte:   tok.Span.End,
			Text:      tok.Text,
			Value:     tok.Value,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

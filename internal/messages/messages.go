// Package messages loads localized diagnostic message catalogs.
//
// A catalog is a JSON file mapping message keys to entries. A key is either
// the default English template of a diagnostic or an obsolete numeric code
// kept for compatibility with older catalogs. An entry is either an object
// `{"code": N, "kind": "error"|"warning"|"message"}` describing the message,
// or a bare string carrying the localized template. Unknown keys never fail
// the load; they are collected as warnings so stale catalogs stay usable.
package messages

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"gram/internal/diag"
)

// filePrefix/fileSuffix задают схему имён: messages.<locale>.json.
const (
	filePrefix = "messages."
	fileSuffix = ".json"
)

// Catalog resolves diagnostic codes to message templates, falling back to
// the built-in English text for codes the catalog does not override.
// Catalog implements diag.Formatter.
type Catalog struct {
	tag       language.Tag
	overrides map[diag.Code]string
	warnings  []string
}

// English returns the catalog of built-in templates with no overrides.
func English() *Catalog {
	return &Catalog{tag: language.English, overrides: map[diag.Code]string{}}
}

// Tag returns the negotiated language of the catalog.
func (c *Catalog) Tag() language.Tag { return c.tag }

// Warnings returns load-time problems: unknown keys, obsolete numeric keys
// that match no current code, malformed entries. Sorted, deduplicated.
func (c *Catalog) Warnings() []string { return c.warnings }

// Format renders code's message, preferring the catalog's localized
// template over the built-in English one.
func (c *Catalog) Format(code diag.Code, args ...any) string {
	tmpl, ok := c.overrides[code]
	if !ok {
		tmpl = diag.Info(code).Template
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// LoadDir discovers messages.<locale>.json files under dir and loads the one
// best matching the requested locale. English (the built-in templates) is
// the fallback when dir holds nothing closer. An empty locale, a missing
// directory, or no catalog files all yield the English catalog.
func LoadDir(dir, locale string) (*Catalog, error) {
	if locale == "" {
		return English(), nil
	}
	paths, err := filepath.Glob(filepath.Join(dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	tags := []language.Tag{language.English}
	byIndex := []string{""} // index 0: built-in English
	for _, p := range paths {
		name := filepath.Base(p)
		code := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		tag, err := language.Parse(code)
		if err != nil {
			continue // не файл каталога
		}
		tags = append(tags, tag)
		byIndex = append(byIndex, p)
	}

	want, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("messages: bad locale %q: %w", locale, err)
	}
	_, idx, _ := language.NewMatcher(tags).Match(want)
	if idx == 0 {
		return English(), nil
	}
	cat, err := LoadFile(byIndex[idx])
	if err != nil {
		return nil, err
	}
	cat.tag = tags[idx]
	return cat, nil
}

// LoadFile parses a single catalog file.
func LoadFile(path string) (*Catalog, error) {
	// #nosec G304 -- path comes from catalog discovery or the CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("messages: %s: %w", path, err)
	}
	return cat, nil
}

// entry is the object form of a catalog value.
type entry struct {
	Code uint16 `json:"code"`
	Kind string `json:"kind"`
}

// Parse decodes catalog JSON. Entries that cannot be applied are skipped
// and recorded in Warnings; only malformed JSON is an error.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	templates := templateIndex()
	cat := &Catalog{tag: language.Und, overrides: make(map[diag.Code]string)}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]

		var override string
		if err := json.Unmarshal(value, &override); err == nil {
			code, ok := resolveKey(key, templates)
			if !ok {
				cat.warn("unknown message key %q ignored", key)
				continue
			}
			cat.overrides[code] = override
			continue
		}

		var e entry
		if err := json.Unmarshal(value, &e); err != nil {
			cat.warn("entry %q is neither a string nor an object", key)
			continue
		}
		code := diag.Code(e.Code)
		if _, known := knownCode(code); !known {
			cat.warn("entry %q names unknown code GD%04d", key, e.Code)
			continue
		}
		if e.Kind != "" && e.Kind != diag.Info(code).Severity.String() {
			cat.warn("entry %q declares kind %q, code %s is %q",
				key, e.Kind, code, diag.Info(code).Severity)
		}
	}
	return cat, nil
}

func (c *Catalog) warn(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// resolveKey maps a catalog key to a diagnostic code: the key is either a
// current English template or an obsolete numeric code.
func resolveKey(key string, templates map[string]diag.Code) (diag.Code, bool) {
	if code, ok := templates[key]; ok {
		return code, true
	}
	if n, err := strconv.ParseUint(key, 10, 16); err == nil {
		return knownCode(diag.Code(n))
	}
	return 0, false
}

func knownCode(code diag.Code) (diag.Code, bool) {
	for _, c := range diag.Codes() {
		if c == code {
			return code, true
		}
	}
	return 0, false
}

// templateIndex inverts the built-in catalog: English template -> code.
func templateIndex() map[string]diag.Code {
	out := make(map[string]diag.Code)
	for _, code := range diag.Codes() {
		out[diag.Info(code).Template] = code
	}
	return out
}

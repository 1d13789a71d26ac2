package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"gram/internal/diag"
	"gram/internal/driver"
	"gram/internal/token"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, text := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestCheckDirCrossFile(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.grammar": "A : B[+In]\n",
		"b.grammar": "B[In] :\n  [+In] `y`\n",
	})

	comp, err := driver.CheckDir(context.Background(), root, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(comp.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(comp.Files))
	}
	// детерминированный порядок: отсортированные пути
	if filepath.Base(comp.Files[0].Path) != "a.grammar" || filepath.Base(comp.Files[1].Path) != "b.grammar" {
		t.Fatalf("order = %s, %s", comp.Files[0].Path, comp.Files[1].Path)
	}
	for _, res := range comp.Files {
		if res.Err != nil {
			t.Fatalf("%s: %v", res.Path, res.Err)
		}
		if res.Bag.Len() != 0 {
			t.Fatalf("%s: diagnostics %v", res.Path, res.Bag.Items())
		}
	}
	if comp.HasErrors() {
		t.Fatal("clean compilation must not report errors")
	}
}

func TestCheckDirReportsDiagnostics(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"g.grammar": "A : Missing\n",
	})

	comp, err := driver.CheckDir(context.Background(), root, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	bag := comp.Files[0].Bag
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ChkUndefinedNonterminal {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
	if !comp.HasErrors() {
		t.Fatal("compilation with an error diagnostic must report errors")
	}
}

func TestParseDirFollowsImports(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"src/main.grammar": "@import \"../lex/defs.grammar\"\nA : B\n",
		"lex/defs.grammar": "B : `b`\n",
	})

	fset, results, err := driver.ParseDir(context.Background(), filepath.Join(root, "src"), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (import must be pulled in)", len(results))
	}
	if filepath.Base(results[1].Path) != "defs.grammar" || results[1].File == nil {
		t.Fatalf("imported file = %+v", results[1])
	}
	if fset.Len() != 2 {
		t.Fatalf("fileset has %d files", fset.Len())
	}

	// и через checker: ссылка на B из импортированного файла разрешается
	comp, err := driver.CheckDir(context.Background(), filepath.Join(root, "src"), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, res := range comp.Files {
		if res.Bag != nil && res.Bag.Len() != 0 {
			t.Fatalf("%s: %v", res.Path, res.Bag.Items())
		}
	}
}

func TestParseDirMissingImport(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"main.grammar": "@import \"missing.grammar\"\nA : `x`\n",
	})

	_, results, err := driver.ParseDir(context.Background(), root, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[1].Err == nil || results[1].File != nil {
		t.Fatalf("missing import must surface as load error, got %+v", results[1])
	}
}

func TestTokenizeDir(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"g.grammar": "A : `x`\n",
	})

	_, results, err := driver.TokenizeDir(context.Background(), root, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d", len(results))
	}
	toks := results[0].Tokens
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("token stream must end at EOF, got %v", toks)
	}
	var sawTerminal bool
	for _, tok := range toks {
		if tok.Kind == token.Terminal {
			sawTerminal = true
		}
	}
	if !sawTerminal {
		t.Fatal("terminal token missing")
	}
}

func TestCheckDirCancellation(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"g.grammar": "A : `x`\n",
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.CheckDir(ctx, root, driver.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

type countingObserver struct {
	mu     sync.Mutex
	files  map[driver.Phase]int
	phases []driver.Phase
}

func (o *countingObserver) FileDone(phase driver.Phase, path string, errs int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.files == nil {
		o.files = make(map[driver.Phase]int)
	}
	o.files[phase]++
}

func (o *countingObserver) PhaseDone(phase driver.Phase) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phases = append(o.phases, phase)
}

func TestObserverSeesEveryPhase(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.grammar": "A : `x`\n",
		"b.grammar": "B : `y`\n",
	})

	obs := &countingObserver{}
	if _, err := driver.CheckDir(context.Background(), root, driver.Options{Observer: obs}); err != nil {
		t.Fatal(err)
	}

	for _, phase := range []driver.Phase{driver.PhaseLoad, driver.PhaseParse, driver.PhaseBind, driver.PhaseCheck} {
		if obs.files[phase] != 2 {
			t.Fatalf("phase %s saw %d files, want 2", phase, obs.files[phase])
		}
	}
	want := []driver.Phase{driver.PhaseLoad, driver.PhaseParse, driver.PhaseBind, driver.PhaseCheck}
	if len(obs.phases) != len(want) {
		t.Fatalf("phase order = %v", obs.phases)
	}
	for i := range want {
		if obs.phases[i] != want[i] {
			t.Fatalf("phase order = %v, want %v", obs.phases, want)
		}
	}
}

func TestJobsOptionIsRespected(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d"} {
		files[name+".grammar"] = "P" + strings.ToUpper(name) + " : `x`\n"
	}
	root := writeFiles(t, files)

	comp, err := driver.CheckDir(context.Background(), root, driver.Options{Jobs: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(comp.Files) != 4 {
		t.Fatalf("files = %d", len(comp.Files))
	}
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// projectManifest is a discovered gram.toml plus its location.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package     packageConfig     `toml:"package"`
	Source      sourceConfig      `toml:"source"`
	Emit        emitConfig        `toml:"emit"`
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type sourceConfig struct {
	// Dir с грамматиками, относительно корня манифеста.
	Dir string `toml:"dir"`
}

type emitConfig struct {
	// Out — каталог для сгенерированных документов; пусто = stdout.
	Out string `toml:"out"`
}

type diagnosticsConfig struct {
	Locale   string `toml:"locale"`
	Messages string `toml:"messages"` // каталог с messages.<locale>.json
	Max      int    `toml:"max"`
}

// findGramToml walks upward from startDir until it finds gram.toml.
func findGramToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "gram.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest discovers and decodes gram.toml. A missing manifest is
// not an error: every setting has a flag or a default.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findGramToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}

// sourceDir returns the grammar directory of the manifest, or "." without one.
func (m *projectManifest) sourceDir() string {
	if m == nil {
		return "."
	}
	dir := strings.TrimSpace(m.Config.Source.Dir)
	if dir == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}

// messagesDir resolves the message-catalog directory relative to the root.
func (m *projectManifest) messagesDir() string {
	if m == nil {
		return ""
	}
	dir := strings.TrimSpace(m.Config.Diagnostics.Messages)
	if dir == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const manifestName = "builtinreg.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config manifestConfig
}

type manifestConfig struct {
	Language languageConfig `toml:"language"`
	Target   targetConfig   `toml:"target"`
	Tables   tablesConfig   `toml:"tables"`
}

type languageConfig struct {
	Dialect        string   `toml:"dialect"`
	GNU            bool     `toml:"gnu"`
	MS             bool     `toml:"ms"`
	OpenCL         bool     `toml:"opencl"`
	NoBuiltin      bool     `toml:"no_builtin"`
	NoBuiltinFuncs []string `toml:"no_builtin_funcs"`
	NoMathBuiltin  bool     `toml:"no_math_builtin"`
}

type targetConfig struct {
	Triple      string `toml:"triple"`
	Features    string `toml:"features"`
	AuxTriple   string `toml:"aux_triple"`
	AuxFeatures string `toml:"aux_features"`
}

type tablesConfig struct {
	Core   []string `toml:"core"`
	Target []string `toml:"target"`
	Aux    []string `toml:"aux"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// loadManifest reads the manifest at path, or discovers one from the working
// directory when path is empty. A missing discovered manifest is not an error.
func loadManifest(path string) (*projectManifest, error) {
	if path == "" {
		found, ok, err := findManifest(".")
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	var cfg manifestConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("target", "aux_features") && cfg.Target.AuxTriple == "" {
		return nil, fmt.Errorf("%s: [target].aux_features set without [target].aux_triple", path)
	}
	m := &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}
	m.Config.Tables.Core = m.resolvePaths(cfg.Tables.Core)
	m.Config.Tables.Target = m.resolvePaths(cfg.Tables.Target)
	m.Config.Tables.Aux = m.resolvePaths(cfg.Tables.Aux)
	return m, nil
}

func (m *projectManifest) resolvePaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, filepath.FromSlash(p))
		}
		out = append(out, p)
	}
	return out
}

// Package catalog loads builtin descriptor tables from TOML files.
//
// A table file is a list of [[builtin]] entries:
//
//	[[builtin]]
//	name     = "__builtin_ia32_pause"
//	type     = "v"
//	attrs    = "n"
//	langs    = ["all_gnu"]
//	header   = ""
//	features = ""
package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"builtinreg/internal/builtins"
)

type tableFile struct {
	Builtin []tableEntry `toml:"builtin"`
}

type tableEntry struct {
	Name     string   `toml:"name"`
	Type     string   `toml:"type"`
	Attrs    string   `toml:"attrs"`
	Header   string   `toml:"header"`
	Langs    []string `toml:"langs"`
	Features string   `toml:"features"`
}

// Parse decodes a table file held in memory. path is used in error messages.
func Parse(path string, data []byte) ([]builtins.Descriptor, error) {
	var tf tableFile
	meta, err := toml.Decode(string(data), &tf)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	out := make([]builtins.Descriptor, 0, len(tf.Builtin))
	for i, e := range tf.Builtin {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: builtin #%d: missing name", path, i+1)
		}
		langs, err := builtins.ParseLangMask(e.Langs)
		if err != nil {
			return nil, fmt.Errorf("%s: builtin %q: %w", path, name, err)
		}
		out = append(out, builtins.Descriptor{
			Name:       name,
			Type:       e.Type,
			Attributes: e.Attrs,
			HeaderName: e.Header,
			Langs:      langs,
			Features:   e.Features,
		})
	}
	return out, nil
}

// ParseFile reads and decodes one table file without caching.
func ParseFile(path string) ([]builtins.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

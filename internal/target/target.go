// Package target describes the compilation targets the registry knows about
// and the builtins each one contributes.
package target

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"builtinreg/internal/builtins"
)

// Info describes one target triple.
type Info struct {
	Triple   string // e.g. "x86_64-linux-gnu"
	Arch     string
	PtrSize  int // bytes
	PtrAlign int // bytes
	Features []string
	Builtins []builtins.Descriptor
}

// FeatureSet returns the enabled features as a set.
func (t Info) FeatureSet() builtins.FeatureSet {
	return builtins.NewFeatureSet(t.Features...)
}

// WithFeatures applies "+feat" / "-feat" edits (comma-separated) to the
// default feature list. A bare name counts as "+name".
func (t Info) WithFeatures(edits string) (Info, error) {
	set := t.FeatureSet()
	for _, edit := range builtins.SplitFeatures(edits) {
		switch {
		case strings.HasPrefix(edit, "-"):
			delete(set, edit[1:])
		case strings.HasPrefix(edit, "+"):
			set[edit[1:]] = true
		default:
			set[edit] = true
		}
	}
	if _, ok := set[""]; ok {
		return Info{}, fmt.Errorf("%s: empty feature name in %q", t.Triple, edits)
	}
	t.Features = slices.Sorted(maps.Keys(set))
	return t, nil
}

// Table converts the target into the registry's table form.
func (t Info) Table() builtins.TargetTable {
	return builtins.TargetTable{
		Triple:   t.Triple,
		Records:  slices.Clone(t.Builtins),
		Features: t.FeatureSet(),
	}
}

// Lookup finds a known target by triple.
func Lookup(triple string) (Info, error) {
	mk, ok := known[triple]
	if !ok {
		return Info{}, fmt.Errorf("unknown target %q (known: %s)", triple, strings.Join(Triples(), ", "))
	}
	return mk(), nil
}

// Triples lists the known target triples, sorted.
func Triples() []string {
	return slices.Sorted(maps.Keys(known))
}

var known = map[string]func() Info{
	"x86_64-linux-gnu":       X86_64LinuxGNU,
	"i686-linux-gnu":         I686LinuxGNU,
	"x86_64-pc-windows-msvc": X86_64WindowsMSVC,
	"aarch64-linux-gnu":      AArch64LinuxGNU,
	"nvptx64-nvidia-cuda":    NVPTX64CUDA,
	"amdgcn-amd-amdhsa":      AMDGCNHSA,
}

func X86_64LinuxGNU() Info {
	return Info{
		Triple:   "x86_64-linux-gnu",
		Arch:     "x86_64",
		PtrSize:  8,
		PtrAlign: 8,
		Features: []string{"sse", "sse2", "x87"},
		Builtins: x86Builtins(),
	}
}

func I686LinuxGNU() Info {
	return Info{
		Triple:   "i686-linux-gnu",
		Arch:     "i686",
		PtrSize:  4,
		PtrAlign: 4,
		Features: []string{"x87"},
		Builtins: x86Builtins(),
	}
}

func X86_64WindowsMSVC() Info {
	return Info{
		Triple:   "x86_64-pc-windows-msvc",
		Arch:     "x86_64",
		PtrSize:  8,
		PtrAlign: 8,
		Features: []string{"sse", "sse2", "x87"},
		Builtins: append(x86Builtins(), x86MSBuiltins()...),
	}
}

func AArch64LinuxGNU() Info {
	return Info{
		Triple:   "aarch64-linux-gnu",
		Arch:     "aarch64",
		PtrSize:  8,
		PtrAlign: 8,
		Features: []string{"neon", "fp-armv8"},
		Builtins: aarch64Builtins(),
	}
}

func NVPTX64CUDA() Info {
	return Info{
		Triple:   "nvptx64-nvidia-cuda",
		Arch:     "nvptx64",
		PtrSize:  8,
		PtrAlign: 8,
		Features: []string{"ptx60", "sm_70"},
		Builtins: nvptxBuiltins(),
	}
}

func AMDGCNHSA() Info {
	return Info{
		Triple:   "amdgcn-amd-amdhsa",
		Arch:     "amdgcn",
		PtrSize:  8,
		PtrAlign: 8,
		Features: []string{"gfx9-insts", "dpp"},
		Builtins: amdgcnBuiltins(),
	}
}

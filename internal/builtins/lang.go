package builtins

import (
	"fmt"
	"slices"
	"strings"
)

// LangMask is the set of languages and modes a builtin applies to.
type LangMask uint8

const (
	LangGNU    LangMask = 1 << iota // requires GNU mode
	LangC                           // C
	LangCXX                         // C++
	LangObjC                        // Objective-C and Objective-C++
	LangMS                          // requires MS mode
	LangOpenCL                      // OpenCL C only

	AllLanguages    = LangC | LangCXX | LangObjC
	AllGNULanguages = AllLanguages | LangGNU
	AllMSLanguages  = AllLanguages | LangMS
)

const dialectBits = LangC | LangCXX | LangObjC

// Has reports whether every bit of other is set in m.
func (m LangMask) Has(other LangMask) bool {
	return m&other == other
}

var langMaskNames = map[string]LangMask{
	"gnu":     LangGNU,
	"c":       LangC,
	"cxx":     LangCXX,
	"c++":     LangCXX,
	"objc":    LangObjC,
	"ms":      LangMS,
	"opencl":  LangOpenCL,
	"all":     AllLanguages,
	"all_gnu": AllGNULanguages,
	"all_ms":  AllMSLanguages,
}

// ParseLangMask combines the named language sets into one mask.
// An empty list yields AllLanguages.
func ParseLangMask(names []string) (LangMask, error) {
	if len(names) == 0 {
		return AllLanguages, nil
	}
	var m LangMask
	for _, name := range names {
		bit, ok := langMaskNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown language %q (expected: gnu|c|cxx|objc|ms|opencl|all|all_gnu|all_ms)", name)
		}
		m |= bit
	}
	return m, nil
}

func (m LangMask) String() string {
	switch m {
	case 0:
		return "none"
	case AllLanguages:
		return "all"
	case AllGNULanguages:
		return "all_gnu"
	case AllMSLanguages:
		return "all_ms"
	}
	parts := make([]string, 0, 6)
	if m&LangGNU != 0 {
		parts = append(parts, "gnu")
	}
	if m&LangC != 0 {
		parts = append(parts, "c")
	}
	if m&LangCXX != 0 {
		parts = append(parts, "cxx")
	}
	if m&LangObjC != 0 {
		parts = append(parts, "objc")
	}
	if m&LangMS != 0 {
		parts = append(parts, "ms")
	}
	if m&LangOpenCL != 0 {
		parts = append(parts, "opencl")
	}
	return strings.Join(parts, "|")
}

// Dialect is the active source language. Exactly one is active per compilation.
type Dialect uint8

const (
	DialectC Dialect = iota
	DialectCXX
	DialectObjC
)

func (d Dialect) String() string {
	switch d {
	case DialectC:
		return "c"
	case DialectCXX:
		return "c++"
	case DialectObjC:
		return "objc"
	default:
		return "unknown"
	}
}

func (d Dialect) mask() LangMask {
	switch d {
	case DialectCXX:
		return LangCXX
	case DialectObjC:
		return LangObjC
	default:
		return LangC
	}
}

// ParseDialect converts a command-line dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "c", "":
		return DialectC, nil
	case "c++", "cxx", "cpp":
		return DialectCXX, nil
	case "objc", "objc++", "objective-c":
		return DialectObjC, nil
	default:
		return DialectC, fmt.Errorf("invalid dialect: %q (expected: c|c++|objc)", s)
	}
}

// LangOptions is the active language configuration for one compilation.
type LangOptions struct {
	Dialect Dialect
	GNUMode bool
	MSMode  bool
	OpenCL  bool

	// NoBuiltin disables every predefined library function ('f').
	NoBuiltin bool
	// NoBuiltinFuncs disables the named predefined library functions.
	NoBuiltinFuncs []string
	// NoMathBuiltin disables builtins declared by math.h.
	NoMathBuiltin bool
}

// IsEnabled reports whether a builtin with the given mask is visible under opts.
// A mask without any dialect bit applies to every dialect.
func IsEnabled(mask LangMask, opts LangOptions) bool {
	if dialects := mask & dialectBits; dialects != 0 && dialects&opts.Dialect.mask() == 0 {
		return false
	}
	if mask&LangGNU != 0 && !opts.GNUMode {
		return false
	}
	if mask&LangMS != 0 && !opts.MSMode {
		return false
	}
	if mask&LangOpenCL != 0 && !opts.OpenCL {
		return false
	}
	return true
}

// isSupported applies IsEnabled plus the library-function switches.
func isSupported(info *Info, opts LangOptions) bool {
	if info.attrs.Has(AttrPredefinedLib) {
		if opts.NoBuiltin || slices.Contains(opts.NoBuiltinFuncs, info.Name) {
			return false
		}
	}
	if opts.NoMathBuiltin && info.HeaderName == "math.h" {
		return false
	}
	return IsEnabled(info.Langs, opts)
}

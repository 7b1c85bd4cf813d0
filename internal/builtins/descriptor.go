package builtins

import "strings"

// Descriptor is the raw, externally supplied record of one builtin.
type Descriptor struct {
	Name       string   `msgpack:"name"`
	Type       string   `msgpack:"type"`
	Attributes string   `msgpack:"attrs"`
	HeaderName string   `msgpack:"header,omitempty"`
	Langs      LangMask `msgpack:"langs"`
	Features   string   `msgpack:"features,omitempty"`
}

// Info is a Descriptor with its attribute string decoded once at load time.
type Info struct {
	Descriptor

	attrs   Attrs
	formats Formats
	hasPtr  bool
}

// Compile decodes the descriptor's attribute and type strings.
func Compile(d Descriptor) Info {
	attrs, formats := DecodeAttributes(d.Attributes)
	return Info{
		Descriptor: d,
		attrs:      attrs,
		formats:    formats,
		hasPtr:     strings.IndexByte(d.Type, '*') >= 0,
	}
}

func compileAll(records []Descriptor) []Info {
	out := make([]Info, len(records))
	for i := range records {
		out[i] = Compile(records[i])
	}
	return out
}

// Attrs returns the decoded attribute set.
func (info *Info) Attrs() Attrs { return info.attrs }

func (info *Info) IsPure() bool { return info.attrs.Has(AttrPure) }
func (info *Info) IsConst() bool { return info.attrs.Has(AttrConst) }
func (info *Info) IsConstWithoutErrno() bool { return info.attrs.Has(AttrConstWithoutErrno) }
func (info *Info) IsNoThrow() bool { return info.attrs.Has(AttrNoThrow) }
func (info *Info) IsNoReturn() bool { return info.attrs.Has(AttrNoReturn) }
func (info *Info) IsReturnsTwice() bool { return info.attrs.Has(AttrReturnsTwice) }
func (info *Info) IsUnevaluated() bool { return info.attrs.Has(AttrUnevaluated) }
func (info *Info) IsLibFunction() bool { return info.attrs.Has(AttrLibFunction) }
func (info *Info) IsPredefinedLibFunction() bool { return info.attrs.Has(AttrPredefinedLib) }
func (info *Info) IsPredefinedRuntimeFunction() bool {
	return info.attrs.Has(AttrPredefinedRuntime)
}
func (info *Info) HasCustomTypechecking() bool { return info.attrs.Has(AttrCustomTypecheck) }

// HasPtrArgsOrResult reports whether the type signature mentions a pointer.
func (info *Info) HasPtrArgsOrResult() bool { return info.hasPtr }

// Formats returns the format-check descriptors, printf first.
func (info *Info) Formats() []FormatCheck { return info.formats.List() }

// IsPrintfLike reports the printf-style format descriptor.
func (info *Info) IsPrintfLike() (FormatCheck, bool) {
	return info.formats.Printf, info.formats.Printf.present()
}

// IsScanfLike reports the scanf-style format descriptor.
func (info *Info) IsScanfLike() (FormatCheck, bool) {
	return info.formats.Scanf, info.formats.Scanf.present()
}

// FeatureList splits the required-features string.
func (info *Info) FeatureList() []string {
	return SplitFeatures(info.Features)
}

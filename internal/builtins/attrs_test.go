package builtins

import (
	"testing"
)

func TestDecodeAttributes_Markers(t *testing.T) {
	tests := []struct {
		enc  string
		want Attrs
	}{
		{"", 0},
		{"U", AttrPure},
		{"c", AttrConst},
		{"e", AttrConstWithoutErrno},
		{"n", AttrNoThrow},
		{"r", AttrNoReturn},
		{"j", AttrReturnsTwice},
		{"u", AttrUnevaluated},
		{"F", AttrLibFunction},
		{"f", AttrPredefinedLib},
		{"i", AttrPredefinedRuntime},
		{"t", AttrCustomTypecheck},
		{"ncF", AttrNoThrow | AttrConst | AttrLibFunction},
		{"Fcn", AttrNoThrow | AttrConst | AttrLibFunction},
		{"nnccFF", AttrNoThrow | AttrConst | AttrLibFunction},
		{"xyz!E", 0},
		{"n?c", AttrNoThrow | AttrConst},
	}
	for _, tt := range tests {
		got, formats := DecodeAttributes(tt.enc)
		if got != tt.want {
			t.Errorf("DecodeAttributes(%q) = %q, want %q", tt.enc, got, tt.want)
		}
		if len(formats.List()) != 0 {
			t.Errorf("DecodeAttributes(%q) produced a format descriptor", tt.enc)
		}
	}
}

func TestDecodeAttributes_OrderIndependent(t *testing.T) {
	base, _ := DecodeAttributes("UcenrjuFfit")
	perms := []string{"tifFujrnecU", "nUrcjeufFti", "UUcceennrrjjuuFFffiitt"}
	for _, p := range perms {
		got, _ := DecodeAttributes(p)
		if got != base {
			t.Fatalf("DecodeAttributes(%q) = %q, want %q", p, got, base)
		}
	}
}

func TestDecodeAttributes_Format(t *testing.T) {
	printf := func(idx uint32, vaList bool) FormatCheck {
		return FormatCheck{Kind: FormatPrintf, Index: idx, VAList: vaList}
	}
	scanf := func(idx uint32, vaList bool) FormatCheck {
		return FormatCheck{Kind: FormatScanf, Index: idx, VAList: vaList}
	}
	tests := []struct {
		enc   string
		want  Formats
		attrs Attrs
	}{
		{"fp:1:", Formats{Printf: printf(1, false)}, AttrPredefinedLib},
		{"fP:1:", Formats{Printf: printf(1, true)}, AttrPredefinedLib},
		{"fs:2:", Formats{Scanf: scanf(2, false)}, AttrPredefinedLib},
		{"nFS:12:", Formats{Scanf: scanf(12, true)}, AttrNoThrow | AttrLibFunction},
		{"p:3:n", Formats{Printf: printf(3, false)}, AttrNoThrow},
		{"p:1:s:2:", Formats{Printf: printf(1, false), Scanf: scanf(2, false)}, 0},
		{"S:4:P:2:", Formats{Printf: printf(2, true), Scanf: scanf(4, true)}, 0},
		{"p:1:P:5:", Formats{Printf: printf(1, false)}, 0},
	}
	for _, tt := range tests {
		attrs, formats := DecodeAttributes(tt.enc)
		if formats != tt.want {
			t.Errorf("DecodeAttributes(%q) formats = %+v, want %+v", tt.enc, formats, tt.want)
		}
		if attrs != tt.attrs {
			t.Errorf("DecodeAttributes(%q) attrs = %q, want %q", tt.enc, attrs, tt.attrs)
		}
	}
}

func TestDecodeAttributes_MalformedFormatIgnored(t *testing.T) {
	for _, enc := range []string{"p", "p:", "p::", "p:0:", "p:1", "s:x:", "P:99999999999:"} {
		_, formats := DecodeAttributes(enc)
		if len(formats.List()) != 0 {
			t.Errorf("DecodeAttributes(%q) formats = %+v, want none", enc, formats)
		}
	}
	// a rejected segment does not stop scanning
	attrs, formats := DecodeAttributes("p:nc")
	if len(formats.List()) != 0 {
		t.Fatalf("expected no format for %q", "p:nc")
	}
	if attrs != AttrNoThrow|AttrConst {
		t.Fatalf("attrs = %q, want nc", attrs)
	}
	// a later well-formed segment still counts
	_, formats = DecodeAttributes("p:0:s:4:")
	if formats != (Formats{Scanf: FormatCheck{Kind: FormatScanf, Index: 4}}) {
		t.Fatalf("formats = %+v, want scanf #4 only", formats)
	}
	_, formats = DecodeAttributes("p:0:p:2:")
	if formats.Printf != (FormatCheck{Kind: FormatPrintf, Index: 2}) {
		t.Fatalf("formats = %+v, want printf #2", formats)
	}
}

func TestAttrsString_Canonical(t *testing.T) {
	attrs, _ := DecodeAttributes("Fcn")
	if got := attrs.String(); got != "cnF" {
		t.Fatalf("String() = %q, want %q", got, "cnF")
	}
	again, _ := DecodeAttributes(attrs.String())
	if again != attrs {
		t.Fatalf("re-decoding %q gave %q", attrs, again)
	}
}

func TestInfo_PrintfScanf(t *testing.T) {
	printf := Compile(Descriptor{Name: "printf", Type: "icC*.", Attributes: "fp:1:"})
	if fc, ok := printf.IsPrintfLike(); !ok || fc.Index != 1 || fc.VAList {
		t.Fatalf("IsPrintfLike = %+v, %v", fc, ok)
	}
	if _, ok := printf.IsScanfLike(); ok {
		t.Fatalf("printf should not be scanf-like")
	}
	vfscanf := Compile(Descriptor{Name: "vfscanf", Type: "iP*RcC*Ra", Attributes: "fS:2:"})
	if fc, ok := vfscanf.IsScanfLike(); !ok || fc.Index != 2 || !fc.VAList {
		t.Fatalf("IsScanfLike = %+v, %v", fc, ok)
	}
	if !vfscanf.HasPtrArgsOrResult() {
		t.Fatalf("vfscanf takes pointers")
	}
	abs := Compile(Descriptor{Name: "abs", Type: "ii", Attributes: "fnc"})
	if abs.HasPtrArgsOrResult() {
		t.Fatalf("abs takes no pointers")
	}
	if len(abs.Formats()) != 0 {
		t.Fatalf("abs has no format descriptor")
	}

	both := Compile(Descriptor{Name: "xfmt", Type: "icC*.", Attributes: "p:1:s:2:"})
	if fc, ok := both.IsPrintfLike(); !ok || fc.Index != 1 {
		t.Fatalf("IsPrintfLike = %+v, %v", fc, ok)
	}
	if fc, ok := both.IsScanfLike(); !ok || fc.Index != 2 {
		t.Fatalf("IsScanfLike = %+v, %v", fc, ok)
	}
	if got := both.Formats(); len(got) != 2 || got[0].Kind != FormatPrintf || got[1].Kind != FormatScanf {
		t.Fatalf("Formats = %+v", got)
	}
}

package builtins

import "testing"

func TestIsEnabled(t *testing.T) {
	c := LangOptions{Dialect: DialectC}
	cGNU := LangOptions{Dialect: DialectC, GNUMode: true}
	cxxMS := LangOptions{Dialect: DialectCXX, MSMode: true}
	objc := LangOptions{Dialect: DialectObjC}
	ocl := LangOptions{Dialect: DialectC, OpenCL: true}

	tests := []struct {
		name string
		mask LangMask
		opts LangOptions
		want bool
	}{
		{"portable in c", AllLanguages, c, true},
		{"portable in c++ ms", AllLanguages, cxxMS, true},
		{"portable in objc", AllLanguages, objc, true},
		{"portable with gnu", AllLanguages, cGNU, true},
		{"gnu-only without gnu", AllGNULanguages, c, false},
		{"gnu-only with gnu", AllGNULanguages, cGNU, true},
		{"bare gnu bit with gnu", LangGNU, cGNU, true},
		{"ms-only without ms", AllMSLanguages, cGNU, false},
		{"ms-only with ms", AllMSLanguages, cxxMS, true},
		{"c++ only in c", LangCXX, c, false},
		{"c++ only in c++", LangCXX, cxxMS, true},
		{"objc only in c", LangObjC, c, false},
		{"objc only in objc", LangObjC, objc, true},
		{"opencl only in c", LangOpenCL, c, false},
		{"opencl only in c++", LangOpenCL, cxxMS, false},
		{"opencl only in opencl", LangOpenCL, ocl, true},
		{"c+gnu needs both", LangC | LangGNU, LangOptions{Dialect: DialectCXX, GNUMode: true}, false},
	}
	for _, tt := range tests {
		if got := IsEnabled(tt.mask, tt.opts); got != tt.want {
			t.Errorf("%s: IsEnabled(%s, %+v) = %v, want %v", tt.name, tt.mask, tt.opts, got, tt.want)
		}
	}
}

// The gate is the conjunction of four independent clauses; check every mask
// against a direct transcription of that rule.
func TestIsEnabled_Exhaustive(t *testing.T) {
	for mask := LangMask(0); mask < LangOpenCL<<1; mask++ {
		for _, d := range []Dialect{DialectC, DialectCXX, DialectObjC} {
			for flags := 0; flags < 8; flags++ {
				opts := LangOptions{Dialect: d, GNUMode: flags&1 != 0, MSMode: flags&2 != 0, OpenCL: flags&4 != 0}
				dialectOK := mask&dialectBits == 0 || mask&d.mask() != 0
				want := dialectOK &&
					(mask&LangGNU == 0 || opts.GNUMode) &&
					(mask&LangMS == 0 || opts.MSMode) &&
					(mask&LangOpenCL == 0 || opts.OpenCL)
				if got := IsEnabled(mask, opts); got != want {
					t.Fatalf("IsEnabled(%s, %+v) = %v, want %v", mask, opts, got, want)
				}
			}
		}
	}
}

func TestIsSupported_LibrarySwitches(t *testing.T) {
	malloc := Compile(Descriptor{Name: "malloc", Type: "v*z", Attributes: "f", HeaderName: "stdlib.h", Langs: AllLanguages})
	sqrt := Compile(Descriptor{Name: "sqrt", Type: "dd", Attributes: "fne", HeaderName: "math.h", Langs: AllLanguages})
	builtinSqrt := Compile(Descriptor{Name: "__builtin_sqrt", Type: "dd", Attributes: "Fne", Langs: AllLanguages})

	base := LangOptions{Dialect: DialectC}
	if !isSupported(&malloc, base) || !isSupported(&sqrt, base) {
		t.Fatalf("library builtins should be supported by default")
	}

	noBuiltin := LangOptions{Dialect: DialectC, NoBuiltin: true}
	if isSupported(&malloc, noBuiltin) {
		t.Fatalf("malloc should be disabled by NoBuiltin")
	}
	if !isSupported(&builtinSqrt, noBuiltin) {
		t.Fatalf("__builtin_ forms survive NoBuiltin")
	}

	noMalloc := LangOptions{Dialect: DialectC, NoBuiltinFuncs: []string{"malloc"}}
	if isSupported(&malloc, noMalloc) {
		t.Fatalf("malloc should be disabled by NoBuiltinFuncs")
	}
	if !isSupported(&sqrt, noMalloc) {
		t.Fatalf("sqrt should stay enabled")
	}

	noMath := LangOptions{Dialect: DialectC, NoMathBuiltin: true}
	if isSupported(&sqrt, noMath) {
		t.Fatalf("sqrt should be disabled by NoMathBuiltin")
	}
	if !isSupported(&malloc, noMath) {
		t.Fatalf("malloc is not a math builtin")
	}
}

func TestParseLangMask(t *testing.T) {
	tests := []struct {
		names []string
		want  LangMask
	}{
		{nil, AllLanguages},
		{[]string{"all"}, AllLanguages},
		{[]string{"all_gnu"}, AllGNULanguages},
		{[]string{"ALL_MS"}, AllMSLanguages},
		{[]string{"c", "cxx"}, LangC | LangCXX},
		{[]string{"opencl"}, LangOpenCL},
		{[]string{"all", "gnu"}, AllGNULanguages},
	}
	for _, tt := range tests {
		got, err := ParseLangMask(tt.names)
		if err != nil {
			t.Fatalf("ParseLangMask(%v): %v", tt.names, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLangMask(%v) = %s, want %s", tt.names, got, tt.want)
		}
		back, err := ParseLangMask([]string{got.String()})
		if err == nil && back != got {
			t.Fatalf("String() of %s does not parse back: %s", got, back)
		}
	}
	if _, err := ParseLangMask([]string{"fortran"}); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{"c": DialectC, "C++": DialectCXX, "cxx": DialectCXX, "objc": DialectObjC, "objc++": DialectObjC} {
		got, err := ParseDialect(in)
		if err != nil || got != want {
			t.Fatalf("ParseDialect(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDialect("rust"); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
}

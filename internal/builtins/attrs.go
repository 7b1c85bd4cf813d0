package builtins

import "strings"

// Attrs is the decoded form of a builtin attribute string.
type Attrs uint16

const (
	AttrPure             Attrs = 1 << iota // 'U': no side effects, may read memory
	AttrConst                              // 'c': no side effects, does not read memory
	AttrConstWithoutErrno                  // 'e': const except for errno
	AttrNoThrow                            // 'n'
	AttrNoReturn                           // 'r'
	AttrReturnsTwice                       // 'j'
	AttrUnevaluated                        // 'u': operands are not evaluated
	AttrLibFunction                        // 'F': __builtin_ alias of a libc/libm function
	AttrPredefinedLib                      // 'f': library function with a known signature
	AttrPredefinedRuntime                  // 'i': compiler runtime function with a known signature
	AttrCustomTypecheck                    // 't'
)

var attrMarkers = [...]struct {
	marker byte
	attr   Attrs
}{
	{'U', AttrPure},
	{'c', AttrConst},
	{'e', AttrConstWithoutErrno},
	{'n', AttrNoThrow},
	{'r', AttrNoReturn},
	{'j', AttrReturnsTwice},
	{'u', AttrUnevaluated},
	{'F', AttrLibFunction},
	{'f', AttrPredefinedLib},
	{'i', AttrPredefinedRuntime},
	{'t', AttrCustomTypecheck},
}

// Has reports whether every flag in other is set.
func (a Attrs) Has(other Attrs) bool {
	return a&other == other
}

// String renders the canonical marker string.
func (a Attrs) String() string {
	var sb strings.Builder
	for _, m := range attrMarkers {
		if a&m.attr != 0 {
			sb.WriteByte(m.marker)
		}
	}
	return sb.String()
}

// FormatKind identifies the family of a format-checked builtin.
type FormatKind uint8

const (
	FormatNone FormatKind = iota
	FormatPrintf
	FormatScanf
)

func (k FormatKind) String() string {
	switch k {
	case FormatPrintf:
		return "printf"
	case FormatScanf:
		return "scanf"
	default:
		return "none"
	}
}

// FormatCheck describes which parameter carries the format string.
type FormatCheck struct {
	Kind FormatKind
	// Index is the 1-based position of the format-string parameter.
	Index uint32
	// VAList is set when the variadic tail is passed as a va_list.
	VAList bool
}

func (f FormatCheck) present() bool { return f.Kind != FormatNone }

// Formats holds at most one descriptor per family.
type Formats struct {
	Printf FormatCheck
	Scanf  FormatCheck
}

// List returns the present descriptors, printf first.
func (f Formats) List() []FormatCheck {
	var out []FormatCheck
	if f.Printf.present() {
		out = append(out, f.Printf)
	}
	if f.Scanf.present() {
		out = append(out, f.Scanf)
	}
	return out
}

// DecodeAttributes scans an attribute string. Unknown characters are ignored,
// as are malformed format segments. Each family keeps its first well-formed
// segment.
func DecodeAttributes(enc string) (Attrs, Formats) {
	var (
		attrs   Attrs
		formats Formats
	)
	for i := 0; i < len(enc); i++ {
		ch := enc[i]
		switch ch {
		case 'p', 'P', 's', 'S':
			idx, next, ok := scanFormatIndex(enc, i+1)
			if !ok {
				continue
			}
			i = next - 1
			fc := FormatCheck{Kind: FormatPrintf, Index: idx, VAList: ch == 'P' || ch == 'S'}
			slot := &formats.Printf
			if ch == 's' || ch == 'S' {
				fc.Kind = FormatScanf
				slot = &formats.Scanf
			}
			if !slot.present() {
				*slot = fc
			}
			continue
		}
		for _, m := range attrMarkers {
			if m.marker == ch {
				attrs |= m.attr
				break
			}
		}
	}
	return attrs, formats
}

// scanFormatIndex parses ":N:" starting at pos and returns N and the position
// after the closing colon. On failure the returned position is pos.
func scanFormatIndex(enc string, pos int) (uint32, int, bool) {
	if pos >= len(enc) || enc[pos] != ':' {
		return 0, pos, false
	}
	var n uint64
	i := pos + 1
	start := i
	for i < len(enc) && enc[i] >= '0' && enc[i] <= '9' {
		n = n*10 + uint64(enc[i]-'0')
		if n > 1<<31 {
			return 0, pos, false
		}
		i++
	}
	if i == start || i >= len(enc) || enc[i] != ':' || n == 0 {
		return 0, pos, false
	}
	return uint32(n), i + 1, true
}

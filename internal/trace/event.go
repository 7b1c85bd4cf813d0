package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	ScopeCommand Scope = iota + 1 // one CLI command
	ScopePass                     // registry construction, initialize
	ScopeTable                    // loading one descriptor table
	ScopeNode                     // a single builtin
)

func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopePass:
		return "pass"
	case ScopeTable:
		return "table"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // e.g. "builtins.initialize", "catalog.load"
	Detail   string
	Extra    map[string]string
}

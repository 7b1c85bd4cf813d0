package builtins

import (
	"fmt"
	"iter"

	"fortio.org/safecast"
)

// ID is a flat builtin ID covering the core, target and aux tables.
type ID uint32

const (
	// NotBuiltin marks an identifier that is not a builtin.
	NotBuiltin ID = 0
)

// IsValid reports whether the ID is not NotBuiltin. It does not check bounds.
func (id ID) IsValid() bool { return id != NotBuiltin }

// Segment names the table a flat ID resolves into.
type Segment uint8

const (
	SegmentCore Segment = iota + 1
	SegmentTarget
	SegmentAux
)

func (s Segment) String() string {
	switch s {
	case SegmentCore:
		return "core"
	case SegmentTarget:
		return "target"
	case SegmentAux:
		return "aux"
	default:
		return "invalid"
	}
}

// Resolved is the outcome of resolving a flat ID.
type Resolved struct {
	ID      ID
	Segment Segment
	// Index is the position inside the segment's own table.
	Index int
	Info  *Info
}

// IDSpace lays out the three tables in one flat ID range:
//
//	[1, firstTS)          core
//	[firstTS, firstAux)   primary target
//	[firstAux, end)       auxiliary target
type IDSpace struct {
	core   []Info
	target []Info
	aux    []Info

	firstTS  ID
	firstAux ID
	end      ID
}

// NewIDSpace compiles the three tables. It fails when the combined size does
// not fit the ID type.
func NewIDSpace(core, target, aux []Descriptor) (*IDSpace, error) {
	c, err := safecast.Conv[uint32](len(core))
	if err != nil {
		return nil, fmt.Errorf("core table size: %w", err)
	}
	t, err := safecast.Conv[uint32](len(target))
	if err != nil {
		return nil, fmt.Errorf("target table size: %w", err)
	}
	a, err := safecast.Conv[uint32](len(aux))
	if err != nil {
		return nil, fmt.Errorf("aux table size: %w", err)
	}
	total := uint64(c) + uint64(t) + uint64(a) + 1
	if total > uint64(^uint32(0)) {
		return nil, fmt.Errorf("builtin tables too large: %d records", total-1)
	}
	return &IDSpace{
		core:     compileAll(core),
		target:   compileAll(target),
		aux:      compileAll(aux),
		firstTS:  ID(c + 1),
		firstAux: ID(c + 1 + t),
		end:      ID(total),
	}, nil
}

// FirstTargetSpecific is the first ID of the primary target segment.
func (s *IDSpace) FirstTargetSpecific() ID { return s.firstTS }

// FirstAux is the first ID of the aux segment.
func (s *IDSpace) FirstAux() ID { return s.firstAux }

// Len is the number of valid IDs.
func (s *IDSpace) Len() int { return int(s.end) - 1 }

// Contains reports whether id resolves to a record.
func (s *IDSpace) Contains(id ID) bool {
	return id != NotBuiltin && id < s.end
}

// IsTargetSpecific reports whether id lies past the core table.
func (s *IDSpace) IsTargetSpecific(id ID) (bool, error) {
	if !s.Contains(id) {
		return false, s.outOfRange(id)
	}
	return id >= s.firstTS, nil
}

// IsAux reports whether id lies past the primary target table.
func (s *IDSpace) IsAux(id ID) (bool, error) {
	if !s.Contains(id) {
		return false, s.outOfRange(id)
	}
	return id >= s.firstAux, nil
}

// AuxLocalID returns the ID the builtin would have when the aux target is compiled alone.
func (s *IDSpace) AuxLocalID(id ID) (ID, error) {
	if !s.Contains(id) {
		return NotBuiltin, s.outOfRange(id)
	}
	if id < s.firstAux {
		return NotBuiltin, &IDError{Kind: IDErrNotAux, ID: id, Limit: s.end}
	}
	return id - ID(len(s.target)), nil
}

// Resolve maps a flat ID to its record and segment.
func (s *IDSpace) Resolve(id ID) (Resolved, error) {
	switch {
	case !s.Contains(id):
		return Resolved{}, s.outOfRange(id)
	case id < s.firstTS:
		idx := int(id - 1)
		return Resolved{ID: id, Segment: SegmentCore, Index: idx, Info: &s.core[idx]}, nil
	case id < s.firstAux:
		idx := int(id - s.firstTS)
		return Resolved{ID: id, Segment: SegmentTarget, Index: idx, Info: &s.target[idx]}, nil
	default:
		idx := int(id - s.firstAux)
		return Resolved{ID: id, Segment: SegmentAux, Index: idx, Info: &s.aux[idx]}, nil
	}
}

// All yields every valid ID in increasing order with its resolved record.
func (s *IDSpace) All() iter.Seq2[ID, Resolved] {
	return func(yield func(ID, Resolved) bool) {
		for id := ID(1); id < s.end; id++ {
			r, err := s.Resolve(id)
			if err != nil {
				return
			}
			if !yield(id, r) {
				return
			}
		}
	}
}

func (s *IDSpace) outOfRange(id ID) error {
	return &IDError{Kind: IDErrOutOfRange, ID: id, Limit: s.end}
}

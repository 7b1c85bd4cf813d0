// Package ident is the compiler's identifier table: interned names, each with
// an optional builtin tag and an optional user meaning.
package ident

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"builtinreg/internal/builtins"
)

// NameID identifies an interned name. NoNameID is the empty name.
type NameID uint32

const NoNameID NameID = 0

// Policy decides what Tag does with a name that already has a user meaning.
type Policy uint8

const (
	// PolicyBuiltinWins tags the name anyway; sema sorts the conflict out later.
	PolicyBuiltinWins Policy = iota
	// PolicyUserWins leaves user-declared names untagged.
	PolicyUserWins
)

type entry struct {
	name    string
	builtin builtins.ID
	user    bool
}

// Table maps names to entries. It is not safe for concurrent mutation.
type Table struct {
	policy    Policy
	entries   []entry // entries[0] is NoNameID
	index     map[string]NameID
	byBuiltin map[builtins.ID]NameID
}

// New returns an empty table.
func New(policy Policy) *Table {
	return &Table{
		policy:    policy,
		entries:   []entry{{}},
		index:     map[string]NameID{"": NoNameID},
		byBuiltin: make(map[builtins.ID]NameID),
	}
}

// Intern returns the ID of name in NFC form, adding it if needed.
func (t *Table) Intern(name string) NameID {
	name = norm.NFC.String(name)
	if id, ok := t.index[name]; ok {
		return id
	}
	id := NameID(len(t.entries))
	t.entries = append(t.entries, entry{name: name})
	t.index[name] = id
	return id
}

// Lookup returns the ID of name without interning it.
func (t *Table) Lookup(name string) (NameID, bool) {
	id, ok := t.index[norm.NFC.String(name)]
	return id, ok
}

// Name returns the spelling of id.
func (t *Table) Name(id NameID) (string, bool) {
	if int(id) >= len(t.entries) {
		return "", false
	}
	return t.entries[id].name, true
}

// Len counts interned names, NoNameID included.
func (t *Table) Len() int { return len(t.entries) }

// Tag marks name as builtin id, subject to the table's policy.
func (t *Table) Tag(name string, id builtins.ID) {
	nid := t.Intern(name)
	e := &t.entries[nid]
	if t.policy == PolicyUserWins && e.user {
		return
	}
	if e.builtin != builtins.NotBuiltin && e.builtin != id {
		delete(t.byBuiltin, e.builtin)
	}
	if prev, ok := t.byBuiltin[id]; ok && prev != nid {
		t.entries[prev].builtin = builtins.NotBuiltin
	}
	e.builtin = id
	t.byBuiltin[id] = nid
}

// Untag clears the name currently tagged with id. Unknown IDs are ignored.
func (t *Table) Untag(id builtins.ID) {
	nid, ok := t.byBuiltin[id]
	if !ok {
		return
	}
	t.entries[nid].builtin = builtins.NotBuiltin
	delete(t.byBuiltin, id)
}

// BuiltinID returns the builtin tag of name, or NotBuiltin.
func (t *Table) BuiltinID(name string) builtins.ID {
	nid, ok := t.Lookup(name)
	if !ok {
		return builtins.NotBuiltin
	}
	return t.entries[nid].builtin
}

// Declare gives name a user meaning.
func (t *Table) Declare(name string) NameID {
	nid := t.Intern(name)
	t.entries[nid].user = true
	return nid
}

// IsDeclared reports whether name has a user meaning.
func (t *Table) IsDeclared(name string) bool {
	nid, ok := t.Lookup(name)
	return ok && t.entries[nid].user
}

// TaggedCount is the number of names carrying a builtin tag.
func (t *Table) TaggedCount() int { return len(t.byBuiltin) }

// Tagged returns the builtin IDs currently tagged, in increasing order.
func (t *Table) Tagged() []builtins.ID {
	ids := make([]builtins.ID, 0, len(t.byBuiltin))
	for id := range t.byBuiltin {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

package ident

import (
	"context"
	"slices"
	"testing"

	"builtinreg/internal/builtins"
)

func TestInternNormalizes(t *testing.T) {
	tbl := New(PolicyBuiltinWins)
	composed := tbl.Intern("café")
	decomposed := tbl.Intern("café")
	if composed != decomposed {
		t.Fatalf("NFC forms interned separately: %d vs %d", composed, decomposed)
	}
	if name, ok := tbl.Name(composed); !ok || name != "café" {
		t.Fatalf("Name = %q, %v", name, ok)
	}
	if id, ok := tbl.Lookup(""); !ok || id != NoNameID {
		t.Fatalf("empty name should be NoNameID")
	}
	if _, ok := tbl.Name(NameID(99)); ok {
		t.Fatalf("Name of unknown ID should fail")
	}
}

func TestTagUntag(t *testing.T) {
	tbl := New(PolicyBuiltinWins)
	tbl.Tag("__builtin_trap", 2)
	if got := tbl.BuiltinID("__builtin_trap"); got != 2 {
		t.Fatalf("BuiltinID = %d, want 2", got)
	}
	tbl.Untag(2)
	if got := tbl.BuiltinID("__builtin_trap"); got != builtins.NotBuiltin {
		t.Fatalf("BuiltinID after Untag = %d", got)
	}
	// the name stays interned
	if _, ok := tbl.Lookup("__builtin_trap"); !ok {
		t.Fatalf("Untag dropped the name")
	}
	tbl.Untag(42)
	if tbl.TaggedCount() != 0 {
		t.Fatalf("TaggedCount = %d", tbl.TaggedCount())
	}
}

func TestRetagLastWins(t *testing.T) {
	tbl := New(PolicyBuiltinWins)
	tbl.Tag("dup", 1)
	tbl.Tag("dup", 5)
	if got := tbl.BuiltinID("dup"); got != 5 {
		t.Fatalf("BuiltinID = %d, want 5", got)
	}
	if !slices.Equal(tbl.Tagged(), []builtins.ID{5}) {
		t.Fatalf("Tagged = %v", tbl.Tagged())
	}
	// untagging the stale ID leaves the current tag alone
	tbl.Untag(1)
	if got := tbl.BuiltinID("dup"); got != 5 {
		t.Fatalf("BuiltinID after stale Untag = %d", got)
	}
}

func TestMovingIDBetweenNames(t *testing.T) {
	tbl := New(PolicyBuiltinWins)
	tbl.Tag("a", 3)
	tbl.Tag("b", 3)
	if tbl.BuiltinID("a") != builtins.NotBuiltin || tbl.BuiltinID("b") != 3 {
		t.Fatalf("a=%d b=%d", tbl.BuiltinID("a"), tbl.BuiltinID("b"))
	}
}

func TestPolicies(t *testing.T) {
	tests := []struct {
		policy Policy
		want   builtins.ID
	}{
		{PolicyBuiltinWins, 4},
		{PolicyUserWins, builtins.NotBuiltin},
	}
	for _, tt := range tests {
		tbl := New(tt.policy)
		tbl.Declare("malloc")
		tbl.Tag("malloc", 4)
		if got := tbl.BuiltinID("malloc"); got != tt.want {
			t.Fatalf("policy %d: BuiltinID = %d, want %d", tt.policy, got, tt.want)
		}
		if !tbl.IsDeclared("malloc") {
			t.Fatalf("policy %d: user meaning lost", tt.policy)
		}
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	ctx := context.Background()
	reg, err := builtins.New(builtins.CoreTable(), builtins.TargetTable{Triple: "x86_64-linux-gnu"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tbl := New(PolicyBuiltinWins)
	n := reg.Initialize(ctx, tbl, builtins.LangOptions{Dialect: builtins.DialectC})
	if n == 0 || tbl.TaggedCount() != n {
		t.Fatalf("Initialize = %d, TaggedCount = %d", n, tbl.TaggedCount())
	}
	if tbl.BuiltinID("alloca") != builtins.NotBuiltin {
		t.Fatalf("alloca is GNU-only")
	}
	for _, id := range tbl.Tagged() {
		if err := reg.Forget(ctx, id, tbl); err != nil {
			t.Fatalf("Forget(%d): %v", id, err)
		}
	}
	if tbl.TaggedCount() != 0 {
		t.Fatalf("TaggedCount after forgetting all = %d", tbl.TaggedCount())
	}
}

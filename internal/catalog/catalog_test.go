package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"builtinreg/internal/builtins"
)

const sampleTable = `
[[builtin]]
name  = "__builtin_ia32_pause"
type  = "v"
attrs = "n"
langs = ["all_gnu"]

[[builtin]]
name     = "__builtin_ia32_crc32si"
type     = "UiUiUi"
attrs    = "nc"
features = "sse4.2"

[[builtin]]
name   = "printf"
type   = "icC*."
attrs  = "fp:1:"
header = "stdio.h"
langs  = ["c", "cxx"]
`

func TestParse(t *testing.T) {
	records, err := Parse("sample.toml", []byte(sampleTable))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	want := []builtins.Descriptor{
		{Name: "__builtin_ia32_pause", Type: "v", Attributes: "n", Langs: builtins.AllGNULanguages},
		{Name: "__builtin_ia32_crc32si", Type: "UiUiUi", Attributes: "nc", Langs: builtins.AllLanguages, Features: "sse4.2"},
		{Name: "printf", Type: "icC*.", Attributes: "fp:1:", HeaderName: "stdio.h", Langs: builtins.LangC | builtins.LangCXX},
	}
	for i := range want {
		if records[i] != want[i] {
			t.Fatalf("records[%d] = %+v, want %+v", i, records[i], want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", "[[builtin]\nname = 1", "failed to parse TOML"},
		{"unknown key", "[[builtin]]\nname = \"x\"\ncolor = \"red\"", "unknown key"},
		{"missing name", "[[builtin]]\ntype = \"v\"", "missing name"},
		{"bad lang", "[[builtin]]\nname = \"x\"\nlangs = [\"cobol\"]", "unknown language"},
	}
	for _, tt := range tests {
		_, err := Parse("bad.toml", []byte(tt.src))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: err = %v, want substring %q", tt.name, err, tt.want)
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	records, err := Parse("sample.toml", []byte(sampleTable))
	if err != nil {
		t.Fatal(err)
	}
	key := DigestOf([]byte(sampleTable))
	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}
	if err := c.Put(key, "sample.toml", records); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if len(got) != len(records) {
		t.Fatalf("len = %d, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := DigestOf([]byte("x"))
	if err := os.WriteFile(c.pathFor(key), []byte{0xc1, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("corrupt entry: ok=%v err=%v", ok, err)
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	if err := c.Put(Digest{}, "x", nil); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(Digest{}); ok || err != nil {
		t.Fatalf("nil cache Get = %v, %v", ok, err)
	}
}

func TestLoadFilesOrderAndCache(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 6 {
		p := filepath.Join(dir, fmt.Sprintf("t%d.toml", i))
		src := fmt.Sprintf("[[builtin]]\nname = \"b%d_0\"\n[[builtin]]\nname = \"b%d_1\"\n", i, i)
		if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	cache, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	l := &Loader{Cache: cache, Jobs: 3}
	for pass := range 2 {
		records, err := l.LoadFiles(context.Background(), paths)
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		if len(records) != 12 {
			t.Fatalf("pass %d: len = %d", pass, len(records))
		}
		for i, r := range records {
			want := fmt.Sprintf("b%d_%d", i/2, i%2)
			if r.Name != want {
				t.Fatalf("pass %d: records[%d] = %q, want %q", pass, i, r.Name, want)
			}
		}
	}
	entries, err := os.ReadDir(filepath.Join(dir, "cache", "tables"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 6 {
		t.Fatalf("cache holds %d entries, want 6", len(entries))
	}
}

func TestLoadFilesError(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	if err := os.WriteFile(good, []byte(sampleTable), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{}
	_, err := l.LoadFiles(context.Background(), []string{good, filepath.Join(dir, "missing.toml")})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if records, err := l.LoadFiles(context.Background(), nil); err != nil || records != nil {
		t.Fatalf("LoadFiles(nil) = %v, %v", records, err)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) final(path string) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var last Event
	for _, ev := range s.events {
		if ev.File == path {
			last = ev
		}
	}
	return last
}

func TestLoaderProgress(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(good, []byte(sampleTable), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("[[builtin]]\ntype = \"v\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cache, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	sink := &recordingSink{}
	l := &Loader{Cache: cache, Progress: sink}
	if _, err := l.LoadFile(context.Background(), good); err != nil {
		t.Fatal(err)
	}
	if ev := sink.final(good); ev.Status != StatusDone || ev.Records != 3 {
		t.Fatalf("first load final event = %+v", ev)
	}

	sink = &recordingSink{}
	l.Progress = sink
	if _, err := l.LoadFiles(context.Background(), []string{good}); err != nil {
		t.Fatal(err)
	}
	if sink.events[0].Status != StatusQueued {
		t.Fatalf("first event = %+v, want queued", sink.events[0])
	}
	if ev := sink.final(good); ev.Status != StatusCached || ev.Stage != StageCache {
		t.Fatalf("second load final event = %+v", ev)
	}

	if _, err := l.LoadFile(context.Background(), bad); err == nil {
		t.Fatalf("expected parse error")
	}
	if ev := sink.final(bad); ev.Status != StatusError || ev.Stage != StageParse || ev.Err == nil {
		t.Fatalf("failed load final event = %+v", ev)
	}
}

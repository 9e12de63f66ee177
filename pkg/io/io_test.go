package io

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestWriteJSONCanonicalForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	err := WriteJSON(path, map[string]any{"zeta": 1, "alpha": "x"})
	if err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := "{\n  \"alpha\": \"x\",\n  \"zeta\": 1\n}\n"
	if string(got) != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
}

func TestWriteJSONCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "out.json")

	if err := WriteJSON(path, map[string]int{"n": 1}); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("target file missing: %v", err)
	}
}

func TestWriteJSONOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := WriteJSON(path, map[string]int{"v": 1}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteJSON(path, map[string]int{"v": 2}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	var got map[string]int
	if err := ReadJSON(path, &got); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got["v"] != 2 {
		t.Errorf("v = %d, want 2", got["v"])
	}
}

func TestWriteJSONNonASCIIUnescaped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := WriteJSON(path, map[string]string{"name": "café ☕", "url": "a&b<c>"}); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	got, _ := os.ReadFile(path)
	content := string(got)

	if !strings.Contains(content, "café ☕") {
		t.Errorf("non-ASCII text was escaped: %q", content)
	}
	if !strings.Contains(content, "a&b<c>") {
		t.Errorf("HTML characters were escaped: %q", content)
	}
	if strings.Contains(content, `\u`) {
		t.Errorf("found escape sequences in %q", content)
	}
}

func TestWriteJSONSerializationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	err := WriteJSON(path, map[string]any{"f": func() {}})
	if err == nil {
		t.Fatal("WriteJSON() = nil, want serialization error")
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("target file created despite serialization failure")
	}
}

func TestWriteJSONAtomicReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.json")

	if err := WriteJSON(path, map[string]string{"state": "old"}); err != nil {
		t.Fatalf("seed write: %v", err)
	}
	if err := WriteJSONAtomic(path, map[string]string{"state": "new"}); err != nil {
		t.Fatalf("WriteJSONAtomic() error: %v", err)
	}

	var got map[string]string
	if err := ReadJSON(path, &got); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got["state"] != "new" {
		t.Errorf("state = %q, want new", got["state"])
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp.") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteJSONAtomicCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "index.json")

	if err := WriteJSONAtomic(path, map[string]int{"n": 1}); err != nil {
		t.Fatalf("WriteJSONAtomic() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("target file missing: %v", err)
	}
}

func TestWriteJSONAtomicFailedRenameCleansUp(t *testing.T) {
	dir := t.TempDir()

	// A non-empty directory at the target path makes the rename fail
	// while leaving the original contents observable.
	target := filepath.Join(dir, "index.json")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("mkdir target: %v", err)
	}
	marker := filepath.Join(target, "marker")
	if err := os.WriteFile(marker, []byte("untouched"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	err := WriteJSONAtomic(target, map[string]int{"n": 1})
	if err == nil {
		t.Fatal("WriteJSONAtomic() = nil, want rename failure")
	}

	content, readErr := os.ReadFile(marker)
	if readErr != nil || string(content) != "untouched" {
		t.Errorf("original content disturbed: %q, %v", content, readErr)
	}

	tmp := fmt.Sprintf("%s.tmp.%d", target, os.Getpid())
	if _, statErr := os.Stat(tmp); !errors.Is(statErr, fs.ErrNotExist) {
		t.Errorf("temp file %s not cleaned up", tmp)
	}
}

func TestReadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	value := map[string]any{
		"name":  "café",
		"stars": float64(42),
		"tags":  []any{"db", "cache"},
		"meta":  map[string]any{"archived": false},
	}

	if err := WriteJSON(path, value); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var got any
	if err := ReadJSON(path, &got); err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if !reflect.DeepEqual(got, value) {
		t.Errorf("round trip mismatch:\ngot  %#v\nwant %#v", got, value)
	}
}

func TestReadJSONIntoStruct(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := WriteJSON(path, record{Name: "demo", Count: 3}); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var got record
	if err := ReadJSON(path, &got); err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if got.Name != "demo" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestReadJSONMissingFile(t *testing.T) {
	var got any
	err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"), &got)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadJSON() = %v, want fs.ErrNotExist", err)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	var got any
	if err := ReadJSON(path, &got); err == nil {
		t.Error("ReadJSON() = nil, want parse error")
	}
}

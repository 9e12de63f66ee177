package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Encode writes v to w in the registry's canonical JSON form: two-space
// indentation, a trailing newline, and no HTML escaping so non-ASCII
// text passes through verbatim.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// marshal renders v in canonical form into memory, so the file writers
// fail before touching the target path.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON serializes v to path in canonical form, creating parent
// directories as needed and overwriting the target in place. For writes
// that must never leave a partial file behind, use [WriteJSONAtomic].
func WriteJSON(path string, v any) error {
	data, err := marshal(v)
	if err != nil {
		return err
	}
	if err := ensureParent(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteJSONAtomic serializes v into a temporary file next to path and
// renames it over the target, so readers never observe a half-written
// file. The temp name embeds the process id to keep concurrent writers
// apart. On failure the temp file is removed best-effort and the target
// is left as it was.
func WriteJSONAtomic(path string, v any) error {
	data, err := marshal(v)
	if err != nil {
		return err
	}
	if err := ensureParent(path); err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// ensureParent creates the directory containing path.
func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

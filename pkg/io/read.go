package io

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadJSON decodes the JSON file at path into v, which must be a
// non-nil pointer. Values produced by [WriteJSON] round-trip through an
// *any target.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Package io reads and writes the registry's JSON files.
//
// # Canonical form
//
// All writers emit the same canonical form: UTF-8, two-space indentation,
// sorted object keys (encoding/json marshals map keys in sorted order;
// the registry's record types declare their fields so struct keys come
// out ordered too), a single trailing newline, and no HTML escaping, so
// non-ASCII characters appear verbatim. Generated files diff cleanly
// between runs.
//
// # Atomic replacement
//
// Generated artifacts that other tooling may read concurrently (the
// index, metadata files) go through [WriteJSONAtomic]: content is
// written to {path}.tmp.{pid} in the target's directory and renamed over
// the target. The target is never observed half-written; on failure the
// temp file is removed best-effort and the original is left untouched.
//
// # Round-tripping
//
// [ReadJSON] into an *any target returns exactly the value [WriteJSON]
// serialized, modulo JSON numbers widening to float64.
package io

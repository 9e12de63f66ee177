// Package registry loads, indexes, and enriches component submissions.
//
// # Layout
//
// A registry repository keeps its source of truth under
// components/registry:
//
//	components/registry/
//	  components/
//	    postgres.json        submission (hand written)
//	    postgres.meta.json   enrichment output (generated)
//	    redis.json
//	  index.json             catalog of all submissions (generated)
//
// Submissions are small JSON files naming a component, its repository
// URL, and optional tags. Everything else is derived: [BuildIndex]
// collects submissions into a single catalog, and [Enrich] pulls
// repository metadata from the GitHub API into a sibling meta file.
//
// # Generated files
//
// The index is replaced atomically so concurrent readers never observe
// a partially written catalog. Meta files carry only a fixed set of
// repository fields; unknown API fields are dropped rather than stored.
package registry

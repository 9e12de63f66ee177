// Package pkg provides the core libraries for regtool registry maintenance.
//
// # Overview
//
// Regtool keeps a JSON component registry healthy: it fetches documents
// from rate-limited APIs, rebuilds the component index, and enriches
// submissions with repository metadata. The pkg directory is organized
// into five areas:
//
//  1. [ghtoken] - API token resolution from the process environment
//  2. [httputil] - Retrying JSON fetcher with rate-limit handling
//  3. [io] - Canonical JSON reading and (atomic) writing
//  4. [registry] - Component submissions, index, and enrichment
//  5. [buildinfo] - Build-time version information
//
// # Architecture
//
// The typical data flow through regtool:
//
//	components/registry/components/*.json
//	         ↓
//	    [registry] package (load submissions)
//	         ↓
//	    [httputil] package (fetch repository metadata with retries)
//	         ↓
//	    [io] package (write index.json and *.meta.json atomically)
//
// # Quick Start
//
// Enrich a component and store the result:
//
//	import (
//	    "context"
//	    "github.com/componentry/regtool/pkg/io"
//	    "github.com/componentry/regtool/pkg/registry"
//	)
//
//	comp, err := registry.Load("components/registry/components/postgres.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	meta, err := registry.Enrich(context.Background(), comp, registry.EnrichOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := io.WriteJSONAtomic("postgres.meta.json", meta); err != nil {
//	    log.Fatal(err)
//	}
package pkg

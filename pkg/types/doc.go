// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for fasty: the supported
// format table, the conversion request, per-item outcomes and the run
// summary, and the configuration defaults loaded at startup.
package types

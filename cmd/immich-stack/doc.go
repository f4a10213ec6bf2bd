// Package main hosts the immich-stack CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration, builds the Immich client and
// hands candidate groups to the stacking runner. The per-pair lines
// (Found pair / [dry-run] / Stacked to) keep their historical wording so
// existing wrappers can parse them; tables and colour are extras.
//
// Keep this package thin: matching rules live in internal/pairing, HTTP
// concerns in internal/services/immich and orchestration in
// internal/stacking.
package main

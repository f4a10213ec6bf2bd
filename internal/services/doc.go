// Package services defines shared utilities consumed by the stacking workflow
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run correlation identifiers, stage names and
//     album identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that let the CLI translate
//     failures into consistent exit codes.
//
// Use these helpers when wiring new collaborators so operational behaviour
// (error handling, observability, retries) stays uniform across the tool.
package services

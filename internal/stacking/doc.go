// Package stacking drives a single pass of the tool: it pulls candidate
// groups from a Source, runs them through the pair matcher and either
// reports what it would do (dry run) or hands every matched pair to a Sink.
//
// Pairs are processed one at a time in source order. A sink failure is
// recorded against its pair and the pass continues; the failures are joined
// into the error returned by Run.
package stacking

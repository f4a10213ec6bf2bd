package pairing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArity reports that the matcher was handed something other than
// exactly two filenames.
var ErrInvalidArity = errors.New("pairing: exactly two filenames required")

// Reason explains the outcome of a pair evaluation.
type Reason string

const (
	ReasonMatched          Reason = "matched"
	ReasonNotPair          Reason = "not_a_pair"
	ReasonEmptyBasename    Reason = "empty_basename"
	ReasonBasenameMismatch Reason = "basename_mismatch"
	ReasonSameExtension    Reason = "same_extension"
)

// preferredPrimaryExts lists the JPEG-family extensions that win the primary
// slot over any other format.
var preferredPrimaryExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".jpe":  {},
}

// Candidate is one side of a pair already confirmed similar.
type Candidate struct {
	ID   string
	Path string
	Ext  string
}

// IsSimilarFilename reports whether the two names denote the same logical
// photo stored under different extensions. Any input that does not hold
// exactly two names fails with ErrInvalidArity.
func IsSimilarFilename(names []string) (bool, error) {
	if len(names) != 2 {
		return false, fmt.Errorf("%w: got %d", ErrInvalidArity, len(names))
	}
	return compareNames(names[0], names[1]) == ReasonMatched, nil
}

func compareNames(first, second string) Reason {
	firstBase := CanonicalBasename(first)
	secondBase := CanonicalBasename(second)
	if firstBase == "" || secondBase == "" {
		return ReasonEmptyBasename
	}
	// Case-sensitive: IMG123 and img123 are different captures.
	if firstBase != secondBase {
		return ReasonBasenameMismatch
	}
	if Extension(first) == Extension(second) {
		return ReasonSameExtension
	}
	return ReasonMatched
}

// IsPreferredPrimary reports whether ext belongs to the JPEG family.
func IsPreferredPrimary(ext string) bool {
	_, ok := preferredPrimaryExts[strings.ToLower(ext)]
	return ok
}

// SelectPrimary orders a matched pair so the primary comes first. A
// JPEG-family asset beats a non-JPEG one; when both or neither are
// JPEG-family the input order is kept.
func SelectPrimary(first, second Candidate) (Candidate, Candidate) {
	if IsPreferredPrimary(second.Ext) && !IsPreferredPrimary(first.Ext) {
		return second, first
	}
	return first, second
}

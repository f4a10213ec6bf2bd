// Package pairing decides whether two library assets are the same photo
// captured under different formats, such as a RAW file and its JPEG sibling.
//
// The package is pure: it never performs I/O and never reads configuration.
// Callers hand it candidate groups (from the duplicates feed or from adjacent
// album entries) and receive ordered pairs with the primary asset first.
//
// Matching reduces each filename to a canonical basename. Device capture
// names like PXL_20250615_143621025.RAW-02.ORIGINAL.dng collapse to their
// timestamp prefix; everything else is cut at the first '.' or '-' of the
// stem. Two names match when their canonical basenames are equal and their
// lowercased extensions differ.
package pairing

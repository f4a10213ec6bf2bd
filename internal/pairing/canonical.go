package pairing

import (
	"regexp"
	"strings"
)

// devicePattern matches capture names such as PXL_20250615_143621025 at the
// start of a stem. Anything after the match (".RAW-02.ORIGINAL") is a variant
// marker and is discarded.
var devicePattern = regexp.MustCompile(`^[A-Za-z]+_[0-9]{8}_[0-9]+`)

// CanonicalBasename reduces a filename or path to the stem used for pair
// comparison. It returns "" when no stem can be derived.
func CanonicalBasename(name string) string {
	stem, _ := splitExt(baseName(name))
	if stem == "" {
		return ""
	}
	if prefix, ok := matchDevicePattern(stem); ok {
		return prefix
	}
	return fallbackStem(stem)
}

// Extension returns the lowercased final extension of name, including the
// leading dot, or "" when the name has none.
func Extension(name string) string {
	_, ext := splitExt(baseName(name))
	return strings.ToLower(ext)
}

func matchDevicePattern(stem string) (string, bool) {
	loc := devicePattern.FindStringIndex(stem)
	if loc == nil {
		return "", false
	}
	return stem[:loc[1]], true
}

// fallbackStem keeps the part of stem before the first '.' or '-', so
// "DSC0001-edit" and "IMG_1234.RAW-01" become "DSC0001" and "IMG_1234".
func fallbackStem(stem string) string {
	if idx := strings.IndexAny(stem, ".-"); idx >= 0 {
		return stem[:idx]
	}
	return stem
}

func baseName(name string) string {
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// splitExt splits base at its last dot. Leading dots never start an
// extension, so ".hidden" has no extension.
func splitExt(base string) (string, string) {
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 {
		return base, ""
	}
	if strings.TrimLeft(base[:dot], ".") == "" {
		return base, ""
	}
	return base[:dot], base[dot:]
}

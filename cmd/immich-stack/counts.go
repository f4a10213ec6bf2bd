package main

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"immichstack/internal/pairing"
	"immichstack/internal/stacking"
)

// newCountPrinter formats counts with the digit grouping of the user's
// locale, falling back to English.
func newCountPrinter() *message.Printer {
	return message.NewPrinter(localeTag())
}

func localeTag() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		value := strings.TrimSpace(os.Getenv(key))
		if value == "" {
			continue
		}
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}
		if value == "C" || value == "POSIX" {
			return language.English
		}
		tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
		if err != nil {
			return language.English
		}
		return tag
	}
	return language.English
}

func summaryLine(p *message.Printer, report stacking.Report) string {
	skipped := 0
	for _, n := range report.Skipped {
		skipped += n
	}
	if report.DryRun {
		return p.Sprintf("%d candidate groups, %d pairs matched, %d skipped", report.Groups, report.Pairs(), skipped)
	}
	return p.Sprintf("%d candidate groups, %d pairs matched, %d stacked, %d failed", report.Groups, report.Pairs(), report.Stacked, report.Failed)
}

func skippedBreakdown(p *message.Printer, report stacking.Report) []string {
	order := []pairing.Reason{
		pairing.ReasonNotPair,
		pairing.ReasonEmptyBasename,
		pairing.ReasonBasenameMismatch,
		pairing.ReasonSameExtension,
	}
	lines := make([]string, 0, len(order))
	for _, reason := range order {
		if n := report.Skipped[reason]; n > 0 {
			lines = append(lines, p.Sprintf("%s: %d", reason, n))
		}
	}
	return lines
}

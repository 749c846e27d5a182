package opentimetables

import (
	"regexp"
	"strings"
)

// Pattern of a module code inside pasted text: an upper-case subject prefix
// and a number, optionally split by a single separator, as codes appear in
// tables copied from enrolment pages.
var moduleCodePattern = regexp.MustCompile(`\b([A-Z]{2,4})[-_/\t ]?([0-9]{2,4}[A-Z]?)\b`)

// Extracts module codes from pasted free-form text, normalising each match to
// a code without separators (so a tab-separated `CS	101` cell pair becomes
// `CS101`). Matches are deduplicated and keep their order of first
// appearance. No match at all returns an empty slice, which the CLI treats
// as fatal.
func ExtractModuleCodes(text string) []string {
	var codes []string
	seen := map[string]bool{}

	for _, match := range moduleCodePattern.FindAllStringSubmatch(text, -1) {
		code := strings.ToUpper(match[1] + match[2])
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

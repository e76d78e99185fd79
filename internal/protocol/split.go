package protocol

import "strings"

// headerIntroducer is the two-character prefix every header name starts with.
const headerIntroducer = "x-"

// SplitLine separates a raw line into leading data and a header segment.
//
// It returns []string{line} when no split is needed: the line is too short
// to hold a header, it already starts with a header, or it contains no
// header introducer at all. Otherwise it returns
// []string{leadingData, headerSegment}, split at the first introducer.
//
// Every two-character window is examined, including the last one, so an
// introducer in the final two characters of the line is still found.
func SplitLine(line string) []string {
	if len(line) < len(headerIntroducer) {
		return []string{line}
	}
	if strings.HasPrefix(line, headerIntroducer) {
		return []string{line}
	}

	i := strings.Index(line, headerIntroducer)
	if i < 0 {
		return []string{line}
	}
	return []string{line[:i], line[i:]}
}

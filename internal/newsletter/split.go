package newsletter

import "strings"

// SplitSections cuts the newsletter into blocks on delimiter lines, keeping
// source order. A delimiter is any line made only of '=' characters; the run
// length used by the feed is a formatting habit and is not checked.
func SplitSections(text string) []string {
	var (
		sections []string
		current  []string
	)

	flush := func() {
		block := strings.Join(current, "\n")
		if strings.TrimSpace(block) != "" {
			sections = append(sections, block)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if isDelimiter(line) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return sections
}

func isDelimiter(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && strings.Trim(line, "=") == ""
}

// blockLines returns the trimmed block split into lines, without the
// carriage returns left by CRLF feeds.
func blockLines(block string) []string {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

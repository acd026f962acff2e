// CLAUDE:SUMMARY Plain-text passthrough and shared line normalization.
package doctext

import (
	"os"
	"strings"
)

// extractText reads a plain-text document.
func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return normalizeLines(string(data)), nil
}

// normalizeLines trims each line, collapses runs of spaces and tabs inside
// lines, and drops blank lines. Line boundaries themselves are kept: the
// downstream tabular rule anchors on them.
func normalizeLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		out = append(out, strings.Join(fields, " "))
	}
	return strings.Join(out, "\n")
}

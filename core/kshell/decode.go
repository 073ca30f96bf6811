package kshell

import (
	"strings"
	"unicode/utf8"
)

// DecodeLine validates a raw line from the terminal and trims surrounding
// whitespace. It reports false if raw isn't valid UTF-8, in which case no
// command should run.
func DecodeLine(raw []byte) (string, bool) {
	if !utf8.Valid(raw) {
		return "", false
	}

	return strings.TrimSpace(string(raw)), true
}

// Fields splits a command line on runs of whitespace. The returned tokens are
// substrings of line.
func Fields(line string) []string {
	return strings.Fields(line)
}

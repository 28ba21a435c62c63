// Package markdown extracts Claude permission patterns from markdown
// documents. Bullet lines of the form "* `Bash(foo:*)`" or "- `Bash(foo:*)`"
// contribute their backtick-quoted token; everything else is ignored.
package markdown

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/schoolboyqueue/permkit/internal/settings"
)

// bulletPattern matches a bullet marker (* or -), whitespace, then a
// backtick-quoted token. Content after the closing backtick is ignored.
var bulletPattern = regexp.MustCompile("^[*-][ \t]+`([^`]+)`")

// ExtractPatterns reads a document line by line and returns the
// backtick-quoted tokens of its bullet lines, in line order, deduplicated
// first-occurrence-first. Lines that do not match the bullet shape are
// silently skipped; a document with no bullets yields an empty list.
func ExtractPatterns(r io.Reader) ([]string, error) {
	var patterns []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			patterns = append(patterns, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	return settings.DedupeStrings(patterns), nil
}

// ExtractFile extracts patterns from the markdown file at path.
func ExtractFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading markdown file %s: %w", path, err)
	}
	defer f.Close()

	patterns, err := ExtractPatterns(f)
	if err != nil {
		return nil, fmt.Errorf("extracting patterns from %s: %w", path, err)
	}
	return patterns, nil
}

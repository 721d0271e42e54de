// Package frontmatter splits hakkan content files into their header block and
// markdown body.
//
// A content file starts with `key: value` lines. The first blank (or
// whitespace only) line ends the header; it is discarded and every line after
// it is body, kept verbatim.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedHeaderLine is returned for a header line without a colon.
var ErrMalformedHeaderLine = errors.New("header line is not of the form key: value")

// Document is a split content file.
type Document struct {
	// Header holds the raw header lines in file order, line endings stripped.
	Header []string
	// Body is the text after the separator line, byte for byte.
	Body string
}

// Split separates the header block from the body. A file without a blank line
// is all header and has an empty body.
func Split(content string) (Document, error) {
	var doc Document
	rest := content
	for rest != "" {
		line, next, _ := strings.Cut(rest, "\n")
		rest = next
		if strings.TrimSpace(line) == "" {
			doc.Body = rest
			return doc, nil
		}
		doc.Header = append(doc.Header, strings.TrimSuffix(line, "\r"))
	}
	return doc, nil
}

// ParseLine splits one header line at its first colon. The key is trimmed and
// lowercased, the value trimmed.
func ParseLine(line string) (key, value string, err error) {
	k, v, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedHeaderLine, line)
	}
	return strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v), nil
}

// Field is one parsed header entry.
type Field struct {
	Key   string
	Value string
}

// ParseHeader parses every header line in order. Later duplicates of a key are
// kept; callers decide which one wins.
func ParseHeader(lines []string) ([]Field, error) {
	fields := make([]Field, 0, len(lines))
	for i, line := range lines {
		k, v, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("header line %d: %w", i+1, err)
		}
		fields = append(fields, Field{Key: k, Value: v})
	}
	return fields, nil
}

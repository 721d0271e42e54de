package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	t.Run("header and body", func(t *testing.T) {
		in := "Title: Hello\nDate: 2014-03-01 14:01:00\n\npara one\n\npara two\n"
		doc, err := Split(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"Title: Hello", "Date: 2014-03-01 14:01:00"}, doc.Header)
		assert.Equal(t, "para one\n\npara two\n", doc.Body)
	})

	t.Run("whitespace only line ends header", func(t *testing.T) {
		doc, err := Split("a: 1\n   \t\nbody")
		require.NoError(t, err)
		assert.Equal(t, []string{"a: 1"}, doc.Header)
		assert.Equal(t, "body", doc.Body)
	})

	t.Run("only the first blank line is dropped", func(t *testing.T) {
		doc, err := Split("a: 1\n\n\nbody\n")
		require.NoError(t, err)
		assert.Equal(t, "\nbody\n", doc.Body)
	})

	t.Run("crlf header lines", func(t *testing.T) {
		doc, err := Split("a: 1\r\n\r\nbody\r\n")
		require.NoError(t, err)
		assert.Equal(t, []string{"a: 1"}, doc.Header)
		assert.Equal(t, "body\r\n", doc.Body)
	})

	t.Run("no separator", func(t *testing.T) {
		doc, err := Split("a: 1\nb: 2")
		require.NoError(t, err)
		assert.Len(t, doc.Header, 2)
		assert.Empty(t, doc.Body)
	})

	t.Run("empty input", func(t *testing.T) {
		doc, err := Split("")
		require.NoError(t, err)
		assert.Empty(t, doc.Header)
		assert.Empty(t, doc.Body)
	})
}

func TestParseLine(t *testing.T) {
	cases := []struct {
		line, key, value string
	}{
		{"Title: Hello World", "title", "Hello World"},
		{"  SLUG :  my-slug  ", "slug", "my-slug"},
		{"Date: 2014-03-01 14:01:00", "date", "2014-03-01 14:01:00"},
		{"url: http://example.com/a", "url", "http://example.com/a"},
		{"empty:", "empty", ""},
	}
	for _, tc := range cases {
		k, v, err := ParseLine(tc.line)
		require.NoError(t, err, tc.line)
		assert.Equal(t, tc.key, k)
		assert.Equal(t, tc.value, v)
	}

	_, _, err := ParseLine("no colon here")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedHeaderLine))
}

func TestParseHeader(t *testing.T) {
	fields, err := ParseHeader([]string{"Title: a", "Tags: x, y"})
	require.NoError(t, err)
	assert.Equal(t, []Field{{"title", "a"}, {"tags", "x, y"}}, fields)

	_, err = ParseHeader([]string{"Title: a", "broken"})
	require.ErrorIs(t, err, ErrMalformedHeaderLine)
	assert.Contains(t, err.Error(), "header line 2")
}

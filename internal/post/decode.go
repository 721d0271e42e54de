package post

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Decode interprets data as UTF-8. A leading byte order mark is removed and
// every invalid byte sequence becomes U+FFFD.
func Decode(data []byte) string {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "�")
	}
	return string(out)
}

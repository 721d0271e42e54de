package markdown

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Excerpt returns the text of the first paragraph in rendered HTML, with
// whitespace collapsed and cut to at most limit runes. A limit of zero or less
// means no limit. Truncated excerpts end in an ellipsis.
func Excerpt(rendered string, limit int) string {
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return ""
	}
	p := findFirst(doc, atom.P)
	if p == nil {
		return ""
	}

	var b strings.Builder
	collectText(p, &b)
	text := strings.Join(strings.Fields(b.String()), " ")

	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := strings.TrimSpace(string(runes[:limit]))
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

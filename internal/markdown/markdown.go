// Package markdown converts post bodies to HTML with goldmark.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Converter turns a markdown body into HTML. Implementations must be safe for
// concurrent use.
type Converter interface {
	Convert(source string) (string, error)
}

// Goldmark is the default Converter.
type Goldmark struct {
	md goldmark.Markdown
}

// New returns a Goldmark converter with tables, strikethrough and smart
// punctuation enabled. Raw HTML in posts is passed through.
func New() *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&paragraphRenderer{}, 100),
			),
		),
	)
	return &Goldmark{md: md}
}

// Convert implements Converter.
func (g *Goldmark) Convert(source string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// paragraphRenderer separates consecutive blocks from a following paragraph
// with a blank line, so "a\n\nb" renders as "<p>a</p>\n\n<p>b</p>\n".
type paragraphRenderer struct{}

func (r *paragraphRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gmast.KindParagraph, r.renderParagraph)
}

func (r *paragraphRenderer) renderParagraph(w util.BufWriter, _ []byte, n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</p>\n")
		return gmast.WalkContinue, nil
	}
	if n.PreviousSibling() != nil {
		_ = w.WriteByte('\n')
	}
	if n.Attributes() != nil {
		_, _ = w.WriteString("<p")
		html.RenderAttributes(w, n, html.ParagraphAttributeFilter)
		_ = w.WriteByte('>')
	} else {
		_, _ = w.WriteString("<p>")
	}
	return gmast.WalkContinue, nil
}

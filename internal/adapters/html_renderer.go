package adapters

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// HTMLRenderer renders model markdown output into the small HTML subset the
// web UI displays verbatim. The subset matches what Telegram clients accept,
// so the same payload can be reused in bot messages.
type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

func (r *HTMLRenderer) Render(input string) string {
	extensions := parser.HardLineBreak | parser.NoEmptyLineBeforeBlock | parser.NoIntraEmphasis |
		parser.FencedCode | parser.Strikethrough | parser.SpaceHeadings | parser.BackslashLineBreak
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(input))

	var buf bytes.Buffer
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		return renderNode(&buf, node, entering)
	})
	return buf.String()
}

func renderNode(w io.Writer, node ast.Node, entering bool) ast.WalkStatus {
	switch n := node.(type) {
	case *ast.Document:
	case *ast.Paragraph:
		if entering {
			io.WriteString(w, "\n")
		}
	case *ast.Text:
		html.EscapeHTML(w, n.Literal)
	case *ast.Strong, *ast.Heading:
		tagPair(w, entering, "b")
	case *ast.Emph:
		tagPair(w, entering, "i")
	case *ast.Del:
		tagPair(w, entering, "s")
	case *ast.Code:
		io.WriteString(w, "<code>")
		html.EscapeHTML(w, n.Literal)
		io.WriteString(w, "</code> ")
	case *ast.Link:
		if entering {
			io.WriteString(w, "<a href=\"")
			html.EscLink(w, n.Destination)
			io.WriteString(w, "\">")
		} else {
			io.WriteString(w, "</a> ")
		}
	case *ast.BlockQuote:
		io.WriteString(w, "\n")
		tagPair(w, entering, "blockquote")
	case *ast.CodeBlock:
		io.WriteString(w, "\n")
		renderCodeBlock(w, n)
		io.WriteString(w, "\n")
	case *ast.List:
	case *ast.ListItem:
		if entering {
			io.WriteString(w, "\n")
			io.WriteString(w, listItemPrefix(n))
		}
	default:
		return ast.SkipChildren
	}

	return ast.GoToNext
}

func tagPair(w io.Writer, entering bool, tag string) {
	if entering {
		fmt.Fprintf(w, "<%s>", tag)
	} else {
		fmt.Fprintf(w, "</%s> ", tag)
	}
}

func listItemPrefix(item *ast.ListItem) string {
	list, ok := item.GetParent().(*ast.List)
	if !ok {
		return ""
	}
	prefix := " - "
	if list.Start > 0 {
		for i, child := range list.GetChildren() {
			if child == item {
				prefix = fmt.Sprintf("%d. ", list.Start+i)
				break
			}
		}
	}
	if _, nested := list.GetParent().(*ast.List); nested {
		prefix = "  " + prefix
	}
	return prefix
}

func renderCodeBlock(w io.Writer, n *ast.CodeBlock) {
	if len(n.Info) > 0 {
		fmt.Fprintf(w, "<pre><code class=\"language-%s\">", bytes.TrimSpace(n.Info))
	} else {
		io.WriteString(w, "<pre><code>")
	}
	html.EscapeHTML(w, n.Literal)
	io.WriteString(w, "</code></pre>")
}

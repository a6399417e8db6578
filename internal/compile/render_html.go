package compile

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// RenderHTML renders a compiled document as an HTML fragment, binding the
// tree to the given rule table. Classes come from the rules; highlighted
// code spans get chroma's standard short classes.
func RenderHTML(doc *Document, rules Rules) string {
	var b strings.Builder
	r := htmlRenderer{rules: rules}
	for _, c := range doc.Root.Children {
		r.node(&b, c)
	}
	return b.String()
}

type htmlRenderer struct {
	rules Rules
}

func (r htmlRenderer) node(b *strings.Builder, n *Node) {
	switch n.Kind {
	case KindHeading:
		style := r.rules.HeadingStyle(n.Level)
		fmt.Fprintf(b, "<h%d%s>", n.Level, classAttr(style))
		r.children(b, n)
		fmt.Fprintf(b, "</h%d>\n", n.Level)
	case KindParagraph:
		b.WriteString("<p" + classAttr(r.rules.Paragraph) + ">")
		r.children(b, n)
		b.WriteString("</p>\n")
	case KindText:
		b.WriteString(html.EscapeString(n.Text))
	case KindEmph:
		b.WriteString("<em>")
		r.children(b, n)
		b.WriteString("</em>")
	case KindStrong:
		b.WriteString("<strong>")
		r.children(b, n)
		b.WriteString("</strong>")
	case KindStrikethrough:
		b.WriteString("<del>")
		r.children(b, n)
		b.WriteString("</del>")
	case KindCodeSpan:
		b.WriteString("<code" + classAttr(r.rules.CodeSpan) + ">")
		b.WriteString(html.EscapeString(n.Text))
		b.WriteString("</code>")
	case KindCodeBlock:
		b.WriteString("<pre" + classAttr(r.rules.CodeBlock) + "><code>")
		if n.Spans != nil {
			for _, span := range n.Spans {
				class := chroma.StandardTypes[span.Type]
				if class == "" {
					class = chroma.StandardTypes[span.Type.Category()]
				}
				if class != "" {
					fmt.Fprintf(b, `<span class=%q>%s</span>`, class, html.EscapeString(span.Text))
				} else {
					b.WriteString(html.EscapeString(span.Text))
				}
			}
		} else {
			b.WriteString(html.EscapeString(n.Text))
		}
		b.WriteString("</code></pre>\n")
	case KindQuote:
		b.WriteString("<blockquote" + classAttr(r.rules.Quote) + ">\n")
		r.children(b, n)
		b.WriteString("</blockquote>\n")
	case KindList:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		b.WriteString("<" + tag + classAttr(r.rules.List) + ">\n")
		r.children(b, n)
		b.WriteString("</" + tag + ">\n")
	case KindListItem:
		b.WriteString("<li>")
		r.children(b, n)
		b.WriteString("</li>\n")
	case KindTaskCheckbox:
		if n.Checked != nil && *n.Checked {
			b.WriteString(`<input type="checkbox" checked disabled> `)
		} else {
			b.WriteString(`<input type="checkbox" disabled> `)
		}
	case KindLink:
		fmt.Fprintf(b, `<a href=%q%s>`, n.Href, classAttr(r.rules.Link))
		r.children(b, n)
		b.WriteString("</a>")
	case KindImage:
		var alt strings.Builder
		textContent(&alt, n)
		fmt.Fprintf(b, `<img src=%q alt=%q>`, n.Href, alt.String())
	case KindThematicBreak:
		b.WriteString("<hr>\n")
	case KindTable:
		b.WriteString("<table>\n")
		r.children(b, n)
		b.WriteString("</table>\n")
	case KindTableRow:
		b.WriteString("<tr>")
		cell := "td"
		if n.Header {
			cell = "th"
		}
		for _, c := range n.Children {
			b.WriteString("<" + cell + ">")
			r.children(b, c)
			b.WriteString("</" + cell + ">")
		}
		b.WriteString("</tr>\n")
	default:
		r.children(b, n)
	}
}

func (r htmlRenderer) children(b *strings.Builder, n *Node) {
	for _, c := range n.Children {
		r.node(b, c)
	}
}

func textContent(b *strings.Builder, n *Node) {
	if n.Kind == KindText {
		b.WriteString(n.Text)
	}
	for _, c := range n.Children {
		textContent(b, c)
	}
}

func classAttr(s Style) string {
	if s.Class == "" {
		return ""
	}
	return fmt.Sprintf(" class=%q", s.Class)
}

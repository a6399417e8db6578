package compile

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// RenderText renders a compiled document for a terminal, binding the tree to
// the given rule table. ANSI styling comes entirely from the rules; the same
// tree renders differently under a different table.
func RenderText(doc *Document, rules Rules) string {
	var b strings.Builder
	r := textRenderer{rules: rules}
	r.block(&b, doc.Root, "")
	return b.String()
}

type textRenderer struct {
	rules Rules
}

func (r textRenderer) block(b *strings.Builder, n *Node, indent string) {
	switch n.Kind {
	case KindDocument:
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString("\n")
			}
			r.block(b, c, indent)
		}
	case KindHeading:
		style := r.rules.HeadingStyle(n.Level)
		b.WriteString(indent)
		b.WriteString(style.ANSI)
		b.WriteString(strings.Repeat("#", n.Level))
		b.WriteString(" ")
		r.inlineChildren(b, n)
		b.WriteString(ansiReset)
		b.WriteString("\n")
	case KindParagraph:
		b.WriteString(indent)
		b.WriteString(r.rules.Paragraph.ANSI)
		r.inlineChildren(b, n)
		b.WriteString(ansiReset)
		b.WriteString("\n")
	case KindQuote:
		var inner strings.Builder
		for _, c := range n.Children {
			r.block(&inner, c, "")
		}
		style := r.rules.Quote
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			b.WriteString(indent)
			b.WriteString(style.ANSI)
			b.WriteString("│ ")
			b.WriteString(line)
			b.WriteString(ansiReset)
			b.WriteString("\n")
		}
	case KindCodeBlock:
		r.codeBlock(b, n, indent)
	case KindList:
		num := n.Start
		for _, item := range n.Children {
			marker := "• "
			if n.Ordered {
				marker = fmt.Sprintf("%d. ", num)
				num++
			}
			b.WriteString(indent)
			b.WriteString(r.rules.List.ANSI)
			b.WriteString(marker)
			b.WriteString(ansiReset)
			r.listItem(b, item, indent+strings.Repeat(" ", len(marker)))
		}
	case KindThematicBreak:
		b.WriteString(indent)
		b.WriteString(strings.Repeat("─", 40))
		b.WriteString("\n")
	case KindTable:
		r.table(b, n, indent)
	default:
		// Inline content at block position, e.g. loose text.
		b.WriteString(indent)
		r.inline(b, n)
		b.WriteString("\n")
	}
}

// listItem renders the first block of a list item on the marker's line and
// the remaining blocks indented under it.
func (r textRenderer) listItem(b *strings.Builder, item *Node, indent string) {
	if len(item.Children) == 0 {
		b.WriteString("\n")
		return
	}
	var first strings.Builder
	r.block(&first, item.Children[0], "")
	b.WriteString(first.String())
	for _, c := range item.Children[1:] {
		r.block(b, c, indent)
	}
}

func (r textRenderer) codeBlock(b *strings.Builder, n *Node, indent string) {
	style := r.rules.CodeBlock
	text := n.Text
	if n.Spans != nil {
		var hb strings.Builder
		for _, span := range n.Spans {
			hb.WriteString(tokenANSI(span.Type))
			hb.WriteString(span.Text)
			hb.WriteString(ansiReset)
		}
		text = hb.String()
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.WriteString(indent)
		b.WriteString("    ")
		if n.Spans == nil {
			b.WriteString(style.ANSI)
		}
		b.WriteString(line)
		b.WriteString(ansiReset)
		b.WriteString("\n")
	}
}

func (r textRenderer) table(b *strings.Builder, n *Node, indent string) {
	for _, row := range n.Children {
		b.WriteString(indent)
		cells := make([]string, 0, len(row.Children))
		for _, cell := range row.Children {
			var cb strings.Builder
			r.inlineChildren(&cb, cell)
			cells = append(cells, cb.String())
		}
		if row.Header {
			b.WriteString(ansiBold)
		}
		b.WriteString(strings.Join(cells, " | "))
		if row.Header {
			b.WriteString(ansiReset)
		}
		b.WriteString("\n")
	}
}

func (r textRenderer) inlineChildren(b *strings.Builder, n *Node) {
	for _, c := range n.Children {
		r.inline(b, c)
	}
}

func (r textRenderer) inline(b *strings.Builder, n *Node) {
	switch n.Kind {
	case KindText:
		b.WriteString(n.Text)
	case KindEmph:
		b.WriteString(ansiItalic)
		r.inlineChildren(b, n)
		b.WriteString(ansiReset)
	case KindStrong:
		b.WriteString(ansiBold)
		r.inlineChildren(b, n)
		b.WriteString(ansiReset)
	case KindStrikethrough:
		b.WriteString("~~")
		r.inlineChildren(b, n)
		b.WriteString("~~")
	case KindCodeSpan:
		b.WriteString(r.rules.CodeSpan.ANSI)
		b.WriteString(n.Text)
		b.WriteString(ansiReset)
	case KindLink:
		b.WriteString(r.rules.Link.ANSI)
		r.inlineChildren(b, n)
		b.WriteString(ansiReset)
		if n.Href != "" {
			b.WriteString(ansiGray)
			b.WriteString(" (")
			b.WriteString(n.Href)
			b.WriteString(")")
			b.WriteString(ansiReset)
		}
	case KindImage:
		b.WriteString(ansiGray)
		b.WriteString("[image: ")
		r.inlineChildren(b, n)
		b.WriteString(" ")
		b.WriteString(n.Href)
		b.WriteString("]")
		b.WriteString(ansiReset)
	case KindTaskCheckbox:
		if n.Checked != nil && *n.Checked {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
	default:
		r.inlineChildren(b, n)
	}
}

// tokenANSI maps broad chroma token categories to terminal colors. The
// palette is deliberately small.
func tokenANSI(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Keyword):
		return "\x1b[35m"
	case t.InSubCategory(chroma.LiteralNumber):
		return "\x1b[33m"
	case t.InCategory(chroma.Literal):
		return ansiGreen
	case t.InCategory(chroma.Comment):
		return ansiGray
	case t.InCategory(chroma.Name):
		return "\x1b[36m"
	}
	return ""
}

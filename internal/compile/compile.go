// Package compile turns an article's raw markdown body into a typed,
// renderable document tree.
//
// Compilation runs in three passes: the source is parsed into a syntax tree
// honoring the GFM dialect (tables, strikethrough, task lists), fenced code
// blocks are run through a syntax highlighter, and relative media references
// are rewritten against the platform's base URL. The result binds to a
// renderer rule table only at render time; the tree itself carries no
// presentation state, so compiling the same source twice yields equivalent
// trees.
package compile

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ErrUnsupported marks document source containing constructs this client
// cannot render, such as embedded HTML fragments.
var ErrUnsupported = errors.New("unsupported document construct")

// Options configure one compilation.
type Options struct {
	// MediaBase resolves relative image references. Nil leaves them as-is.
	MediaBase *url.URL
	// Highlight enables the syntax highlighting pass over fenced code
	// blocks.
	Highlight bool
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Compile parses source into a document tree. It has no side effects and no
// shared state; identical source and options always produce an equivalent
// tree. The context is checked between passes so a caller that has been
// torn down can abandon the work.
func Compile(ctx context.Context, source []byte, opts Options) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := markdown.Parser().Parse(text.NewReader(source))
	tree, err := convert(root, source)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Highlight {
		highlight(tree)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.MediaBase != nil {
		resolveMedia(tree, opts.MediaBase)
	}

	return &Document{Root: tree}, nil
}

// convert maps one goldmark node, and recursively its children, onto the
// compiled node shape.
func convert(n ast.Node, src []byte) (*Node, error) {
	out := &Node{}
	descend := true

	switch v := n.(type) {
	case *ast.Document:
		out.Kind = KindDocument
	case *ast.Heading:
		out.Kind = KindHeading
		out.Level = v.Level
	case *ast.Paragraph:
		out.Kind = KindParagraph
	case *ast.TextBlock:
		out.Kind = KindParagraph
	case *ast.Text:
		out.Kind = KindText
		out.Text = string(v.Segment.Value(src))
		if v.HardLineBreak() {
			out.Text += "\n"
		} else if v.SoftLineBreak() {
			out.Text += " "
		}
	case *ast.String:
		out.Kind = KindText
		out.Text = string(v.Value)
	case *ast.Emphasis:
		if v.Level >= 2 {
			out.Kind = KindStrong
		} else {
			out.Kind = KindEmph
		}
	case *east.Strikethrough:
		out.Kind = KindStrikethrough
	case *ast.FencedCodeBlock:
		out.Kind = KindCodeBlock
		out.Lang = string(v.Language(src))
		out.Text = blockLines(v, src)
		descend = false
	case *ast.CodeBlock:
		out.Kind = KindCodeBlock
		out.Text = blockLines(v, src)
		descend = false
	case *ast.CodeSpan:
		out.Kind = KindCodeSpan
		out.Text = spanText(v, src)
		descend = false
	case *ast.Blockquote:
		out.Kind = KindQuote
	case *ast.List:
		out.Kind = KindList
		out.Ordered = v.IsOrdered()
		out.Start = v.Start
	case *ast.ListItem:
		out.Kind = KindListItem
	case *east.TaskCheckBox:
		out.Kind = KindTaskCheckbox
		checked := v.IsChecked
		out.Checked = &checked
	case *ast.Link:
		out.Kind = KindLink
		out.Href = string(v.Destination)
		out.Title = string(v.Title)
	case *ast.AutoLink:
		out.Kind = KindLink
		out.Href = string(v.URL(src))
		out.Children = []*Node{{Kind: KindText, Text: string(v.Label(src))}}
		descend = false
	case *ast.Image:
		out.Kind = KindImage
		out.Href = string(v.Destination)
		out.Title = string(v.Title)
	case *ast.ThematicBreak:
		out.Kind = KindThematicBreak
	case *east.Table:
		out.Kind = KindTable
		for _, a := range v.Alignments {
			out.Align = append(out.Align, tableAlign(a))
		}
	case *east.TableHeader:
		out.Kind = KindTableRow
		out.Header = true
	case *east.TableRow:
		out.Kind = KindTableRow
	case *east.TableCell:
		out.Kind = KindTableCell
	case *ast.HTMLBlock, *ast.RawHTML:
		return nil, fmt.Errorf("%w: embedded HTML", ErrUnsupported)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.Kind())
	}

	if !descend {
		return out, nil
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		child, err := convert(c, src)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, child)
	}
	return out, nil
}

func blockLines(n interface {
	Lines() *text.Segments
}, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

func spanText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
		}
	}
	return b.String()
}

func tableAlign(a east.Alignment) Align {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	}
	return AlignNone
}

// resolveMedia rewrites relative image references in place against base.
// Absolute references and unparseable ones are left alone.
func resolveMedia(n *Node, base *url.URL) {
	if n.Kind == KindImage && n.Href != "" {
		if ref, err := url.Parse(n.Href); err == nil && !ref.IsAbs() {
			n.Href = base.ResolveReference(ref).String()
		}
	}
	for _, c := range n.Children {
		resolveMedia(c, base)
	}
}

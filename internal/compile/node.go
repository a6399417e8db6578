package compile

import "github.com/alecthomas/chroma/v2"

// Kind identifies the type of a compiled node.
type Kind int

const (
	KindDocument Kind = iota
	KindHeading
	KindParagraph
	KindText
	KindEmph
	KindStrong
	KindStrikethrough
	KindCodeBlock
	KindCodeSpan
	KindQuote
	KindList
	KindListItem
	KindTaskCheckbox
	KindLink
	KindImage
	KindThematicBreak
	KindTable
	KindTableRow
	KindTableCell
)

var kindNames = map[Kind]string{
	KindDocument:      "document",
	KindHeading:       "heading",
	KindParagraph:     "paragraph",
	KindText:          "text",
	KindEmph:          "emph",
	KindStrong:        "strong",
	KindStrikethrough: "strikethrough",
	KindCodeBlock:     "code-block",
	KindCodeSpan:      "code-span",
	KindQuote:         "quote",
	KindList:          "list",
	KindListItem:      "list-item",
	KindTaskCheckbox:  "task-checkbox",
	KindLink:          "link",
	KindImage:         "image",
	KindThematicBreak: "thematic-break",
	KindTable:         "table",
	KindTableRow:      "table-row",
	KindTableCell:     "table-cell",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Span is a run of code-block text with a single syntax class, produced by
// the highlighting pass.
type Span struct {
	Type chroma.TokenType
	Text string
}

// Node is one typed node of a compiled document. Which fields are meaningful
// depends on Kind; everything else stays at its zero value.
type Node struct {
	Kind Kind

	Level   int     // heading level, 1..6
	Text    string  // text, code span and raw code block content
	Lang    string  // fenced code block language tag
	Href    string  // link and image destination
	Title   string  // link title
	Ordered bool    // list: numbered rather than bulleted
	Start   int     // ordered list: first number
	Checked *bool   // task checkbox state
	Header  bool    // table row: part of the header
	Spans   []Span  // code block: highlighted runs, nil until highlighted
	Align   []Align // table: per-column alignment

	Children []*Node
}

type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Document is a compiled, renderable article body. It is never mutated
// after Compile returns; a new source always produces a whole new tree.
type Document struct {
	Root *Node
}

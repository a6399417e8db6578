package compile

// Style is the presentation rule bound to one node kind. ANSI is the escape
// sequence a terminal renderer opens the node with; Class is the class an
// HTML renderer puts on the element. Empty means unstyled.
type Style struct {
	ANSI  string
	Class string
}

// Rules is the renderer override table handed to Compile's consumers. It is
// fixed per screen: the detail view builds it once and every document
// compiled for that view binds to the same table.
type Rules struct {
	Heading   map[int]Style
	Paragraph Style
	CodeBlock Style
	CodeSpan  Style
	Quote     Style
	List      Style
	Link      Style
}

const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiItalic    = "\x1b[3m"
	ansiBlue      = "\x1b[34m"
	ansiBoldBlue  = "\x1b[1;34m"
	ansiGreen     = "\x1b[32m"
	ansiGray      = "\x1b[90m"
	ansiUnderline = "\x1b[4m"
)

// DefaultRules is the table used by every screen: bold blue top headings,
// green monospace code, dimmed italic quotes, underlined links.
func DefaultRules() Rules {
	return Rules{
		Heading: map[int]Style{
			1: {ANSI: ansiBoldBlue, Class: "title"},
			2: {ANSI: ansiBold, Class: "subtitle"},
			3: {ANSI: ansiBold, Class: "section"},
		},
		Paragraph: Style{Class: "body"},
		CodeBlock: Style{ANSI: ansiGreen, Class: "code"},
		CodeSpan:  Style{ANSI: ansiGreen, Class: "inline-code"},
		Quote:     Style{ANSI: ansiGray + ansiItalic, Class: "quote"},
		List:      Style{Class: "list"},
		Link:      Style{ANSI: ansiUnderline + ansiBlue, Class: "link"},
	}
}

// HeadingStyle returns the style for a heading level, falling back to the
// deepest configured level.
func (r Rules) HeadingStyle(level int) Style {
	if s, ok := r.Heading[level]; ok {
		return s
	}
	max := 0
	for l := range r.Heading {
		if l > max && l < level {
			max = l
		}
	}
	return r.Heading[max]
}

package compile

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// highlight tokenizes every code block in the tree into styled spans. A
// block whose language has no lexer, or that the lexer chokes on, keeps its
// plain text and nil Spans.
func highlight(n *Node) {
	if n.Kind == KindCodeBlock {
		n.Spans = tokenize(n.Lang, n.Text)
	}
	for _, c := range n.Children {
		highlight(c)
	}
}

func tokenize(lang, code string) []Span {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil
	}

	var spans []Span
	for _, tok := range it.Tokens() {
		spans = append(spans, Span{Type: tok.Type, Text: tok.Value})
	}
	return spans
}

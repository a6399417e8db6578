package compile

import (
	"strings"
	"testing"
)

func TestRenderTextBindsRules(t *testing.T) {
	doc := mustCompile(t, "# Title\n\nBody text.\n", Options{})

	out := RenderText(doc, DefaultRules())
	if !strings.Contains(out, "# Title") {
		t.Errorf("heading missing from output:\n%s", out)
	}
	if !strings.Contains(out, ansiBoldBlue) {
		t.Error("level 1 heading should open with the rule's style")
	}

	// A different table produces different output from the same tree.
	plain := Rules{Heading: map[int]Style{1: {}}}
	if RenderText(doc, plain) == out {
		t.Error("rules had no effect on rendering")
	}
}

func TestRenderTextList(t *testing.T) {
	doc := mustCompile(t, "1. one\n2. two\n\n- bullet\n", Options{})
	out := RenderText(doc, DefaultRules())

	for _, want := range []string{"1. one", "2. two", "• bullet"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTextQuotePrefix(t *testing.T) {
	doc := mustCompile(t, "> quoted\n", Options{})
	out := RenderText(doc, DefaultRules())
	if !strings.Contains(out, "│ quoted") {
		t.Errorf("quote marker missing:\n%s", out)
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	doc := mustCompile(t, "a < b & c\n", Options{})
	out := RenderHTML(doc, DefaultRules())
	if !strings.Contains(out, "a &lt; b &amp; c") {
		t.Errorf("text not escaped:\n%s", out)
	}
}

func TestRenderHTMLStructure(t *testing.T) {
	doc := mustCompile(t, "## Sub\n\npara with `code`\n\n```go\nx := 1\n```\n", Options{Highlight: true})
	out := RenderHTML(doc, DefaultRules())

	for _, want := range []string{
		`<h2 class="subtitle">Sub</h2>`,
		`<p class="body">`,
		`<code class="inline-code">code</code>`,
		`<pre class="code"><code>`,
		`<span class=`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHTMLCheckbox(t *testing.T) {
	doc := mustCompile(t, "- [x] done\n", Options{})
	out := RenderHTML(doc, DefaultRules())
	if !strings.Contains(out, `<input type="checkbox" checked disabled>`) {
		t.Errorf("checked box missing:\n%s", out)
	}
}

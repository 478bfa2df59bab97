package rst

import (
	"strings"
	"testing"
)

// collectText concatenates every Leaf's text reachable from n, depth-first.
func collectText(n *Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(n.Text)
	for _, c := range n.Children {
		sb.WriteString(collectText(c))
	}
	return sb.String()
}

// findFirst returns the first node of kind k in a depth-first walk of n.
func findFirst(n *Node, k NodeKind) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == k {
		return n
	}
	for _, c := range n.Children {
		if found := findFirst(c, k); found != nil {
			return found
		}
	}
	return nil
}

func mustParse(t *testing.T, text string, opts ParseOptions) (*Node, bool) {
	t.Helper()
	ast, hasToc, err := Parse(text, "<test>", 0, 0, opts, nil, nil)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", text, err)
	}
	return ast, hasToc
}

func TestParseSimpleParagraph(t *testing.T) {
	ast, _ := mustParse(t, "hello world\n", ParseOptions{})
	p := findFirst(ast, KindParagraph)
	if p == nil {
		t.Fatalf("expected a Paragraph node, got %v", ast)
	}
	if got := collectText(p); got != "hello world" {
		t.Errorf("got text %q, want %q", got, "hello world")
	}
}

func TestParseTwoParagraphsStaySeparate(t *testing.T) {
	ast, _ := mustParse(t, "first paragraph.\n\nsecond paragraph.\n", ParseOptions{})
	var paras []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Kind == KindParagraph {
			paras = append(paras, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(ast)
	if len(paras) != 2 {
		t.Fatalf("expected 2 separate paragraphs, got %d: %v", len(paras), ast)
	}
	if got := collectText(paras[0]); got != "first paragraph." {
		t.Errorf("paragraph 0 = %q, want %q", got, "first paragraph.")
	}
	if got := collectText(paras[1]); got != "second paragraph." {
		t.Errorf("paragraph 1 = %q, want %q", got, "second paragraph.")
	}
}

func TestParseWrappedParagraphLineJoinsWithSingleSpace(t *testing.T) {
	ast, _ := mustParse(t, "hello\nworld\n", ParseOptions{})
	p := findFirst(ast, KindParagraph)
	if p == nil {
		t.Fatalf("expected a Paragraph node, got %v", ast)
	}
	if got := collectText(p); got != "hello world" {
		t.Errorf("got text %q, want %q", got, "hello world")
	}
}

func TestParseHeadlineLevel(t *testing.T) {
	ast, _ := mustParse(t, "Title\n=====\n\nBody text.\n", ParseOptions{})
	h := findFirst(ast, KindHeadline)
	if h == nil {
		t.Fatalf("expected a Headline node, got %v", ast)
	}
	if h.Level != 1 {
		t.Errorf("expected first-seen underline char to be level 1, got %d", h.Level)
	}
	if got := collectText(h); got != "Title" {
		t.Errorf("got headline text %q, want %q", got, "Title")
	}
}

func TestParseTwoHeadlineLevelsAssignedInOrder(t *testing.T) {
	// Underline runs must be at least 4 characters to lex as ADORNMENT
	// rather than PUNCT (see token.go lexPunctRun); shorter runs would
	// not classify as headlines at all.
	ast, _ := mustParse(t, "A\n====\n\nB\n----\n\nC\n====\n", ParseOptions{})
	var levels []int
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Kind == KindHeadline {
			levels = append(levels, n.Level)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(ast)
	want := []int{1, 2, 1}
	if len(levels) != len(want) {
		t.Fatalf("got levels %v, want %v", levels, want)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("level %d: got %d, want %d", i, levels[i], want[i])
		}
	}
}

func TestParseBulletList(t *testing.T) {
	ast, _ := mustParse(t, "- one\n- two\n- three\n", ParseOptions{})
	bl := findFirst(ast, KindBulletList)
	if bl == nil {
		t.Fatalf("expected a BulletList node, got %v", ast)
	}
	if len(bl.Children) != 3 {
		t.Fatalf("expected 3 bullet items, got %d", len(bl.Children))
	}
	for i, c := range bl.Children {
		if c.Kind != KindBulletItem {
			t.Errorf("child %d: got kind %s, want BulletItem", i, c.Kind)
		}
	}
}

func TestParseLiteralBlock(t *testing.T) {
	ast, _ := mustParse(t, "see::\n\n    code here\n", ParseOptions{})
	lb := findFirst(ast, KindLiteralBlock)
	if lb == nil {
		t.Fatalf("expected a LiteralBlock node, got %v", ast)
	}
	if got := collectText(lb); got != "code here" {
		t.Errorf("got literal text %q, want %q", got, "code here")
	}
}

func TestParseHyperlinkTargetAndReference(t *testing.T) {
	ast, _ := mustParse(t, ".. _foo: https://example.com\n\nsee `foo`_\n", ParseOptions{})
	h := findFirst(ast, KindHyperlink)
	if h == nil {
		t.Fatalf("expected `foo`_ to resolve into a Hyperlink node, got %v", ast)
	}
	if got := collectText(h); !strings.Contains(got, "https://example.com") {
		t.Errorf("expected resolved hyperlink to carry the target URL, got %q", got)
	}
}

func TestParseContentsSetsHasToc(t *testing.T) {
	_, hasToc := mustParse(t, ".. contents::\n", ParseOptions{})
	if !hasToc {
		t.Errorf("expected the contents directive to set hasToc")
	}
}

func TestParseRawDirectiveDisabledByDefault(t *testing.T) {
	var gotKind MsgKind
	handler := func(filename string, line, col int, kind MsgKind, arg string) {
		if kind.Severity() == SeverityWarning {
			gotKind = kind
		}
	}
	_, _, err := Parse(".. raw:: html\n\n    <b>hi</b>\n", "<test>", 0, 0, ParseOptions{SupportRawDirective: false}, nil, handler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKind != MsgUnsupportedRawHTML {
		t.Errorf("expected MsgUnsupportedRawHTML when raw directive support is disabled, got %v", gotKind)
	}
}

func TestParseUnknownDirectiveReportsError(t *testing.T) {
	_, _, err := Parse(".. bogus-directive:: arg\n", "<test>", 0, 0, ParseOptions{}, nil, nil)
	if err == nil {
		t.Fatalf("expected an error for an unrecognized directive name")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected a *ParseError, got %T", err)
	}
	if pe.Kind != MsgInvalidDirective {
		t.Errorf("got MsgKind %v, want MsgInvalidDirective", pe.Kind)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	ast, hasToc := mustParse(t, "", ParseOptions{})
	if ast == nil {
		t.Fatalf("expected a non-nil root node for empty input")
	}
	if hasToc {
		t.Errorf("empty document should not have a table of contents")
	}
}

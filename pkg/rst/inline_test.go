package rst

import "testing"

func parseInlineLine(t *testing.T, src string, opts ParseOptions) []*Node {
	t.Helper()
	toks, _ := Lex(src, false, nil)
	state := newSharedState(opts, DefaultMsgHandler, nil)
	f := newFrame(state, toks, "<test>", 0, 0)
	nodes, _ := f.parseParagraphLine()
	return mergeLeaves(nodes)
}

func TestEmphasisSpans(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind NodeKind
	}{
		{"single star", "*word*", KindEmphasis},
		{"double star", "**word**", KindStrongEmphasis},
		{"triple star", "***word***", KindTripleEmphasis},
		{"double backtick", "``word``", KindInlineLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := parseInlineLine(t, tt.src, ParseOptions{})
			if len(nodes) == 0 || nodes[0].Kind != tt.kind {
				t.Fatalf("parsing %q: got %v, want first node kind %s", tt.src, nodes, tt.kind)
			}
		})
	}
}

func TestEmphasisNotTriggeredWithoutWhitespaceBoundary(t *testing.T) {
	// Rule 1/2: an opening marker must be preceded by whitespace, a
	// string start, or an opener character, and not be followed by
	// whitespace. "a*b*c" has no such boundary before the first "*".
	nodes := parseInlineLine(t, "a*b*c", ParseOptions{})
	for _, n := range nodes {
		if n.Kind == KindEmphasis {
			t.Fatalf("did not expect emphasis to trigger mid-word, got %v", nodes)
		}
	}
}

func TestInterpretedTextWithoutTrailingUnderscoreStaysInterpretedText(t *testing.T) {
	nodes := parseInlineLine(t, "`plain text`", ParseOptions{})
	if len(nodes) == 0 || nodes[0].Kind != KindInterpretedText {
		t.Fatalf("expected a role-less backtick span to stay InterpretedText, got %v", nodes)
	}
}

func TestInterpretedTextWithRoleSuffix(t *testing.T) {
	nodes := parseInlineLine(t, "`x`:strong:", ParseOptions{})
	if len(nodes) == 0 || nodes[0].Kind != KindStrongEmphasis {
		t.Fatalf("expected :strong: role suffix to retag to StrongEmphasis, got %v", nodes)
	}
}

func TestInterpretedTextWithUnknownRoleWrapsGeneralRole(t *testing.T) {
	nodes := parseInlineLine(t, "`x`:custom:", ParseOptions{})
	if len(nodes) == 0 || nodes[0].Kind != KindGeneralRole {
		t.Fatalf("expected unrecognized role to wrap in GeneralRole, got %v", nodes)
	}
}

func TestPlainReferenceRetagsToRef(t *testing.T) {
	nodes := parseInlineLine(t, "`label`_", ParseOptions{})
	if len(nodes) == 0 || nodes[0].Kind != KindRef {
		t.Fatalf("expected trailing underscore to retag to Ref, got %v", nodes)
	}
	if nodes[0].Text != "label" {
		t.Errorf("expected Ref.Text to be the normalized label, got %q", nodes[0].Text)
	}
}

func TestEmbeddedURIReferenceSplitsLabelAndTarget(t *testing.T) {
	nodes := parseInlineLine(t, "`Example <http://example.com>`_", ParseOptions{})
	if len(nodes) == 0 || nodes[0].Kind != KindHyperlink {
		t.Fatalf("expected an embedded URI reference to become a Hyperlink, got %v", nodes)
	}
}

func TestStandaloneURLRecognition(t *testing.T) {
	nodes := parseInlineLine(t, "http://example.com/path", ParseOptions{})
	if len(nodes) == 0 || nodes[0].Kind != KindStandaloneHyperlink {
		t.Fatalf("expected a bare URL to become StandaloneHyperlink, got %v", nodes)
	}
	if nodes[0].Text != "http://example.com/path" {
		t.Errorf("got URL text %q", nodes[0].Text)
	}
}

func TestSmileyRecognitionGatedByOption(t *testing.T) {
	nodes := parseInlineLine(t, ":-)", ParseOptions{SupportSmileys: true})
	if len(nodes) == 0 || nodes[0].Kind != KindSmiley {
		t.Fatalf("expected a smiley node with SupportSmileys on, got %v", nodes)
	}

	nodes = parseInlineLine(t, ":-)", ParseOptions{SupportSmileys: false})
	for _, n := range nodes {
		if n.Kind == KindSmiley {
			t.Fatalf("did not expect a smiley node with SupportSmileys off, got %v", nodes)
		}
	}
}

func TestBackslashEscape(t *testing.T) {
	nodes := parseInlineLine(t, `\*not emphasis\*`, ParseOptions{})
	text := collectText(&Node{Children: nodes})
	if text != "*not emphasis*" {
		t.Errorf("expected backslash escapes to emit literal characters, got %q", text)
	}
	for _, n := range nodes {
		if n.Kind == KindEmphasis {
			t.Fatalf("escaped asterisks must not trigger emphasis, got %v", nodes)
		}
	}
}

func TestFencedCodeRequiresMarkdownOption(t *testing.T) {
	nodes := parseInlineLine(t, "```code```", ParseOptions{SupportMarkdown: true})
	if len(nodes) == 0 || nodes[0].Kind != KindCodeBlock {
		t.Fatalf("expected fenced code with SupportMarkdown on, got %v", nodes)
	}
}

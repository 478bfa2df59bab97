package rst

import "testing"

func TestLexBasicKinds(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantKinds []TokenKind
	}{
		{
			name:      "single word",
			src:       "hello",
			wantKinds: []TokenKind{WORD, EOF},
		},
		{
			name:      "word space word",
			src:       "hello world",
			wantKinds: []TokenKind{WORD, WHITE, WORD, EOF},
		},
		{
			name:      "adornment run",
			src:       "====",
			wantKinds: []TokenKind{ADORNMENT, EOF},
		},
		{
			name:      "short punct run stays punct",
			src:       "::",
			wantKinds: []TokenKind{PUNCT, EOF},
		},
		{
			name:      "blank line folds to indent",
			src:       "a\n\nb",
			wantKinds: []TokenKind{WORD, INDENT, WORD, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, _ := Lex(tt.src, false, nil)
			if len(toks) != len(tt.wantKinds) {
				t.Fatalf("got %d tokens %v, want %d kinds %v", len(toks), toks, len(tt.wantKinds), tt.wantKinds)
			}
			for i, k := range tt.wantKinds {
				if toks[i].Kind != k {
					t.Errorf("token %d: got %s, want %s (%v)", i, toks[i].Kind, k, toks[i])
				}
			}
		})
	}
}

func TestLexLeadingWhiteFoldsToIndent(t *testing.T) {
	toks, _ := Lex("  word", false, nil)
	if toks[0].Kind != INDENT {
		t.Fatalf("expected leading whitespace to fold into INDENT, got %s", toks[0].Kind)
	}
	if toks[0].IVal != 2 {
		t.Errorf("expected IVal 2, got %d", toks[0].IVal)
	}
}

func TestLexTabRoundsToEight(t *testing.T) {
	toks, _ := Lex("\tword", false, nil)
	if toks[0].Kind != INDENT || toks[0].IVal != 8 {
		t.Fatalf("expected a tab to round up to column 8, got %v", toks[0])
	}
}

func TestLexSkipPoundsStripsLeader(t *testing.T) {
	toks, base := Lex("# word", true, nil)
	if base != 2 {
		t.Fatalf("expected baseIndent 2 after '# ', got %d", base)
	}
	if toks[0].Kind != WORD || toks[0].Symbol != "word" {
		t.Fatalf("expected leading WORD token after pound-stripping, got %v", toks[0])
	}
}

func TestLexAppendMode(t *testing.T) {
	toks, _ := Lex("a", false, nil)
	toks, _ = Lex("b", false, toks)
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens (WORD,EOF,WORD,EOF) after two appended lexes, got %d: %v", len(toks), toks)
	}
	if toks[0].Symbol != "a" || toks[2].Symbol != "b" {
		t.Fatalf("expected append mode to preserve both lexes' tokens in order, got %v", toks)
	}
}

func TestLexPunctVsAdornmentBoundary(t *testing.T) {
	toks, _ := Lex("---", false, nil)
	if toks[0].Kind != PUNCT {
		t.Fatalf("expected a 3-char run to stay PUNCT, got %s", toks[0].Kind)
	}
	toks, _ = Lex("----", false, nil)
	if toks[0].Kind != ADORNMENT {
		t.Fatalf("expected a 4-char run to become ADORNMENT, got %s", toks[0].Kind)
	}
}

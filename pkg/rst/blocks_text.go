package rst

import "strings"

// mergeLeaves coalesces consecutive plain Leaf nodes into one, so a run
// of words and single-space separators collected token-by-token reads
// back as ordinary text instead of dozens of one-character leaves.
func mergeLeaves(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Kind == KindLeaf && len(out) > 0 && out[len(out)-1].Kind == KindLeaf {
			out[len(out)-1].Text += n.Text
			continue
		}
		out = append(out, n)
	}
	return out
}

// parseParagraphLine consumes inline content up to the next INDENT/EOF.
// It reports whether the line ended in a bare "::" marker (spec §4.5
// Paragraph: "`::` at end-of-line ... consumes the `:` as literal
// text"), in which case a single ":" leaf replaces the "::" token.
func (f *frame) parseParagraphLine() ([]*Node, bool) {
	var nodes []*Node
	colonColon := false
	for {
		cur := f.cur()
		if cur.Kind == INDENT || cur.Kind == EOF {
			break
		}
		if cur.Kind == PUNCT && cur.Symbol == "::" {
			next := f.tokenAt(f.idx + 1)
			if next.Kind == INDENT || next.Kind == EOF {
				f.advance()
				nodes = append(nodes, NewLeaf(":"))
				colonColon = true
				continue
			}
		}
		nodes = append(nodes, f.parseInlineAtom())
	}
	return nodes, colonColon
}

// parseParagraph implements spec §4.5 Paragraph.
func (f *frame) parseParagraph() *Node {
	var kids []*Node
	trailingLiteral := false
	for {
		line, endedColonColon := f.parseParagraphLine()
		kids = append(kids, line...)
		trailingLiteral = endedColonColon

		cur := f.cur()
		if cur.Kind != INDENT {
			break
		}
		if cur.IVal < f.currInd() {
			break
		}
		if cur.IVal > f.currInd() {
			if trailingLiteral {
				kids = append(kids, f.parseLiteralBody())
			} else {
				kids = append(kids, f.parseBlockQuote())
			}
			break
		}
		// Same indent: this INDENT is either a soft line-wrap within the
		// paragraph or a blank-line paragraph break, which the lexer folds
		// into an identical token. A jump of more than one source line (or
		// nothing left to continue into) means a break; leave the INDENT
		// unconsumed so the caller starts a fresh section there.
		next := f.tokenAt(f.idx + 1)
		if next.Kind == EOF || next.Line-cur.Line >= 2 {
			break
		}
		f.advance()
		kids = append(kids, NewLeaf(" "))
	}
	n := NewNode(KindParagraph)
	n.Children = mergeLeaves(kids)
	return n
}

// parseLiteralBody implements spec §4.5 LiteralBlock: if the cursor is
// on an INDENT, that indent becomes the base and every token is copied
// verbatim (newlines re-prefixed with indent-base spaces) until an
// INDENT with a lower ival or EOF; otherwise tokens are copied until
// newline/EOF.
func (f *frame) parseLiteralBody() *Node {
	var sb strings.Builder
	cur := f.cur()
	if cur.Kind == INDENT {
		base := cur.IVal
		f.advance()
		for {
			c := f.cur()
			if c.Kind == EOF {
				break
			}
			if c.Kind == INDENT {
				if c.IVal < base {
					break
				}
				sb.WriteByte('\n')
				sb.WriteString(spaces(c.IVal - base))
				f.advance()
				continue
			}
			sb.WriteString(c.Symbol)
			f.advance()
		}
	} else {
		for {
			c := f.cur()
			if c.Kind == INDENT || c.Kind == EOF {
				break
			}
			sb.WriteString(c.Symbol)
			f.advance()
		}
	}
	return NewNode(KindLiteralBlock, NewLeaf(sb.String()))
}

// parseLiteralBlockMarker handles a standalone "::" that starts its own
// block (as opposed to one trailing a paragraph line).
func (f *frame) parseLiteralBlockMarker() *Node {
	for f.cur().Kind != INDENT && f.cur().Kind != EOF {
		f.advance()
	}
	return f.parseLiteralBody()
}

// parseHeadline implements spec §4.5 Headline: text then an underline
// adornment whose character determines the heading level.
func (f *frame) parseHeadline() *Node {
	text, _ := f.parseParagraphLine()
	if f.cur().Kind == INDENT {
		f.advance()
	}
	adorn := f.cur()
	var c byte
	if len(adorn.Symbol) > 0 {
		c = adorn.Symbol[0]
	}
	if adorn.Kind == ADORNMENT {
		f.advance()
	}
	if f.cur().Kind == INDENT {
		f.advance()
	}
	level := getLevel(&f.state.underlineToLevel, &f.state.uLevel, c)
	n := &Node{Kind: KindHeadline, Level: level}
	n.Children = mergeLeaves(text)
	return n
}

// parseOverline implements spec §4.5 Overline. The spec flags a
// deliberately lenient open question here (§9): a second INDENT is
// consumed after the closing adornment with no check that a closing
// adornment was actually present; that leniency is preserved.
func (f *frame) parseOverline() *Node {
	top := f.advance()
	var c byte
	if len(top.Symbol) > 0 {
		c = top.Symbol[0]
	}
	if f.cur().Kind == INDENT {
		f.advance()
	}

	var text []*Node
	for {
		line, _ := f.parseParagraphLine()
		text = append(text, line...)
		if f.cur().Kind != INDENT {
			break
		}
		next := f.tokenAt(f.idx + 1)
		if next.Kind == ADORNMENT {
			f.advance()
			break
		}
		f.advance()
		text = append(text, NewLeaf(" "))
	}

	if f.cur().Kind == ADORNMENT {
		f.advance()
	}
	if f.cur().Kind == INDENT { // lenient consumption, spec §9 open question
		f.advance()
	}

	level := getLevel(&f.state.overlineToLevel, &f.state.oLevel, c)
	n := &Node{Kind: KindOverline, Level: level}
	n.Children = mergeLeaves(text)
	return n
}

// parseTransition implements spec §4.5 Transition: a standalone
// adornment line.
func (f *frame) parseTransition() *Node {
	f.advance()
	if f.cur().Kind == INDENT {
		f.advance()
	}
	return NewNode(KindTransition)
}

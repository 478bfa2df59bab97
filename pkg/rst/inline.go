package rst

import "strings"

// quoteCloser maps an RST "opener" character to the closer it must not
// be immediately followed by when it precedes an inline-markup start
// (spec §4.3 Rule 7).
var quoteCloser = map[rune]rune{
	'\'': '\'',
	'"':  '"',
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'<':  '>',
}

const openerChars = `'"([{<-/:_`
const closerPunct = `'")]}>-/\:.,;!?_`

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// isInlineMarkupStart implements spec §4.3 rules 1, 2, 5, 7 for an
// opening marker.
func (f *frame) isInlineMarkupStart(markup string) bool {
	cur := f.cur()
	if cur.Symbol != markup {
		return false
	}
	hasPrev := f.idx > 0
	var prev Token
	if hasPrev {
		prev = f.tokenAt(f.idx - 1)
	}

	okPrev := !hasPrev || prev.Kind == WHITE || prev.Kind == INDENT
	if !okPrev {
		okPrev = strings.ContainsRune(openerChars, firstRune(prev.Symbol))
	}
	if !okPrev {
		return false
	}

	next := f.tokenAt(f.idx + 1)
	if next.Kind == WHITE || next.Kind == INDENT || next.Kind == EOF {
		return false
	}

	if hasPrev && prev.Kind == PUNCT && prev.Symbol == "\\" {
		return false
	}

	if hasPrev {
		if closer, ok := quoteCloser[firstRune(prev.Symbol)]; ok {
			if firstRune(next.Symbol) == closer {
				return false
			}
		}
	}
	return true
}

// isInlineMarkupEnd implements spec §4.3 rules 3, 4, 7 for a closing
// marker.
func (f *frame) isInlineMarkupEnd(markup string) bool {
	cur := f.cur()
	if cur.Symbol != markup {
		return false
	}
	if f.idx == 0 {
		return false
	}
	prev := f.tokenAt(f.idx - 1)
	if prev.Kind == INDENT || prev.Kind == WHITE {
		return false
	}

	next := f.tokenAt(f.idx + 1)
	okNext := next.Kind == INDENT || next.Kind == WHITE || next.Kind == EOF
	if !okNext {
		okNext = strings.ContainsRune(closerPunct, firstRune(next.Symbol))
	}
	if !okNext {
		return false
	}

	if markup != "``" && prev.Symbol == "\\" {
		return false
	}
	return true
}

// parseInlineSpan collects children until stop() reports true or EOF is
// reached. When requireClose is true (used inside a markup span, e.g.
// between "*" and its matching "*"), an unexpected EOF or a second
// consecutive INDENT is an error; parseInlineSpan still returns its
// best-effort node list so the caller can keep going.
func (f *frame) parseInlineSpan(stop func() bool, requireClose bool) ([]*Node, error) {
	var out []*Node
	lastWasIndent := false
	startLine, startCol := f.cur().Line, f.cur().Col
	for {
		if stop() {
			return out, nil
		}
		cur := f.cur()
		if cur.Kind == EOF {
			if requireClose {
				f.errorf(MsgExpected, "expected closing markup")
				return out, &ParseError{Filename: f.filename, Line: startLine + f.baseLine, Col: startCol + f.baseCol, Kind: MsgExpected, Arg: "unexpected end of input"}
			}
			return out, nil
		}
		if cur.Kind == INDENT {
			if requireClose && lastWasIndent {
				f.errorf(MsgExpected, "expected closing markup before blank line")
				return out, &ParseError{Filename: f.filename, Line: startLine + f.baseLine, Col: startCol + f.baseCol, Kind: MsgExpected, Arg: "blank line inside inline markup"}
			}
			lastWasIndent = true
			f.advance()
			out = append(out, NewLeaf(" "))
			continue
		}
		lastWasIndent = false
		if cur.Kind == WHITE {
			f.advance()
			out = append(out, NewLeaf(" "))
			continue
		}
		out = append(out, f.parseInlineAtom())
	}
}

// parseInlineAtom consumes and returns exactly one inline construct:
// an emphasis span, a literal/interpreted-text span, a substitution
// reference, a URL, a smiley, a backslash escape, or a bare leaf.
func (f *frame) parseInlineAtom() *Node {
	cur := f.cur()

	if f.state.options.SupportSmileys {
		if n := f.trySmiley(); n != nil {
			return n
		}
	}

	if cur.Kind == WORD && f.isUrl() {
		return f.consumeURL()
	}

	if cur.Kind == PUNCT || cur.Kind == ADORNMENT {
		switch {
		case f.isInlineMarkupStart("***"):
			return f.parseMarkupSpan("***", KindTripleEmphasis)
		case f.isInlineMarkupStart("**"):
			return f.parseMarkupSpan("**", KindStrongEmphasis)
		case f.isInlineMarkupStart("*"):
			return f.parseMarkupSpan("*", KindEmphasis)
		case f.state.options.SupportMarkdown && cur.Symbol == "```":
			return f.parseFencedCode()
		case f.isInlineMarkupStart("``"):
			return f.parseLiteralSpan()
		case f.isInlineMarkupStart("`"):
			return f.parseInterpretedText()
		case f.isInlineMarkupStart("|"):
			return f.parseSubstitutionRef()
		}
		if n := f.tryBackslash(); n != nil {
			return n
		}
	}

	f.advance()
	return NewLeaf(cur.Symbol)
}

func (f *frame) parseMarkupSpan(markup string, kind NodeKind) *Node {
	f.advance() // consume opener
	children, _ := f.parseInlineSpan(func() bool { return f.isInlineMarkupEnd(markup) }, true)
	if f.cur().Symbol == markup {
		f.advance()
	}
	n := NewNode(kind)
	n.Children = children
	return n
}

// parseLiteralSpan handles `` ... `` with no backslash interpretation
// inside: content is collected as raw text, not recursively parsed.
func (f *frame) parseLiteralSpan() *Node {
	f.advance()
	var sb strings.Builder
	for {
		if f.isInlineMarkupEnd("``") || f.cur().Kind == EOF {
			break
		}
		t := f.advance()
		if t.Kind == INDENT || t.Kind == WHITE {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(t.Symbol)
		}
	}
	if f.cur().Symbol == "``" {
		f.advance()
	}
	return NewNode(KindInlineLiteral, NewLeaf(sb.String()))
}

// parseFencedCode handles a Markdown-subset fenced code block when
// SupportMarkdown is enabled.
func (f *frame) parseFencedCode() *Node {
	f.advance()
	var sb strings.Builder
	for {
		cur := f.cur()
		if cur.Kind == EOF || cur.Symbol == "```" {
			break
		}
		t := f.advance()
		if t.Kind == INDENT {
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", t.IVal))
		} else {
			sb.WriteString(t.Symbol)
		}
	}
	if f.cur().Symbol == "```" {
		f.advance()
	}
	return NewNode(KindCodeBlock, NewLeaf(sb.String()))
}

func (f *frame) parseInterpretedText() *Node {
	f.advance()
	children, _ := f.parseInlineSpan(func() bool { return f.isInlineMarkupEnd("`") }, true)
	if f.cur().Symbol == "`" {
		f.advance()
	}
	n := NewNode(KindInterpretedText)
	n.Children = children
	return f.applyPostfix(n)
}

func (f *frame) parseSubstitutionRef() *Node {
	f.advance()
	var sb strings.Builder
	for {
		if f.isInlineMarkupEnd("|") || f.cur().Kind == EOF {
			break
		}
		t := f.advance()
		sb.WriteString(t.Symbol)
	}
	if f.cur().Symbol == "|" {
		f.advance()
	}
	return &Node{Kind: KindSubstitutionReferences, Text: sb.String()}
}

// applyPostfix implements spec §4.3 "Postfix processing": an embedded
// URI (`` `label <uri>`_ ``), a role suffix (`` `text`:role: ``), or
// plain retagging to Ref.
func (f *frame) applyPostfix(n *Node) *Node {
	if f.cur().Symbol == "_" {
		if hasEmbeddedURI(n) {
			f.advance()
			return f.splitEmbeddedURI(n)
		}
		f.advance()
		n.Kind = KindRef
		n.Text = RefName(joinLeafText(n.Children))
		return n
	}
	if f.matchCur(":w:") {
		role := f.tokenAt(f.idx + 1).Symbol
		f.advance()
		f.advance()
		f.advance()
		return applyRole(n, role)
	}
	return n
}

func hasEmbeddedURI(n *Node) bool {
	if len(n.Children) == 0 {
		return false
	}
	last := n.Children[len(n.Children)-1]
	if last.Kind != KindLeaf || last.Text != ">" {
		return false
	}
	for i := len(n.Children) - 2; i >= 0; i-- {
		if n.Children[i].Kind == KindLeaf && n.Children[i].Text == "<" {
			return true
		}
	}
	return false
}

func (f *frame) splitEmbeddedURI(n *Node) *Node {
	children := n.Children
	last := len(children) - 1 // the ">" leaf
	splitAt := -1
	for i := last - 1; i >= 0; i-- {
		if children[i].Kind == KindLeaf && children[i].Text == "<" {
			splitAt = i
			break
		}
	}
	label := children[:splitAt]
	if len(label) > 0 && label[len(label)-1].Kind == KindLeaf && label[len(label)-1].Text == " " {
		label = label[:len(label)-1]
	}
	target := joinLeafText(children[splitAt+1 : last])

	if len(label) == 0 {
		return &Node{Kind: KindStandaloneHyperlink, Text: target}
	}
	labelText := joinLeafText(label)
	f.state.addRef(RefName(labelText), NewLeaf(target))
	out := NewNode(KindHyperlink)
	out.Children = append(append([]*Node{}, label...))
	out.Append(NewLeaf(target))
	return out
}

func joinLeafText(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.Text)
	}
	return sb.String()
}

func applyRole(n *Node, role string) *Node {
	switch role {
	case "idx":
		n.Kind = KindIdx
	case "literal":
		n.Kind = KindInlineLiteral
	case "strong":
		n.Kind = KindStrongEmphasis
	case "emphasis":
		n.Kind = KindEmphasis
	case "sub", "subscript":
		n.Kind = KindSub
	case "sup", "supscript":
		n.Kind = KindSup
	default:
		return &Node{Kind: KindGeneralRole, Children: []*Node{NewLeaf(role), n}}
	}
	return n
}

// tryBackslash implements spec §4.3 backslash handling.
func (f *frame) tryBackslash() *Node {
	cur := f.cur()
	if cur.Kind != PUNCT || !isAllBackslash(cur.Symbol) {
		return nil
	}
	n := len(cur.Symbol)
	f.advance()
	var out []*Node
	for i := 0; i < n/2; i++ {
		out = append(out, NewLeaf("\\"))
	}
	if n%2 == 1 {
		next := f.cur()
		if next.Kind != EOF {
			f.advance()
			out = append(out, NewLeaf(next.Symbol))
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Node{Kind: KindInner, Children: out}
}

func isAllBackslash(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '\\' {
			return false
		}
	}
	return true
}

var urlSchemes = map[string]bool{
	"http": true, "https": true, "ftp": true, "telnet": true, "file": true,
}

// isUrl implements spec §4.3 URL recognition.
func (f *frame) isUrl() bool {
	t0 := f.cur()
	if t0.Kind != WORD || !urlSchemes[t0.Symbol] {
		return false
	}
	t1 := f.tokenAt(f.idx + 1)
	if t1.Symbol != ":" {
		return false
	}
	t2 := f.tokenAt(f.idx + 2)
	if t2.Symbol != "//" {
		return false
	}
	t3 := f.tokenAt(f.idx + 3)
	return t3.Kind == WORD
}

func (f *frame) consumeURL() *Node {
	var sb strings.Builder
	sb.WriteString(f.advance().Symbol) // scheme
	sb.WriteString(f.advance().Symbol) // :
	sb.WriteString(f.advance().Symbol) // //
	for {
		cur := f.cur()
		switch cur.Kind {
		case WORD, ADORNMENT, OTHER:
			sb.WriteString(cur.Symbol)
			f.advance()
		case PUNCT:
			next := f.tokenAt(f.idx + 1)
			if next.Kind != WORD && next.Kind != ADORNMENT {
				goto done
			}
			sb.WriteString(cur.Symbol)
			f.advance()
		default:
			goto done
		}
	}
done:
	return &Node{Kind: KindStandaloneHyperlink, Text: sb.String()}
}

type smileyEntry struct {
	text string
	icon string
}

// smileys is the table of recognized smileys (spec §4.3), ordered
// longest-match-first so e.g. ":-)" wins over ":)".
var smileys = []smileyEntry{
	{":-)", "icon_e_smile"},
	{":)", "icon_e_smile"},
	{":-(", "icon_e_sad"},
	{":(", "icon_e_sad"},
	{":-D", "icon_e_biggrin"},
	{":D", "icon_e_biggrin"},
	{";-)", "icon_e_wink"},
	{";)", "icon_e_wink"},
	{":-P", "icon_razz"},
	{":P", "icon_razz"},
	{"8-)", "icon_cool"},
	{"8)", "icon_cool"},
}

func (f *frame) trySmiley() *Node {
	cur := f.cur()
	if cur.Kind != PUNCT && cur.Kind != WORD {
		return nil
	}
	c := firstRune(cur.Symbol)
	if c != ':' && c != ';' && c != '8' {
		return nil
	}
	for _, sm := range smileys {
		if n, ok := f.matchLiteralRun(sm.text); ok {
			for i := 0; i < n; i++ {
				f.advance()
			}
			return &Node{Kind: KindSmiley, Text: sm.icon}
		}
	}
	return nil
}

// matchLiteralRun reports whether the concatenation of consecutive token
// symbols starting at the cursor equals text exactly, returning the
// number of tokens consumed.
func (f *frame) matchLiteralRun(text string) (int, bool) {
	var sb strings.Builder
	n := 0
	for sb.Len() < len(text) {
		t := f.tokenAt(f.idx + n)
		if t.Kind == EOF || t.Kind == WHITE || t.Kind == INDENT {
			return 0, false
		}
		sb.WriteString(t.Symbol)
		n++
	}
	return n, sb.String() == text
}

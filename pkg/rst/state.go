package rst

import "fmt"

// substitutionDef is one (name, AST) pair registered by
// `.. |name| replace::` / `.. |name| image::`.
type substitutionDef struct {
	name  string
	value *Node
}

// refDef is one (normalized-name, AST) pair registered by
// `.. _name: target` or a footnote/citation target.
type refDef struct {
	name  string
	value *Node
}

// sharedState spans a top-level parse and every parser frame recursively
// created for an `include`d file, per spec §5 ("Recursive include
// directives create nested parser frames that share the same shared-state
// object").
type sharedState struct {
	options ParseOptions

	uLevel int
	oLevel int

	subs []substitutionDef
	refs []refDef

	underlineToLevel [256]int
	overlineToLevel  [256]int

	msgHandler MsgHandlerFunc
	findFile   FindFileFunc

	// inProgress tracks include paths currently being parsed (the path
	// findFile returned, or the name as written when findFile found
	// nothing; paths are not made absolute), to
	// detect recursive inclusion cycles (spec §9 Open Question: "the
	// source has no cycle detection ... a correct implementation should
	// maintain a set of in-progress include paths").
	inProgress map[string]bool

	hasToc bool
}

func newSharedState(opts ParseOptions, msgHandler MsgHandlerFunc, findFile FindFileFunc) *sharedState {
	if msgHandler == nil {
		msgHandler = DefaultMsgHandler
	}
	return &sharedState{
		options:    opts,
		msgHandler: msgHandler,
		findFile:   findFile,
		inProgress: make(map[string]bool),
	}
}

// getLevel returns the heading level assigned to adornment character c,
// assigning the next level on first occurrence (spec §4.5 Headline /
// Overline). counter must be &s.uLevel or &s.oLevel; table must be
// &s.underlineToLevel or &s.overlineToLevel.
func getLevel(table *[256]int, counter *int, c byte) int {
	if table[c] == 0 {
		*counter++
		table[c] = *counter
	}
	return table[c]
}

func (s *sharedState) addSub(name string, value *Node) {
	s.subs = append(s.subs, substitutionDef{name: name, value: value})
}

func (s *sharedState) addRef(name string, value *Node) {
	s.refs = append(s.refs, refDef{name: name, value: value})
}

// findSub looks up a substitution by exact key, falling back to a
// case/style-insensitive comparison (spec §4.7 resolver).
func (s *sharedState) findSub(key string) (*Node, bool) {
	for _, d := range s.subs {
		if d.name == key {
			return d.value, true
		}
	}
	norm := normalizeSubKey(key)
	for _, d := range s.subs {
		if normalizeSubKey(d.name) == norm {
			return d.value, true
		}
	}
	return nil, false
}

// findRef looks up a reference target by its normalized name. A later
// registration for the same name wins (spec §7: "redefined labels take
// the last value").
func (s *sharedState) findRef(normName string) (*Node, bool) {
	var found *Node
	ok := false
	for _, d := range s.refs {
		if d.name == normName {
			found, ok = d.value, true
		}
	}
	return found, ok
}

// normalizeSubKey folds case and ignores style characters (underscores)
// for the case-insensitive substitution lookup the spec calls for.
func normalizeSubKey(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '_' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		out = append(out, r)
	}
	return string(out)
}

// frame is a parser's mutable cursor state. A frame is created per parse
// (top level or recursive include); indentStack is pushed/popped on
// entering/leaving nested block scopes. Shared state spans include
// recursion, but idx/tok/indentStack do not.
type frame struct {
	state *sharedState

	idx int
	tok []Token

	indentStack []int

	filename string
	baseLine int
	baseCol  int

	resolvedSubs int
	resolvedRefs int
}

func newFrame(state *sharedState, toks []Token, filename string, baseLine, baseCol int) *frame {
	return &frame{
		state:       state,
		tok:         toks,
		indentStack: []int{0},
		filename:    filename,
		baseLine:    baseLine,
		baseCol:     baseCol,
	}
}

func (f *frame) currInd() int {
	return f.indentStack[len(f.indentStack)-1]
}

func (f *frame) pushIndent(col int) {
	f.indentStack = append(f.indentStack, col)
}

func (f *frame) popIndent() {
	if len(f.indentStack) > 1 {
		f.indentStack = f.indentStack[:len(f.indentStack)-1]
	}
}

// cur returns the token at the current index, or the trailing EOF token
// if idx has run past the end (should not happen given the lexer's
// invariant of terminating in exactly one EOF, but keeps indexing total).
func (f *frame) cur() Token {
	if f.idx >= len(f.tok) {
		return Token{Kind: EOF}
	}
	return f.tok[f.idx]
}

func (f *frame) at(off int) Token {
	i := f.idx + off
	if i < 0 || i >= len(f.tok) {
		return Token{Kind: EOF}
	}
	return f.tok[i]
}

func (f *frame) advance() Token {
	t := f.cur()
	if f.idx < len(f.tok) {
		f.idx++
	}
	return t
}

// errorf reports a MsgKind at the current token position via the shared
// message handler.
func (f *frame) errorf(kind MsgKind, format string, args ...any) {
	t := f.cur()
	line := t.Line + f.baseLine
	col := t.Col + f.baseCol
	f.state.msgHandler(f.filename, line, col, kind, fmt.Sprintf(format, args...))
}

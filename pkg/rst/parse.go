package rst

import "github.com/GriffinCanCode/rst2x/internal/rlog"

// Parse is the library's public entry point (spec §6.1): it lexes text,
// parses it into a block/inline AST, resolves substitutions and
// hyperlink references in a single post-order pass, and returns the
// resulting tree along with whether a `.. contents::` directive was
// seen anywhere in the document.
//
// findFile and msgHandler may be nil; msgHandler defaults to
// DefaultMsgHandler, which writes to stdout and aborts the parse (by
// panicking with *ParseError, recovered here into err) on any Error
// severity diagnostic.
func Parse(text, filename string, baseLine, baseCol int, options ParseOptions, findFile FindFileFunc, msgHandler MsgHandlerFunc) (ast *Node, hasToc bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()

	state := newSharedState(options, msgHandler, findFile)
	toks, _ := Lex(text, options.SkipPounds, nil)
	rlog.LogLex(filename, len(toks))
	f := newFrame(state, toks, filename, baseLine, baseCol)

	nodes := f.parseDocument()
	root := NewNode(KindInner)
	root.Children = nodes
	for i, c := range root.Children {
		root.Children[i] = f.resolve(c)
	}
	rlog.LogResolve(filename, f.resolvedSubs, f.resolvedRefs)

	return root, state.hasToc, nil
}

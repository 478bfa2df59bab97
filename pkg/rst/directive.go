package rst

import (
	"os"
	"strings"

	"github.com/GriffinCanCode/rst2x/internal/rhtml"
	"github.com/GriffinCanCode/rst2x/internal/rlog"
)

// dirArgKind selects how parseDirArg reads a directive's argument
// (spec §4.6).
type dirArgKind int

const (
	argNone dirArgKind = iota
	argFile
	argWord
	argInline
)

// dirBodyKind selects how parseDirective reads a directive's body.
type dirBodyKind int

const (
	dirBodyNone dirBodyKind = iota
	dirBodySection
	dirBodyLiteral
)

// parseDotDot handles everything that can start with ".." at the
// beginning of a line (spec §4.6): directives, hyperlink targets,
// substitution definitions, footnote/citation targets, and comments.
func (f *frame) parseDotDot() *Node {
	f.advance() // ".."
	if f.cur().Kind == WHITE {
		f.advance()
	}

	switch {
	case f.cur().Kind == PUNCT && f.cur().Symbol == "_":
		return f.parseHyperlinkTarget()
	case f.cur().Kind == PUNCT && f.cur().Symbol == "|":
		return f.parseSubstitutionDef()
	case f.cur().Kind == PUNCT && f.cur().Symbol == "[":
		return f.parseFootnoteTarget()
	}

	if name, ok := f.tryDirectiveName(); ok {
		return f.dispatchDirective(name)
	}
	return f.parseComment()
}

// tryDirectiveName speculatively reads a run of WORD/"-" tokens followed
// by "::"; on success it consumes through the trailing whitespace and
// returns the directive name, otherwise it rewinds.
func (f *frame) tryDirectiveName() (string, bool) {
	save := f.idx
	var sb strings.Builder
	for {
		t := f.cur()
		if t.Kind == WORD {
			sb.WriteString(t.Symbol)
			f.advance()
			continue
		}
		if t.Kind == PUNCT && t.Symbol == "-" {
			sb.WriteString("-")
			f.advance()
			continue
		}
		break
	}
	if sb.Len() > 0 && f.cur().Kind == PUNCT && f.cur().Symbol == "::" {
		f.advance()
		if f.cur().Kind == WHITE {
			f.advance()
		}
		return sb.String(), true
	}
	f.idx = save
	return "", false
}

func (f *frame) dispatchDirective(name string) *Node {
	rlog.LogDirective(f.filename, name)
	switch name {
	case "include":
		return f.directiveInclude()
	case "image":
		return f.directiveImage()
	case "figure":
		return f.directiveFigure()
	case "code":
		return f.directiveCode()
	case "code-block":
		return f.directiveCodeBlock()
	case "container":
		return f.directiveContainer()
	case "title":
		return f.directiveTitle()
	case "contents":
		return f.directiveContents()
	case "index":
		return f.directiveIndex()
	case "raw":
		return f.directiveRaw()
	default:
		f.errorf(MsgInvalidDirective, "unknown directive %q", name)
		return NewNode(KindDirective)
	}
}

// parseDirArg implements the DirArg half of spec §4.6's generic
// parseDirective: argIsFile collects WORD/OTHER/PUNCT/ADORNMENT up to
// whitespace, argIsWord takes a single WORD, and the inline default
// takes the rest of the line as inline content. Neither file nor word
// consumes the line's terminating INDENT — parseDirective needs it
// intact to detect a following field list.
func (f *frame) parseDirArg(kind dirArgKind) *Node {
	switch kind {
	case argFile:
		var sb strings.Builder
		for f.cur().Kind == WORD || f.cur().Kind == OTHER || f.cur().Kind == PUNCT || f.cur().Kind == ADORNMENT {
			sb.WriteString(f.advance().Symbol)
		}
		if f.cur().Kind == WHITE {
			f.advance()
		}
		if sb.Len() == 0 {
			return nil
		}
		return NewNode(KindDirArg, NewLeaf(sb.String()))
	case argWord:
		if f.cur().Kind != WORD {
			return nil
		}
		w := f.advance().Symbol
		if f.cur().Kind == WHITE {
			f.advance()
		}
		return NewNode(KindDirArg, NewLeaf(w))
	case argInline:
		line, _ := f.parseParagraphLine()
		if len(line) == 0 {
			return nil
		}
		n := NewNode(KindDirArg)
		n.Children = mergeLeaves(line)
		return n
	default:
		return nil
	}
}

// parseDirective is the shared driver behind every directive handler:
// DirArg, then an optional FieldList (an INDENT at ival>=3 immediately
// followed by a ":"), then an optional Body via bodyKind.
func (f *frame) parseDirective(argKind dirArgKind, bodyKind dirBodyKind) (*Node, *Node, []*Node) {
	arg := f.parseDirArg(argKind)

	var fields *Node
	if f.cur().Kind == INDENT && f.cur().IVal >= 3 {
		next := f.tokenAt(f.idx + 1)
		if next.Kind == PUNCT && next.Symbol == ":" {
			col := f.cur().IVal
			f.advance()
			f.pushIndent(col)
			fields = f.parseFieldList()
			f.popIndent()
		}
	}

	var body []*Node
	if bodyKind != dirBodyNone && f.cur().Kind == INDENT && f.cur().IVal > f.currInd() {
		col := f.cur().IVal
		f.pushIndent(col)
		if bodyKind == dirBodyLiteral {
			body = []*Node{f.parseLiteralBody()}
		} else {
			body = f.parseDocument()
		}
		f.popIndent()
	}

	return arg, fields, body
}

func nodeText(n *Node) string {
	if n == nil {
		return ""
	}
	var s string
	for _, c := range n.Children {
		s += c.Text
	}
	return s
}

func (f *frame) resolveFindFile(name string) string {
	if f.state.findFile == nil {
		return ""
	}
	return f.state.findFile(name)
}

// directiveInclude embeds another file: verbatim (wrapped in a
// LiteralBlock) when a `literal` field is present, otherwise lexed and
// parsed recursively with the shared state carried over, so
// substitutions/refs defined in the included file are visible to the
// rest of the document (spec §5).
func (f *frame) directiveInclude() *Node {
	arg, fields, _ := f.parseDirective(argFile, dirBodyNone)
	name := nodeText(arg)
	if name == "" {
		f.errorf(MsgInvalidDirective, "include requires a file argument")
		return NewNode(KindDirective)
	}

	path := name
	if resolved := f.resolveFindFile(name); resolved != "" {
		path = resolved
	}
	rlog.LogInclude(f.filename, path)
	data, err := os.ReadFile(path)
	if err != nil {
		f.errorf(MsgCannotOpenFile, "cannot open %q: %v", name, err)
		return NewNode(KindDirective)
	}

	if _, isLiteral := fieldLookup(fields, "literal"); isLiteral {
		return NewNode(KindLiteralBlock, NewLeaf(string(data)))
	}

	if f.state.inProgress[path] {
		f.errorf(MsgGeneralParseError, "recursive include of %q", path)
		return NewNode(KindDirective)
	}
	f.state.inProgress[path] = true
	defer delete(f.state.inProgress, path)

	toks, base := Lex(string(data), f.state.options.SkipPounds, nil)
	sub := newFrame(f.state, toks, name, 0, base)
	nodes := sub.parseDocument()

	n := NewNode(KindInner)
	n.Children = nodes
	return n
}

func (f *frame) directiveImage() *Node {
	arg, fields, _ := f.parseDirective(argFile, dirBodyNone)
	n := NewNode(KindImage)
	if arg != nil {
		n.Append(arg)
	}
	if fields != nil {
		n.Append(fields)
	}
	return n
}

func (f *frame) directiveFigure() *Node {
	arg, fields, body := f.parseDirective(argFile, dirBodySection)
	n := NewNode(KindFigure)
	if arg != nil {
		n.Append(arg)
	}
	if fields != nil {
		n.Append(fields)
	}
	n.Children = append(n.Children, retagLoneParagraph(body)...)
	return n
}

func (f *frame) directiveCode() *Node {
	arg, fields, body := f.parseDirective(argWord, dirBodyLiteral)
	n := NewNode(KindCodeBlock)
	if arg != nil {
		n.Append(arg)
	}
	if fields != nil {
		n.Append(fields)
	}
	n.Children = append(n.Children, body...)
	return n
}

// directiveCodeBlock additionally injects a default-language: Nimrod
// field when none was given, and honors a `file:` field override by
// replacing the literal body with the named file's contents (spec
// §4.6, carried over from the teacher's default source language).
func (f *frame) directiveCodeBlock() *Node {
	arg, fields, body := f.parseDirective(argWord, dirBodyLiteral)

	if fields == nil || len(fields.Children) == 0 {
		fields = NewNode(KindFieldList)
		name := NewNode(KindFieldName, NewLeaf("default-language"))
		val := NewNode(KindFieldBody, NewNode(KindParagraph, NewLeaf("Nimrod")))
		fields.Append(NewNode(KindField, name, val))
	}

	if fileField, ok := fieldLookup(fields, "file"); ok {
		path := fieldValue(fileField)
		if resolved := f.resolveFindFile(path); resolved != "" {
			if data, err := os.ReadFile(resolved); err == nil {
				body = []*Node{NewNode(KindLiteralBlock, NewLeaf(string(data)))}
			} else {
				f.errorf(MsgCannotOpenFile, "cannot open %q: %v", path, err)
			}
		}
	}

	n := NewNode(KindCodeBlock)
	if arg != nil {
		n.Append(arg)
	}
	n.Append(fields)
	n.Children = append(n.Children, body...)
	return n
}

func (f *frame) directiveContainer() *Node {
	arg, _, body := f.parseDirective(argInline, dirBodySection)
	n := NewNode(KindContainer)
	if arg != nil {
		n.Append(arg)
	}
	n.Children = append(n.Children, retagLoneParagraph(body)...)
	return n
}

func (f *frame) directiveTitle() *Node {
	arg, _, _ := f.parseDirective(argInline, dirBodyNone)
	n := NewNode(KindTitle)
	if arg != nil {
		n.Append(arg)
	}
	return n
}

func (f *frame) directiveContents() *Node {
	arg, _, _ := f.parseDirective(argInline, dirBodyNone)
	f.state.hasToc = true
	n := NewNode(KindContents)
	if arg != nil {
		n.Append(arg)
	}
	return n
}

func (f *frame) directiveIndex() *Node {
	_, _, body := f.parseDirective(argNone, dirBodySection)
	n := NewNode(KindIndex)
	n.Children = retagLoneParagraph(body)
	return n
}

// directiveRaw dispatches on its word argument to RawHtml/RawLatex, is
// gated by ParseOptions.SupportRawDirective, and (per spec §4.6's table,
// whose raw row has no body parser) only ever gets content from a
// `file:` field, never from inline body text.
func (f *frame) directiveRaw() *Node {
	arg, fields, _ := f.parseDirective(argWord, dirBodyNone)
	if !f.state.options.SupportRawDirective {
		f.errorf(MsgUnsupportedRawHTML, "raw directive disabled")
		return NewNode(KindDirective)
	}

	lang := nodeText(arg)
	var text string
	if fileField, ok := fieldLookup(fields, "file"); ok {
		path := fieldValue(fileField)
		if resolved := f.resolveFindFile(path); resolved != "" {
			if data, err := os.ReadFile(resolved); err == nil {
				text = string(data)
			} else {
				f.errorf(MsgCannotOpenFile, "cannot open %q: %v", path, err)
			}
		}
	}

	switch lang {
	case "html":
		if text != "" {
			for _, issue := range rhtml.Check(text) {
				f.errorf(MsgUnsupportedRawHTML, "raw html: %s", issue.Message)
			}
		}
		n := NewNode(KindRawHtml)
		if text != "" {
			n.Append(NewLeaf(text))
		}
		return n
	case "latex":
		n := NewNode(KindRawLatex)
		if text != "" {
			n.Append(NewLeaf(text))
		}
		return n
	default:
		f.errorf(MsgInvalidDirective, "unsupported raw format %q", lang)
		return NewNode(KindDirective)
	}
}

// parseHyperlinkTarget handles ".. _name: body" (spec §4.6).
func (f *frame) parseHyperlinkTarget() *Node {
	f.advance() // "_"
	var nameSB strings.Builder
	for f.cur().Kind == WORD || (f.cur().Kind == PUNCT && f.cur().Symbol != ":") {
		nameSB.WriteString(f.advance().Symbol)
	}
	if f.cur().Kind == PUNCT && f.cur().Symbol == ":" {
		f.advance()
	}
	if f.cur().Kind == WHITE {
		f.advance()
	}

	line, _ := f.parseParagraphLine()
	body := NewNode(KindInner)
	body.Children = mergeLeaves(line)
	if f.cur().Kind == INDENT && f.cur().IVal > f.currInd() {
		col := f.cur().IVal
		f.pushIndent(col)
		body.Children = append(body.Children, f.parseDocument()...)
		f.popIndent()
	}

	name := RefName(nameSB.String())
	if _, exists := f.state.findRef(name); exists {
		f.errorf(MsgRedefinitionOfLabel, "redefinition of label %q", name)
	}
	f.state.addRef(name, body)
	return NewNode(KindInner)
}

// parseSubstitutionDef handles ".. |name| replace:: body" and
// ".. |name| image:: file" (spec §4.6).
func (f *frame) parseSubstitutionDef() *Node {
	f.advance() // "|"
	var nameSB strings.Builder
	for !(f.cur().Kind == PUNCT && f.cur().Symbol == "|") && f.cur().Kind != EOF && f.cur().Kind != INDENT {
		nameSB.WriteString(f.advance().Symbol)
	}
	if f.cur().Kind == PUNCT && f.cur().Symbol == "|" {
		f.advance()
	}
	if f.cur().Kind == WHITE {
		f.advance()
	}

	name := nameSB.String()
	verb, ok := f.tryDirectiveName()
	if !ok {
		f.errorf(MsgInvalidDirective, "expected a directive defining substitution %q", name)
		return NewNode(KindInner)
	}

	switch verb {
	case "image":
		arg, fields, _ := f.parseDirective(argFile, dirBodyNone)
		val := NewNode(KindImage)
		if arg != nil {
			val.Append(arg)
		}
		if fields != nil {
			val.Append(fields)
		}
		f.state.addSub(name, val)
	default:
		line, _ := f.parseParagraphLine()
		val := NewNode(KindInner)
		val.Children = mergeLeaves(line)
		f.state.addSub(name, val)
	}
	return NewNode(KindInner)
}

// parseFootnoteTarget handles ".. [name] body" (spec §4.6).
func (f *frame) parseFootnoteTarget() *Node {
	f.advance() // "["
	var nameSB strings.Builder
	for !(f.cur().Kind == PUNCT && f.cur().Symbol == "]") && f.cur().Kind != EOF && f.cur().Kind != INDENT {
		nameSB.WriteString(f.advance().Symbol)
	}
	if f.cur().Kind == PUNCT && f.cur().Symbol == "]" {
		f.advance()
	}
	if f.cur().Kind == WHITE {
		f.advance()
	}

	line, _ := f.parseParagraphLine()
	body := NewNode(KindInner)
	body.Children = mergeLeaves(line)
	if f.cur().Kind == INDENT && f.cur().IVal > f.currInd() {
		col := f.cur().IVal
		f.pushIndent(col)
		body.Children = append(body.Children, f.parseDocument()...)
		f.popIndent()
	}

	f.state.addRef(RefName(nameSB.String()), body)
	return NewNode(KindInner)
}

// parseComment consumes every token whose indent exceeds the "..",
// i.e. an ordinary RST comment with no recognized directive form.
func (f *frame) parseComment() *Node {
	for f.cur().Kind != INDENT && f.cur().Kind != EOF {
		f.advance()
	}
	if f.cur().Kind == INDENT && f.cur().IVal > f.currInd() {
		col := f.cur().IVal
		for f.cur().Kind == INDENT && f.cur().IVal >= col {
			f.advance()
			for f.cur().Kind != INDENT && f.cur().Kind != EOF {
				f.advance()
			}
		}
	}
	return NewNode(KindInner)
}

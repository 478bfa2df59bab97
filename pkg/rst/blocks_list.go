package rst

// continuesList reports whether, from the cursor's current INDENT back
// to required column col, the tokens right after that INDENT satisfy
// test — used by every list-like block parser to decide whether another
// item follows (spec §4.5: "continue while the next INDENT returns to
// the list's column and the marker pattern repeats").
func (f *frame) continuesList(col int, test func() bool) bool {
	if f.cur().Kind != INDENT || f.cur().IVal != col {
		return false
	}
	saved := f.idx
	f.idx++
	ok := test()
	f.idx = saved
	return ok
}

// parseBulletList implements spec §4.5 BulletList.
func (f *frame) parseBulletList() *Node {
	marker := f.cur().Symbol
	itemCol := f.cur().Col
	list := NewNode(KindBulletList)
	for f.cur().Kind == PUNCT && f.cur().Symbol == marker {
		f.advance()
		if f.cur().Kind == WHITE {
			f.advance()
		}
		contentCol := f.cur().Col
		f.pushIndent(contentCol)
		body := f.parseDocument()
		f.popIndent()

		item := NewNode(KindBulletItem)
		item.Children = body
		list.Append(item)

		if !f.continuesList(itemCol, func() bool {
			return f.cur().Kind == PUNCT && f.cur().Symbol == marker
		}) {
			break
		}
		f.advance()
	}
	return list
}

type enumStyle int

const (
	enumNone enumStyle = iota
	enumParen
	enumDotRight
	enumParenRight
)

func (f *frame) enumStyleAt(idx int) enumStyle {
	switch {
	case f.matchAt(idx, "(e) "):
		return enumParen
	case f.matchAt(idx, "e) "):
		return enumParenRight
	case f.matchAt(idx, "e. "):
		return enumDotRight
	default:
		return enumNone
	}
}

func (f *frame) consumeEnumMarker(style enumStyle) {
	n := 3
	if style == enumParen {
		n = 4
	}
	for i := 0; i < n; i++ {
		f.advance()
	}
}

// parseEnumList implements spec §4.5 EnumList: items must be homogeneous
// with the first marker style seen.
func (f *frame) parseEnumList() *Node {
	itemCol := f.cur().Col
	style := f.enumStyleAt(f.idx)
	list := NewNode(KindEnumList)
	for f.enumStyleAt(f.idx) == style {
		f.consumeEnumMarker(style)
		contentCol := f.cur().Col
		f.pushIndent(contentCol)
		body := f.parseDocument()
		f.popIndent()

		item := NewNode(KindEnumItem)
		item.Children = body
		list.Append(item)

		if !f.continuesList(itemCol, func() bool { return f.enumStyleAt(f.idx) == style }) {
			break
		}
		f.advance()
	}
	return list
}

// parseDefList implements spec §4.5 DefList: a term line followed by an
// indented DefBody.
func (f *frame) parseDefList() *Node {
	termCol := f.cur().Col
	list := NewNode(KindDefList)
	for f.cur().Col == termCol && f.isDefList() {
		termNodes, _ := f.parseParagraphLine()
		defName := NewNode(KindDefName)
		defName.Children = mergeLeaves(termNodes)

		var item *Node
		if f.cur().Kind == INDENT {
			contentCol := f.cur().IVal
			f.pushIndent(contentCol)
			body := f.parseDocument()
			f.popIndent()
			defBody := NewNode(KindDefBody)
			defBody.Children = retagLoneParagraph(body)
			item = NewNode(KindDefItem, defName, defBody)
		} else {
			item = NewNode(KindDefItem, defName)
		}
		list.Append(item)

		if f.cur().Kind != INDENT || f.cur().IVal != termCol {
			break
		}
		f.advance()
	}
	return list
}

// parseOptionList implements spec §4.5 OptionList.
func (f *frame) parseOptionList() *Node {
	itemCol := f.cur().Col
	list := NewNode(KindOptionList)
	for f.isOptionList() {
		var optText []*Node
		for f.cur().Kind != WHITE && f.cur().Kind != INDENT && f.cur().Kind != EOF {
			t := f.advance()
			optText = append(optText, NewLeaf(t.Symbol))
		}
		group := NewNode(KindOptionGroup)
		group.Children = mergeLeaves(optText)

		if f.cur().Kind == WHITE {
			f.advance()
		}
		desc := NewNode(KindDescription)
		if f.cur().Kind != INDENT && f.cur().Kind != EOF {
			line, _ := f.parseParagraphLine()
			desc.Children = mergeLeaves(line)
		}

		list.Append(NewNode(KindOptionListItem, group, desc))

		if f.cur().Kind != INDENT || f.cur().IVal != itemCol {
			break
		}
		f.advance()
	}
	return list
}

// parseLineBlock implements spec §4.5 LineBlock: each "|"-prefixed line
// becomes a LineBlockItem.
func (f *frame) parseLineBlock() *Node {
	itemCol := f.cur().Col
	lb := NewNode(KindLineBlock)
	for f.cur().Symbol == "|" {
		f.advance()
		if f.cur().Kind == WHITE {
			f.advance()
		}
		line, _ := f.parseParagraphLine()
		item := NewNode(KindLineBlockItem)
		item.Children = mergeLeaves(line)
		lb.Append(item)

		if !f.continuesList(itemCol, func() bool { return f.cur().Symbol == "|" }) {
			break
		}
		f.advance()
	}
	return lb
}

// parseFieldList implements spec §4.5 Fields. It is also reused by the
// directive subsystem to parse a directive's option field list
// (spec §4.6).
func (f *frame) parseFieldList() *Node {
	itemCol := f.cur().Col
	fl := NewNode(KindFieldList)
	for f.cur().Kind == PUNCT && f.cur().Symbol == ":" {
		f.advance()
		var nameNodes []*Node
		for !(f.cur().Kind == PUNCT && f.cur().Symbol == ":") && f.cur().Kind != INDENT && f.cur().Kind != EOF {
			nameNodes = append(nameNodes, f.parseInlineAtom())
		}
		if f.cur().Symbol == ":" {
			f.advance()
		}
		if f.cur().Kind == WHITE {
			f.advance()
		}
		fieldName := NewNode(KindFieldName)
		fieldName.Children = mergeLeaves(nameNodes)

		bodyLine, _ := f.parseParagraphLine()
		var bodyKids []*Node
		if text := mergeLeaves(bodyLine); len(text) > 0 {
			bodyKids = append(bodyKids, NewNode(KindParagraph, text...))
		}
		if f.cur().Kind == INDENT && f.cur().IVal > itemCol {
			contentCol := f.cur().IVal
			f.pushIndent(contentCol)
			bodyKids = append(bodyKids, f.parseDocument()...)
			f.popIndent()
		}
		fieldBody := NewNode(KindFieldBody)
		fieldBody.Children = retagLoneParagraph(bodyKids)

		fl.Append(NewNode(KindField, fieldName, fieldBody))

		if !f.continuesList(itemCol, func() bool {
			return f.cur().Kind == PUNCT && f.cur().Symbol == ":"
		}) {
			break
		}
		f.advance()
	}
	return fl
}

// fieldValue extracts the plain text of a single-paragraph FieldBody,
// for directive handlers reading e.g. `:literal:` / `:file:` values.
func fieldValue(body *Node) string {
	if body == nil {
		return ""
	}
	var s string
	for _, c := range body.Children {
		if c.Kind == KindParagraph || c.Kind == KindInner {
			for _, leaf := range c.Children {
				s += leaf.Text
			}
		}
	}
	return s
}

// fieldLookup finds a field by name (case-sensitive, matching the exact
// text collected for FieldName) inside a FieldList node.
func fieldLookup(fl *Node, name string) (*Node, bool) {
	if fl == nil {
		return nil, false
	}
	for _, field := range fl.Children {
		if field.Kind != KindField || len(field.Children) < 2 {
			continue
		}
		fname := field.Children[0]
		var text string
		for _, c := range fname.Children {
			text += c.Text
		}
		if text == name {
			return field.Children[1], true
		}
	}
	return nil, false
}

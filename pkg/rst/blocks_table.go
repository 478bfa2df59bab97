package rst

// colRange is one column's [start, end) span in source columns, as
// measured off the table's first border line.
type colRange struct {
	start, end int
}

// readColRanges reads the ADORNMENT/WHITE alternation of the current
// border line (without consuming it) and returns one colRange per
// adornment run.
func (f *frame) readColRanges() []colRange {
	var ranges []colRange
	i := f.idx
	for i < len(f.tok) && f.tok[i].Kind == ADORNMENT {
		t := f.tok[i]
		ranges = append(ranges, colRange{start: t.Col, end: t.Col + len([]rune(t.Symbol))})
		i++
		if i < len(f.tok) && f.tok[i].Kind == WHITE {
			i++
			continue
		}
		break
	}
	return ranges
}

func (f *frame) consumeBorderLine() {
	for f.cur().Kind == ADORNMENT || f.cur().Kind == WHITE {
		f.advance()
	}
	if f.cur().Kind == INDENT {
		f.advance()
	}
}

func (f *frame) isTableBorderHere(ranges []colRange) bool {
	return len(ranges) > 0 && f.cur().Kind == ADORNMENT && f.cur().Col == ranges[0].start
}

func colIndexFor(ranges []colRange, col int) int {
	for i, r := range ranges {
		if col < r.end {
			return i
		}
	}
	return len(ranges) - 1
}

// parseSimpleTable implements spec §4.5 SimpleTable. Column boundaries
// come from the opening border line; a second border line partway
// through promotes the rows seen so far to header cells; the table ends
// at the first INDENT whose column falls below the table's own indent.
// A line whose first token lands in column 0 starts a new row; a line
// whose first token lands in a later column is a continuation of the
// previous row's cell in that column.
func (f *frame) parseSimpleTable() *Node {
	ranges := f.readColRanges()
	if len(ranges) == 0 {
		return f.parseParagraph()
	}
	f.consumeBorderLine()

	cellBuf := make([][]*Node, len(ranges))
	var rows []*Node
	headerBoundary := -1
	atLineStart := true

	flush := func() {
		nonEmpty := false
		for _, c := range cellBuf {
			if len(c) > 0 {
				nonEmpty = true
			}
		}
		if !nonEmpty {
			return
		}
		row := NewNode(KindTableRow)
		for _, c := range cellBuf {
			cell := NewNode(KindTableDataCell)
			cell.Children = mergeLeaves(c)
			row.Append(cell)
		}
		rows = append(rows, row)
		cellBuf = make([][]*Node, len(ranges))
	}

	for {
		cur := f.cur()
		if cur.Kind == EOF {
			flush()
			break
		}
		if cur.Kind == INDENT {
			if cur.IVal < f.currInd() {
				flush()
				break
			}
			f.advance()
			atLineStart = true
			continue
		}
		if f.isTableBorderHere(ranges) {
			flush()
			if headerBoundary == -1 {
				headerBoundary = len(rows)
			}
			f.consumeBorderLine()
			atLineStart = true
			continue
		}

		idx := colIndexFor(ranges, cur.Col)
		if atLineStart && idx == 0 && len(cellBuf[0]) > 0 {
			flush()
		} else if atLineStart && idx != 0 && len(cellBuf[idx]) > 0 {
			cellBuf[idx] = append(cellBuf[idx], NewLeaf(" "))
		}
		atLineStart = false
		cellBuf[idx] = append(cellBuf[idx], f.parseInlineAtom())
	}

	if headerBoundary > 0 {
		for i := 0; i < headerBoundary && i < len(rows); i++ {
			for _, cell := range rows[i].Children {
				cell.Kind = KindTableHeaderCell
			}
		}
	}
	table := NewNode(KindTable)
	table.Children = rows
	return table
}

// parseGridTable reports that grid tables ("+---+---+" borders) are not
// supported (spec §7 Non-goals) and falls back to paragraph parsing so a
// document using one degrades instead of aborting outright, for message
// handlers that choose not to treat MsgGridTableNotImplemented as fatal.
func (f *frame) parseGridTable() *Node {
	f.errorf(MsgGridTableNotImplemented, "grid tables are not supported")
	return f.parseParagraph()
}

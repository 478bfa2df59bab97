package rst

import (
	"strings"
	"testing"
)

func TestParseSimpleTableWithHeader(t *testing.T) {
	src := "=====  =====\n" +
		"A      B\n" +
		"=====  =====\n" +
		"1      2\n" +
		"=====  =====\n"
	ast, _ := mustParse(t, src, ParseOptions{})
	table := findFirst(ast, KindTable)
	if table == nil {
		t.Fatalf("expected a Table node, got %v", ast)
	}
	if len(table.Children) != 2 {
		t.Fatalf("expected 2 rows (1 header + 1 data), got %d: %v", len(table.Children), table.Children)
	}
	header := table.Children[0]
	if len(header.Children) != 2 {
		t.Fatalf("expected 2 header cells, got %d", len(header.Children))
	}
	for i, cell := range header.Children {
		if cell.Kind != KindTableHeaderCell {
			t.Errorf("header cell %d: got kind %s, want TableHeaderCell", i, cell.Kind)
		}
	}
	if got := strings.TrimSpace(collectText(header.Children[0])); got != "A" {
		t.Errorf("header cell 0 = %q, want %q", got, "A")
	}
	if got := strings.TrimSpace(collectText(header.Children[1])); got != "B" {
		t.Errorf("header cell 1 = %q, want %q", got, "B")
	}

	data := table.Children[1]
	for i, cell := range data.Children {
		if cell.Kind != KindTableDataCell {
			t.Errorf("data cell %d: got kind %s, want TableDataCell", i, cell.Kind)
		}
	}
	if got := strings.TrimSpace(collectText(data.Children[0])); got != "1" {
		t.Errorf("data cell 0 = %q, want %q", got, "1")
	}
	if got := strings.TrimSpace(collectText(data.Children[1])); got != "2" {
		t.Errorf("data cell 1 = %q, want %q", got, "2")
	}
}

// With only the opening and closing border lines present (no header
// separator in between), the closing border is itself the "second
// adornment line" the column spec describes, so every row collected
// before it is promoted to header cells rather than left as data.
func TestParseSimpleTableTwoBordersPromotesAllRowsToHeader(t *testing.T) {
	src := "=====  =====\n" +
		"x      y\n" +
		"z      w\n" +
		"=====  =====\n"
	ast, _ := mustParse(t, src, ParseOptions{})
	table := findFirst(ast, KindTable)
	if table == nil {
		t.Fatalf("expected a Table node, got %v", ast)
	}
	if len(table.Children) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(table.Children), table.Children)
	}
	for r, row := range table.Children {
		for c, cell := range row.Children {
			if cell.Kind != KindTableHeaderCell {
				t.Errorf("row %d cell %d: got kind %s, want TableHeaderCell", r, c, cell.Kind)
			}
		}
	}
}

func TestParseGridTableDegradesToParagraphWithError(t *testing.T) {
	var msgs []MsgKind
	handler := func(filename string, line, col int, kind MsgKind, arg string) {
		msgs = append(msgs, kind)
	}
	ast, _, err := Parse("+----+----+\n", "<test>", 0, 0, ParseOptions{}, nil, handler)
	if err != nil {
		t.Fatalf("expected a non-panicking handler to let parsing complete, got error: %v", err)
	}
	if len(msgs) != 1 || msgs[0] != MsgGridTableNotImplemented {
		t.Fatalf("expected exactly one MsgGridTableNotImplemented diagnostic, got %v", msgs)
	}
	if findFirst(ast, KindTable) != nil {
		t.Errorf("expected no Table node for an unsupported grid table")
	}
	if findFirst(ast, KindParagraph) == nil {
		t.Errorf("expected the grid table markup to fall back to a Paragraph, got %v", ast)
	}
}

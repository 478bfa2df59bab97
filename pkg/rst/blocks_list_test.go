package rst

import "testing"

func TestParseEnumListTwoItems(t *testing.T) {
	ast, _ := mustParse(t, "1. one\n2. two\n", ParseOptions{})
	el := findFirst(ast, KindEnumList)
	if el == nil {
		t.Fatalf("expected an EnumList node, got %v", ast)
	}
	if len(el.Children) != 2 {
		t.Fatalf("expected 2 enum items, got %d: %v", len(el.Children), el.Children)
	}
	for i, c := range el.Children {
		if c.Kind != KindEnumItem {
			t.Errorf("child %d: got kind %s, want EnumItem", i, c.Kind)
		}
	}
	if got := collectText(el.Children[0]); got != "one" {
		t.Errorf("item 0 text = %q, want %q", got, "one")
	}
	if got := collectText(el.Children[1]); got != "two" {
		t.Errorf("item 1 text = %q, want %q", got, "two")
	}
}

func TestParseAutoNumberedEnumList(t *testing.T) {
	ast, _ := mustParse(t, "#. one\n#. two\n", ParseOptions{})
	el := findFirst(ast, KindEnumList)
	if el == nil {
		t.Fatalf("expected '#.'-style markers to classify as an EnumList, got %v", ast)
	}
	if len(el.Children) != 2 {
		t.Fatalf("expected 2 enum items, got %d: %v", len(el.Children), el.Children)
	}
	if got := collectText(el.Children[0]); got != "one" {
		t.Errorf("item 0 text = %q, want %q", got, "one")
	}
	if got := collectText(el.Children[1]); got != "two" {
		t.Errorf("item 1 text = %q, want %q", got, "two")
	}
}

func TestParseDefListTwoTerms(t *testing.T) {
	ast, _ := mustParse(t, "cat\n    says meow\ndog\n    says woof\n", ParseOptions{})
	dl := findFirst(ast, KindDefList)
	if dl == nil {
		t.Fatalf("expected a DefList node, got %v", ast)
	}
	if len(dl.Children) != 2 {
		t.Fatalf("expected 2 def items, got %d: %v", len(dl.Children), dl.Children)
	}
	first := dl.Children[0]
	if first.Kind != KindDefItem || len(first.Children) != 2 {
		t.Fatalf("expected first DefItem with name+body, got %v", first)
	}
	if got := collectText(first.Children[0]); got != "cat" {
		t.Errorf("first term = %q, want %q", got, "cat")
	}
	if got := collectText(first.Children[1]); got != "says meow" {
		t.Errorf("first body = %q, want %q", got, "says meow")
	}
	second := dl.Children[1]
	if got := collectText(second.Children[0]); got != "dog" {
		t.Errorf("second term = %q, want %q", got, "dog")
	}
}

func TestParseOptionListTwoOptions(t *testing.T) {
	ast, _ := mustParse(t, "-f  turn on foo\n-g  turn on bar\n", ParseOptions{})
	ol := findFirst(ast, KindOptionList)
	if ol == nil {
		t.Fatalf("expected an OptionList node, got %v", ast)
	}
	if len(ol.Children) != 2 {
		t.Fatalf("expected 2 option items, got %d: %v", len(ol.Children), ol.Children)
	}
	item := ol.Children[0]
	if item.Kind != KindOptionListItem || len(item.Children) != 2 {
		t.Fatalf("expected OptionListItem with group+description, got %v", item)
	}
	if got := collectText(item.Children[0]); got != "-f" {
		t.Errorf("option group = %q, want %q", got, "-f")
	}
	if got := collectText(item.Children[1]); got != "turn on foo" {
		t.Errorf("option description = %q, want %q", got, "turn on foo")
	}
}

func TestParseLineBlockTwoLines(t *testing.T) {
	ast, _ := mustParse(t, "| line one\n| line two\n", ParseOptions{})
	lb := findFirst(ast, KindLineBlock)
	if lb == nil {
		t.Fatalf("expected a LineBlock node, got %v", ast)
	}
	if len(lb.Children) != 2 {
		t.Fatalf("expected 2 line block items, got %d: %v", len(lb.Children), lb.Children)
	}
	if got := collectText(lb.Children[0]); got != "line one" {
		t.Errorf("line 0 = %q, want %q", got, "line one")
	}
	if got := collectText(lb.Children[1]); got != "line two" {
		t.Errorf("line 1 = %q, want %q", got, "line two")
	}
}

func TestParseFieldListTwoFields(t *testing.T) {
	ast, _ := mustParse(t, ":author: Jane Doe\n:date: 2026\n", ParseOptions{})
	fl := findFirst(ast, KindFieldList)
	if fl == nil {
		t.Fatalf("expected a FieldList node, got %v", ast)
	}
	if len(fl.Children) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(fl.Children), fl.Children)
	}
	body, ok := fieldLookup(fl, "author")
	if !ok {
		t.Fatalf("expected fieldLookup to find 'author' field")
	}
	if got := fieldValue(body); got != "Jane Doe" {
		t.Errorf("author field value = %q, want %q", got, "Jane Doe")
	}
	if _, ok := fieldLookup(fl, "missing"); ok {
		t.Errorf("expected fieldLookup to report false for an absent field name")
	}
}

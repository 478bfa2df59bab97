package rst

import (
	"fmt"
	"io"
	"strings"
)

// NodeKind enumerates the AST node kinds this parser produces. The node
// shape itself is the only thing assumed about the downstream AST
// library — renderers (HTML, LaTeX, ...) are external collaborators.
type NodeKind int

const (
	KindParagraph NodeKind = iota
	KindHeadline
	KindOverline
	KindEmphasis
	KindStrongEmphasis
	KindTripleEmphasis
	KindInlineLiteral
	KindInterpretedText
	KindLiteralBlock
	KindCodeBlock
	KindBulletList
	KindBulletItem
	KindEnumList
	KindEnumItem
	KindDefList
	KindDefName
	KindDefBody
	KindDefItem
	KindOptionList
	KindOptionGroup
	KindOptionListItem
	KindDescription
	KindFieldList
	KindField
	KindFieldName
	KindFieldBody
	KindDirArg
	KindDirective
	KindHyperlink
	KindStandaloneHyperlink
	KindRef
	KindIdx
	KindSub
	KindSup
	KindSmiley
	KindGeneralRole
	KindSubstitutionReferences
	KindTransition
	KindTable
	KindTableRow
	KindTableDataCell
	KindTableHeaderCell
	KindLineBlock
	KindLineBlockItem
	KindBlockQuote
	KindInner
	KindLeaf
	KindImage
	KindFigure
	KindTitle
	KindContents
	KindIndex
	KindContainer
	KindRawHtml
	KindRawLatex
	KindRaw
)

var kindNames = map[NodeKind]string{
	KindParagraph:              "Paragraph",
	KindHeadline:                "Headline",
	KindOverline:                "Overline",
	KindEmphasis:                "Emphasis",
	KindStrongEmphasis:          "StrongEmphasis",
	KindTripleEmphasis:          "TripleEmphasis",
	KindInlineLiteral:           "InlineLiteral",
	KindInterpretedText:         "InterpretedText",
	KindLiteralBlock:            "LiteralBlock",
	KindCodeBlock:               "CodeBlock",
	KindBulletList:              "BulletList",
	KindBulletItem:              "BulletItem",
	KindEnumList:                "EnumList",
	KindEnumItem:                "EnumItem",
	KindDefList:                 "DefList",
	KindDefName:                 "DefName",
	KindDefBody:                 "DefBody",
	KindDefItem:                 "DefItem",
	KindOptionList:              "OptionList",
	KindOptionGroup:             "OptionGroup",
	KindOptionListItem:          "OptionListItem",
	KindDescription:             "Description",
	KindFieldList:               "FieldList",
	KindField:                   "Field",
	KindFieldName:               "FieldName",
	KindFieldBody:               "FieldBody",
	KindDirArg:                  "DirArg",
	KindDirective:               "Directive",
	KindHyperlink:               "Hyperlink",
	KindStandaloneHyperlink:     "StandaloneHyperlink",
	KindRef:                     "Ref",
	KindIdx:                     "Idx",
	KindSub:                     "Sub",
	KindSup:                     "Sup",
	KindSmiley:                  "Smiley",
	KindGeneralRole:             "GeneralRole",
	KindSubstitutionReferences:  "SubstitutionReferences",
	KindTransition:              "Transition",
	KindTable:                   "Table",
	KindTableRow:                "TableRow",
	KindTableDataCell:           "TableDataCell",
	KindTableHeaderCell:         "TableHeaderCell",
	KindLineBlock:               "LineBlock",
	KindLineBlockItem:           "LineBlockItem",
	KindBlockQuote:              "BlockQuote",
	KindInner:                   "Inner",
	KindLeaf:                    "Leaf",
	KindImage:                   "Image",
	KindFigure:                  "Figure",
	KindTitle:                   "Title",
	KindContents:                "Contents",
	KindIndex:                   "Index",
	KindContainer:               "Container",
	KindRawHtml:                 "RawHtml",
	KindRawLatex:                "RawLatex",
	KindRaw:                     "Raw",
}

func (k NodeKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Node is a single AST node. Text is meaningful only on Leaf nodes.
// Level is meaningful only on Headline/Overline nodes.
type Node struct {
	Kind     NodeKind
	Text     string
	Children []*Node
	Level    int
}

func NewNode(kind NodeKind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

func NewLeaf(text string) *Node {
	return &Node{Kind: KindLeaf, Text: text}
}

func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// Dump writes an indented tree rendering of n to w, two spaces per level,
// Leaf nodes quoting their text. This is the shape the `rst2x parse` CLI
// command prints and the one the golden-file regression suite compares
// against, so a change here is a change to both.
func Dump(w io.Writer, n *Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if n.Kind == KindLeaf {
		fmt.Fprintf(w, "%s%s %q\n", indent, n.Kind, n.Text)
		return
	}
	if n.Kind == KindHeadline || n.Kind == KindOverline {
		fmt.Fprintf(w, "%s%s(level=%d)\n", indent, n.Kind, n.Level)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, n.Kind)
	}
	for _, c := range n.Children {
		Dump(w, c, depth+1)
	}
}

// DumpString is Dump rendered to a string, for tests and any caller that
// doesn't already have an io.Writer in hand.
func DumpString(n *Node) string {
	var sb strings.Builder
	Dump(&sb, n, 0)
	return sb.String()
}

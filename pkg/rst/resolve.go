package rst

import (
	"os"
	"strings"

	"github.com/GriffinCanCode/rst2x/internal/rtext"
)

// RefName normalizes a hyperlink/footnote label the way
// rstnodeToRefname does in spec §4.7: lowercase letters (Unicode-aware,
// via internal/rtext), keep digits, collapse every other run into a
// single '-' separator, drop leading separators, and prefix "z" if the
// result would otherwise start with a digit.
func RefName(s string) string {
	var b strings.Builder
	sep := false
	for _, r := range rtext.FoldLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			sep = false
		case r >= '0' && r <= '9':
			if b.Len() == 0 {
				b.WriteByte('z')
			}
			b.WriteRune(r)
			sep = false
		default:
			if b.Len() > 0 && !sep {
				b.WriteByte('-')
				sep = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// resolve performs the post-order walk described in spec §4.7:
// substitution references and hyperlink refs are replaced in a single
// pass after the whole document has parsed, so forward references are
// legal (spec §5 Ordering).
func (f *frame) resolve(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindSubstitutionReferences:
		f.resolvedSubs++
		return f.resolveSubstitution(n)
	case KindRef:
		f.resolvedRefs++
		return f.resolveRef(n)
	case KindContents:
		f.state.hasToc = true
	}
	for i, c := range n.Children {
		n.Children[i] = f.resolve(c)
	}
	return n
}

func (f *frame) resolveSubstitution(n *Node) *Node {
	key := n.Text
	if val, ok := f.state.findSub(key); ok {
		return cloneNode(val)
	}
	if env, ok := os.LookupEnv(key); ok {
		return NewLeaf(env)
	}
	f.errorf(MsgUnknownSubstitution, "unknown substitution %q", key)
	return n
}

func (f *frame) resolveRef(n *Node) *Node {
	name := n.Text
	target, ok := f.state.findRef(name)
	if !ok {
		for i, c := range n.Children {
			n.Children[i] = f.resolve(c)
		}
		return n
	}
	label := cloneNode(n)
	label.Kind = KindInner
	return NewNode(KindHyperlink, label, cloneNode(target))
}

// cloneNode deep-copies a node so a shared substitution/reference value
// can appear at multiple sites without aliasing mutable state (spec §9
// Design Notes: "an owned-copy strategy keeps trees tree-shaped").
func cloneNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Kind: n.Kind, Text: n.Text, Level: n.Level}
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = cloneNode(c)
		}
	}
	return cp
}

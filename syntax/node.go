// Package syntax parses coremx patterns into syntax trees.
//
// The dialect has literals, concatenation, grouping and alternation:
//
//	Expr  := Unit+             // up to end of input or ')'
//	Unit  := Atom ('|' Unit)?
//	Atom  := Literal | '(' Expr ')' | '\' any
//
// IMPORTANT: '|' binds exactly one Atom on each side, before concatenation
// is applied. This is NOT POSIX/PCRE precedence:
//
//	ab|cd      is  a(b|c)d      (not (ab)|(cd))
//	(ab)|(cd)  is  ab or cd
//	a|b|c      is  a|(b|c)
//
// Wrap whole subsequences in parentheses to alternate between them.
//
// A backslash is an escape, not a literal: '\' followed by any code unit
// is that unit taken literally, so
//
//	a\b   is  ab      (matches "ab", not "a\b")
//	a\\b  is  a\b     (matches the three units 'a', '\', 'b')
//	\(    is  (       (matches a literal parenthesis)
//
// A trailing backslash is ErrUnexpectedEndOfInput.
package syntax

import (
	"fmt"
	"strings"

	"github.com/coregx/coremx/codeunit"
)

// Op identifies the kind of a syntax tree node.
type Op uint8

const (
	// OpLiteral matches exactly one code unit (Node.Unit)
	OpLiteral Op = iota + 1

	// OpSequence matches Sub[0], Sub[1], ... in order; len(Sub) >= 2
	OpSequence

	// OpAlternation matches Sub[0] or Sub[1]; len(Sub) == 2
	OpAlternation
)

// String returns a human-readable representation of the Op
func (op Op) String() string {
	switch op {
	case OpLiteral:
		return "Literal"
	case OpSequence:
		return "Sequence"
	case OpAlternation:
		return "Alternation"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Node is a syntax tree node. Each node exclusively owns its children.
type Node struct {
	Op   Op
	Unit codeunit.Unit // OpLiteral only
	Sub  []*Node       // OpSequence, OpAlternation
}

// Literal returns a literal node for u.
func Literal(u codeunit.Unit) *Node {
	return &Node{Op: OpLiteral, Unit: u}
}

// Sequence returns a sequence node. Panics if fewer than two items are given;
// a single item is never wrapped.
func Sequence(items ...*Node) *Node {
	if len(items) < 2 {
		panic(fmt.Sprintf("syntax: Sequence needs at least 2 items, got %d", len(items)))
	}
	return &Node{Op: OpSequence, Sub: items}
}

// Alternation returns an alternation node of left and right.
func Alternation(left, right *Node) *Node {
	return &Node{Op: OpAlternation, Sub: []*Node{left, right}}
}

// Left returns the left operand of an alternation.
func (n *Node) Left() *Node {
	if n.Op != OpAlternation {
		return nil
	}
	return n.Sub[0]
}

// Right returns the right operand of an alternation.
func (n *Node) Right() *Node {
	if n.Op != OpAlternation {
		return nil
	}
	return n.Sub[1]
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	c := 1
	for _, sub := range n.Sub {
		c += sub.Count()
	}
	return c
}

// String renders n as a pattern that parses back to an equal tree.
// Alternations inside sequences and sequences inside alternations are
// parenthesized, so the output reads the same under both this dialect and
// conventional precedence.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Op {
	case OpLiteral:
		if IsMeta(n.Unit) {
			b.WriteByte('\\')
		}
		b.WriteString(n.Unit.String())
	case OpSequence:
		for _, sub := range n.Sub {
			if sub.Op == OpLiteral {
				sub.write(b)
				continue
			}
			writeGroup(b, sub)
		}
	case OpAlternation:
		left, right := n.Sub[0], n.Sub[1]
		if left.Op == OpLiteral {
			left.write(b)
		} else {
			writeGroup(b, left)
		}
		b.WriteByte('|')
		if right.Op == OpSequence {
			writeGroup(b, right)
		} else {
			right.write(b)
		}
	default:
		panic(fmt.Sprintf("syntax: unknown op %v", n.Op))
	}
}

func writeGroup(b *strings.Builder, n *Node) {
	b.WriteByte('(')
	n.write(b)
	b.WriteByte(')')
}

// Dump returns an indented, one-node-per-line rendering of the tree.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n.Op == OpLiteral {
		fmt.Fprintf(b, "Literal %q\n", n.Unit.String())
		return
	}
	b.WriteString(n.Op.String())
	b.WriteByte('\n')
	for _, sub := range n.Sub {
		sub.dump(b, depth+1)
	}
}

// Metacharacters
const (
	metaOpen   = '('
	metaClose  = ')'
	metaPipe   = '|'
	metaEscape = '\\'
)

// IsMeta reports whether u is one of the metacharacters ( ) | \
func IsMeta(u codeunit.Unit) bool {
	return u.Len() == 1 && IsMetaByte(u.String()[0])
}

// IsMetaByte reports whether c is one of the metacharacters ( ) | \
func IsMetaByte(c byte) bool {
	return c == metaOpen || c == metaClose || c == metaPipe || c == metaEscape
}

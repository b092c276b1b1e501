package syntax

import (
	"github.com/coregx/coremx/codeunit"
)

// Config configures parsing.
type Config struct {
	// MaxDepth limits group nesting.
	// Default: 100
	MaxDepth int
}

// DefaultConfig returns a parser configuration with sensible defaults
func DefaultConfig() Config {
	return Config{MaxDepth: 100}
}

// Parse segments pattern into code units and parses it with the default
// configuration.
func Parse(pattern []byte) (*Node, error) {
	return ParseWithConfig(pattern, DefaultConfig())
}

// ParseString is like Parse for a string pattern.
func ParseString(pattern string) (*Node, error) {
	return Parse([]byte(pattern))
}

// ParseWithConfig segments and parses pattern.
// Encoding errors are returned unchanged as *codeunit.Error.
func ParseWithConfig(pattern []byte, config Config) (*Node, error) {
	units, err := codeunit.Segment(pattern)
	if err != nil {
		return nil, err
	}
	return ParseUnits(units, config)
}

// ParseUnits parses an already segmented pattern.
func ParseUnits(units []codeunit.Unit, config Config) (*Node, error) {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	p := &parser{
		cur:      codeunit.NewCursor(units),
		units:    units,
		maxDepth: config.MaxDepth,
	}

	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	// parseExpr only stops early at a ')' that no group opened
	if !p.cur.Done() {
		return nil, p.errorf(ErrUnbalancedGroup, p.cur.Pos())
	}
	return root, nil
}

// MustParse is like ParseString but panics on error.
func MustParse(pattern string) *Node {
	n, err := ParseString(pattern)
	if err != nil {
		panic("syntax: MustParse(`" + pattern + "`): " + err.Error())
	}
	return n
}

type parser struct {
	cur      *codeunit.Cursor
	units    []codeunit.Unit
	depth    int
	maxDepth int
}

func (p *parser) errorf(err error, pos int) *Error {
	return &Error{
		Err:     err,
		Pos:     pos,
		Pattern: string(codeunit.Join(p.units)),
	}
}

// parseExpr parses Unit+ up to end of input or a ')' it does not consume.
func (p *parser) parseExpr() (*Node, error) {
	var items []*Node
	for {
		u, ok := p.cur.Peek()
		if !ok || u.Is(metaClose) {
			break
		}
		n, err := p.parseUnit()
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}

	switch len(items) {
	case 0:
		pos := p.cur.Pos()
		switch {
		case p.cur.Done() && p.depth > 0:
			return nil, p.errorf(ErrUnexpectedEndOfInput, pos)
		case !p.cur.Done() && p.depth == 0:
			return nil, p.errorf(ErrUnbalancedGroup, pos)
		default:
			return nil, p.errorf(ErrEmptyExpression, pos)
		}
	case 1:
		return items[0], nil
	default:
		return Sequence(items...), nil
	}
}

// parseUnit parses Atom ('|' Unit)?. The right recursion is unrolled: the
// chain a|b|c is collected first and folded into Alternation(a, Alternation(b, c)).
func (p *parser) parseUnit() (*Node, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if !p.cur.PeekIs(metaPipe) {
		return first, nil
	}

	chain := []*Node{first}
	for p.cur.PeekIs(metaPipe) {
		p.cur.Advance()
		n, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		chain = append(chain, n)
	}

	n := chain[len(chain)-1]
	for i := len(chain) - 2; i >= 0; i-- {
		n = Alternation(chain[i], n)
	}
	return n, nil
}

// parseAtom parses Literal | '(' Expr ')' | '\' any.
func (p *parser) parseAtom() (*Node, error) {
	pos := p.cur.Pos()
	u, ok := p.cur.Advance()
	if !ok {
		return nil, p.errorf(ErrUnexpectedEndOfInput, pos)
	}

	switch {
	case u.Is(metaOpen):
		return p.parseGroup(pos)
	case u.Is(metaClose), u.Is(metaPipe):
		return nil, p.errorf(ErrMissingOperand, pos)
	case u.Is(metaEscape):
		escaped, ok := p.cur.Advance()
		if !ok {
			return nil, p.errorf(ErrUnexpectedEndOfInput, p.cur.Pos())
		}
		return Literal(escaped), nil
	default:
		return Literal(u), nil
	}
}

// parseGroup parses the remainder of a group whose '(' at open was consumed.
func (p *parser) parseGroup(open int) (*Node, error) {
	p.depth++
	if p.depth > p.maxDepth {
		return nil, p.errorf(ErrNestingDepth, open)
	}
	defer func() { p.depth-- }()

	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.cur.PeekIs(metaClose) {
		return nil, p.errorf(ErrUnbalancedGroup, open)
	}
	p.cur.Advance()
	return n, nil
}

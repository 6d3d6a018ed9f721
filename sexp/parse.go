package sexp

import "strconv"

type ParseOption func(*parser)

// Spans registers a callback invoked for every list form as its closing
// delimiter is consumed, with the form's byte range [start, end) and its
// nesting depth (0 = the document's root form). This is the combined
// scan-and-parse pass: span discovery and tree construction happen over
// literally the same bytes in one left-to-right scan.
func Spans(fn func(n *Node, start, end, depth int)) ParseOption {
	return func(p *parser) {
		p.spanFn = fn
	}
}

// Parse parses one S-expression document. The whole input must be a
// single expression apart from surrounding whitespace; any failure
// aborts the parse with no partial tree.
func Parse(d []byte, opts ...ParseOption) (*Node, error) {
	p := &parser{d: d, pd: &PosDoc{d: d}}
	for _, opt := range opts {
		opt(p)
	}
	p.skipSpace()
	if p.i >= len(p.d) {
		return nil, NewParseErr(ErrEmptyDoc, p.pd.Pos(0))
	}
	root, err := p.parseValue(nil, 0, 0)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.i < len(p.d) {
		return nil, NewParseErr(ErrTrailing, p.pd.Pos(p.i))
	}
	return root, nil
}

type parser struct {
	d      []byte
	i      int
	pd     *PosDoc
	spanFn func(n *Node, start, end, depth int)
}

func (p *parser) skipSpace() {
	for p.i < len(p.d) {
		switch p.d[p.i] {
		case '\n':
			p.pd.nl(p.i)
		case ' ', '\t', '\r':
		default:
			return
		}
		p.i++
	}
}

func (p *parser) parseValue(parent *Node, idx, depth int) (*Node, error) {
	switch p.d[p.i] {
	case '(':
		return p.parseList(parent, idx, depth)
	case ')':
		return nil, UnexpectedErr(")", p.pd.Pos(p.i))
	case '"':
		return p.parseString(parent, idx)
	default:
		return p.parseAtom(parent, idx), nil
	}
}

func (p *parser) parseList(parent *Node, idx, depth int) (*Node, error) {
	start := p.i
	p.i++ // (
	node := &Node{Type: ListType, Parent: parent, ParentIndex: idx}
	for {
		p.skipSpace()
		if p.i >= len(p.d) {
			return nil, NewParseErr(ErrUnbalanced, p.pd.Pos(start))
		}
		if p.d[p.i] == ')' {
			p.i++
			break
		}
		child, err := p.parseValue(node, len(node.Values), depth+1)
		if err != nil {
			return nil, err
		}
		node.Values = append(node.Values, child)
	}
	if p.spanFn != nil {
		p.spanFn(node, start, p.i, depth)
	}
	return node, nil
}

func (p *parser) parseString(parent *Node, idx int) (*Node, error) {
	start := p.i
	p.i++ // "
	for p.i < len(p.d) {
		switch p.d[p.i] {
		case '\\':
			p.i += 2
			continue
		case '\n':
			p.pd.nl(p.i)
		case '"':
			node := &Node{
				Type:        StringType,
				Parent:      parent,
				ParentIndex: idx,
				Str:         Unquote(p.d[start+1 : p.i]),
			}
			p.i++
			return node, nil
		}
		p.i++
	}
	return nil, NewParseErr(ErrUnterminated, p.pd.Pos(start))
}

func (p *parser) parseAtom(parent *Node, idx int) *Node {
	start := p.i
	for p.i < len(p.d) && !atomEnd(p.d[p.i]) {
		p.i++
	}
	s := string(p.d[start:p.i])
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return &Node{Type: NumberType, Parent: parent, ParentIndex: idx, Number: s}
	}
	return &Node{Type: SymbolType, Parent: parent, ParentIndex: idx, Sym: s}
}

func atomEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', '"':
		return true
	}
	return false
}

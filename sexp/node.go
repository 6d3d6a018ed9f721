package sexp

import "strings"

type Type int

const (
	SymbolType Type = iota
	StringType
	NumberType
	ListType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		SymbolType: "Symbol",
		StringType: "String",
		NumberType: "Number",
		ListType:   "List",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

// Node is one atom or compound form of a parsed document. Nodes are
// exclusively owned by their tree and are never mutated after parsing:
// every edit in this repository acts on document text, not on nodes.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	Values      []*Node

	Sym    string // SymbolType
	Str    string // StringType, decoded
	Number string // NumberType, raw spelling
}

// Tag returns the leading symbol of a list form, or "" when the node is
// not a list or its first child is not a symbol.
func (n *Node) Tag() string {
	if n == nil || n.Type != ListType || len(n.Values) == 0 {
		return ""
	}
	return n.Values[0].Sym
}

// Text returns the natural string reading of an atom: the decoded string
// for quoted strings, the spelling for symbols and numbers.
func (n *Node) Text() string {
	switch n.Type {
	case StringType:
		return n.Str
	case SymbolType:
		return n.Sym
	case NumberType:
		return n.Number
	default:
		return ""
	}
}

// Child returns the first list child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	if n == nil || n.Type != ListType {
		return nil
	}
	for _, c := range n.Values {
		if c.Type == ListType && c.Tag() == tag {
			return c
		}
	}
	return nil
}

// HasChild reports whether n has a list child with the given tag.
func (n *Node) HasChild(tag string) bool {
	return n.Child(tag) != nil
}

func (n *Node) String() string {
	switch n.Type {
	case SymbolType:
		return n.Sym
	case NumberType:
		return n.Number
	case StringType:
		return Quote(n.Str)
	case ListType:
		parts := make([]string, len(n.Values))
		for i, c := range n.Values {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return ""
	}
}

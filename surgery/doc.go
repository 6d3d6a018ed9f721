// Package surgery edits KiCad schematic files by byte-range splicing.
//
// A [Document] holds the original file text, the parsed tree and a span
// index over depth-0 and depth-1 forms. Queries read that snapshot;
// mutations only enqueue byte-range edits; [Document.Save] applies all
// enqueued edits against the untouched original text back-to-front, so
// the output is byte-identical to the input outside the edited ranges.
// Naive parse-mutate-reserialize pipelines silently normalize
// version-specific spellings (bare `hide` vs `(hide yes)`, whitespace,
// field order) that KiCad depends on; this package exists to avoid that.
package surgery

import (
	"fmt"
	"os"

	"github.com/kicad-edit/kicad-edit/sexp"
)

// Span is the byte range [Start, End) of one compound form, tracked for
// depth 0 (direct children of the document root) and depth 1 (compound
// children of a depth-0 form). Deeper structure is reachable via the
// tree but has no span. A Span is valid only against the text it was
// computed from: after Save, all previously obtained spans are stale.
type Span struct {
	Start, End int
	Node       *sexp.Node
	Depth      int
	Ordinal    int // sibling ordinal among same-depth forms of one parent
}

// Document is one loaded schematic. It owns the immutable original
// text, the parsed tree, the span index and a pending-edit queue. Each
// Document is independent; two writers targeting the same file race at
// the filesystem level and the last Save wins.
type Document struct {
	text  []byte
	tree  *sexp.Node
	spans map[*sexp.Node]*Span
	edits []pendingEdit
}

// Load reads and parses a schematic file. A missing file or any parse
// failure yields a single "cannot load" condition with no partial tree.
func Load(path string) (*Document, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	doc, err := New(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return doc, nil
}

// New parses schematic text held in memory. The span index is built in
// the same pass as the tree: the parser reports the byte range of every
// list form and the index keeps those at depths 0 and 1.
func New(text []byte) (*Document, error) {
	doc := &Document{
		text:  text,
		spans: map[*sexp.Node]*Span{},
	}
	ordinals := map[*sexp.Node]int{}
	tree, err := sexp.Parse(text, sexp.Spans(func(n *sexp.Node, start, end, depth int) {
		// parser depth 1 and 2 are span depths 0 and 1
		if depth != 1 && depth != 2 {
			return
		}
		ord := ordinals[n.Parent]
		ordinals[n.Parent] = ord + 1
		doc.spans[n] = &Span{
			Start:   start,
			End:     end,
			Node:    n,
			Depth:   depth - 1,
			Ordinal: ord,
		}
	}))
	if err != nil {
		return nil, err
	}
	if tree.Type != sexp.ListType {
		return nil, sexp.ErrNotList
	}
	doc.tree = tree
	return doc, nil
}

// Text returns the original document text. Enqueued edits are not
// reflected; see Apply.
func (doc *Document) Text() []byte {
	return doc.text
}

// Root returns the document's root form.
func (doc *Document) Root() *sexp.Node {
	return doc.tree
}

// Span returns the tracked span of a node, or nil when the node is an
// atom or nested deeper than depth 1.
func (doc *Document) Span(n *sexp.Node) *Span {
	return doc.spans[n]
}

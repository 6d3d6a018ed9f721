// Package scan provides quote- and escape-aware structural scans over
// S-expression text. It never parses: it only discovers byte ranges of
// parenthesized forms, bare atoms and quoted literals, which is what the
// surgical edit layer needs to splice text without re-serializing it.
//
// Malformed input never aborts a scan. Unmatched open forms are simply
// not recorded; validation belongs to the parser, not here.
package scan

// Span is the byte range [Start, End) of one parenthesized form. Start
// indexes the opening '(' and End is one past the matching ')'.
type Span struct {
	Start, End int
	Depth      int // 0 = direct child of the document's root form
	Ordinal    int // sibling ordinal among recorded forms at this depth

	// ParentStart is the Start of the depth-0 ancestor for Depth 1
	// spans, and -1 for Depth 0 spans.
	ParentStart int
}

// Index holds the spans of every depth-0 and depth-1 form of a document
// in document order. Deeper structure is not tracked.
type Index struct {
	Depth0 []Span
	Depth1 map[int][]Span // keyed by the depth-0 ancestor's Start
}

type opening struct {
	start       int
	depth       int // depth at open: 0 is the root form itself
	parentStart int
}

// Document scans a whole document in one pass, recording the spans of
// parenthesized forms at nesting depths 1 and 2 relative to the text
// (the root form's direct children and grandchildren). Parens inside
// quoted strings are skipped and a backslash unconditionally escapes the
// next character, so an escaped quote cannot terminate a string.
func Document(d []byte) *Index {
	idx := &Index{Depth1: map[int][]Span{}}
	var (
		stack    []opening
		depth    int
		inString bool
	)
	for i := 0; i < len(d); i++ {
		c := d[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '(':
			parent := -1
			if depth == 2 && len(stack) > 0 {
				parent = stack[len(stack)-1].start
			}
			stack = append(stack, opening{start: i, depth: depth, parentStart: parent})
			depth++
		case ')':
			depth--
			if depth < 0 {
				depth = 0
			}
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch open.depth {
			case 1:
				idx.Depth0 = append(idx.Depth0, Span{
					Start:       open.start,
					End:         i + 1,
					Depth:       0,
					Ordinal:     len(idx.Depth0),
					ParentStart: -1,
				})
			case 2:
				sibs := idx.Depth1[open.parentStart]
				idx.Depth1[open.parentStart] = append(sibs, Span{
					Start:       open.start,
					End:         i + 1,
					Depth:       1,
					Ordinal:     len(sibs),
					ParentStart: open.parentStart,
				})
			}
		}
	}
	return idx
}

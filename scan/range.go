package scan

import "github.com/kicad-edit/kicad-edit/sexp"

// Atom is a bare token (symbol or number) with its byte range.
type Atom struct {
	Start, End int
	Text       string
}

// Lit is a quoted string literal. Start and End include the quotes;
// Value is the decoded contents.
type Lit struct {
	Start, End int
	Value      string
}

// Children returns the byte ranges of the immediate child forms of the
// form spanning [start, end) of d, in document order. The range must
// cover one form: d[start] is its '(' and d[end-1] its ')'.
func Children(d []byte, start, end int) []Span {
	var (
		res      []Span
		depth    int
		open     int
		inString bool
	)
	for i := start + 1; i < end-1; i++ {
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
			if depth == 0 {
				open = i
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				res = append(res, Span{
					Start:       open,
					End:         i + 1,
					Depth:       0,
					Ordinal:     len(res),
					ParentStart: start,
				})
			}
			if depth < 0 {
				depth = 0
			}
		}
	}
	return res
}

// Atoms returns the bare tokens that are immediate children of the form
// spanning [start, end) of d, in document order. Nested forms and
// quoted strings are skipped.
func Atoms(d []byte, start, end int) []Atom {
	var (
		res      []Atom
		depth    int
		inString bool
	)
	i := start + 1
	for i < end-1 {
		c := d[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			i++
			continue
		}
		switch c {
		case '"':
			inString = true
			i++
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
		case ' ', '\t', '\n', '\r':
			i++
		default:
			j := i
			for j < end-1 && !tokenEnd(d[j]) {
				j++
			}
			if depth == 0 {
				res = append(res, Atom{Start: i, End: j, Text: string(d[i:j])})
			}
			i = j
		}
	}
	return res
}

// Strings returns every quoted literal within [start, end) of d in
// document order, at any nesting depth, with the same escape rules as
// the document scan.
func Strings(d []byte, start, end int) []Lit {
	var res []Lit
	for i := start; i < end; i++ {
		if d[i] != '"' {
			continue
		}
		qstart := i
		i++
		for i < end {
			if d[i] == '\\' {
				i += 2
				continue
			}
			if d[i] == '"' {
				break
			}
			i++
		}
		if i >= end {
			break // unterminated; record nothing past it
		}
		res = append(res, Lit{
			Start: qstart,
			End:   i + 1,
			Value: sexp.Unquote(d[qstart+1 : i]),
		})
	}
	return res
}

func tokenEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', '"':
		return true
	}
	return false
}

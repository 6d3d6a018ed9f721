package sexp

import "strings"

// Quote renders s as a KiCad double-quoted string literal, escaping
// backslash, double quote, newline and tab.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', '"':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Unquote decodes the contents of a quoted literal, d being the bytes
// between (not including) the quotes. A backslash escapes the next
// character unconditionally; n, t and r have their usual meanings and
// any other escaped character stands for itself.
func Unquote(d []byte) string {
	var b strings.Builder
	b.Grow(len(d))
	for i := 0; i < len(d); i++ {
		c := d[i]
		if c != '\\' || i == len(d)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch d[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(d[i])
		}
	}
	return b.String()
}

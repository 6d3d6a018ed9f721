// Package sexp parses KiCad's parenthesized S-expression text format
// into a generic value tree.
//
// [Parse] is the entry point. The tree carries no byte offsets of its
// own; callers that need them pass the [Spans] option and receive the
// byte range of every list form as it is parsed.
package sexp

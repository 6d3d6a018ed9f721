package sexp

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminated = errors.New("unterminated string")
	ErrUnbalanced   = errors.New("imbalanced document")
	ErrTrailing     = errors.New("trailing data after document")
	ErrEmptyDoc     = errors.New("empty document")
	ErrNotList      = errors.New("document is not a list form")
)

type ParseErr struct {
	Err error
	Pos Pos
}

func (e *ParseErr) Unwrap() error {
	return e.Err
}

func (e *ParseErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func NewParseErr(err error, p *Pos) *ParseErr {
	return &ParseErr{Err: err, Pos: *p}
}

func UnexpectedErr(what string, p *Pos) error {
	return NewParseErr(fmt.Errorf("unexpected %s", what), p)
}

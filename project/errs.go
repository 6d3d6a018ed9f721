package project

import "errors"

var (
	ErrLoad = errors.New("cannot load project")
	ErrSave = errors.New("cannot save project")
)

package surgery

import "errors"

var (
	ErrLoad = errors.New("cannot load")
	ErrSave = errors.New("cannot save")

	// ErrOverlappingEdit is returned when an enqueued edit's byte range
	// has a non-empty intersection with an already-enqueued edit.
	// Zero-width inserts touching a range boundary are allowed.
	ErrOverlappingEdit = errors.New("overlapping edit")
)

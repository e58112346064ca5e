package diff

import "errors"

// ErrDuplicateID indicates a batch that violates identifier uniqueness.
var ErrDuplicateID = errors.New("duplicate identifier")

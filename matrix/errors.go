package matrix

import "errors"

var (
	ErrIndexOutOfRange = errors.New("matrix: index out of range")
	ErrShapeMismatch   = errors.New("matrix: shape mismatch")
	ErrDegenerateRow   = errors.New("matrix: degenerate row")
)

package tatamigo

import "errors"

// Construction-time errors (§7 Shape mismatch / Invalid sparse data). These are
// returned by constructors that accept a validate flag; callers that trust their
// data may skip validation on the hot path.
var (
	// ErrShape is returned when a constructor's inputs contradict its declared
	// shape, e.g. a data slice or an indptr slice of the wrong length.
	ErrShape = errors.New("tatamigo: shape mismatch")

	// ErrInvalidSparseData is returned when indptr/indices fail the CSR/CSC
	// invariants: non-monotonic indptr, non-ascending indices within a primary
	// slice, or indices outside [0, secondary length).
	ErrInvalidSparseData = errors.New("tatamigo: invalid sparse data")
)

// Contract-violation panics (§4.A, §7 Out-of-range extraction). These are never
// returned as errors: an out-of-range index, a non-ascending index set, or a
// fetch past the end of a selection is a programming error in the caller.
// Exported, in the manner of gonum/matrix's ErrRowAccess/ErrColAccess, so
// every package implementing the Matrix contract panics with the same
// sentinels for out-of-range and non-ascending access. Other contract
// violations (an oracle-order mismatch, an unusable apply reducer, a negative
// oracle length) panic with plain strings.
var (
	ErrRowAccess    = errors.New("tatamigo: row index out of range")
	ErrColAccess    = errors.New("tatamigo: column index out of range")
	ErrOutOfRange   = errors.New("tatamigo: extraction index out of range")
	ErrNotAscending = errors.New("tatamigo: index set is not strictly ascending")
)

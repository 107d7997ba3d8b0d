package chunked

import "github.com/jbowman-labs/tatamigo"

// FixedOracle is an Oracle over an explicit, caller-supplied index sequence
// (§4.K).
type FixedOracle struct{ seq []int }

// NewFixedOracle wraps seq. The caller retains ownership; seq is not copied.
func NewFixedOracle(seq []int) FixedOracle { return FixedOracle{seq: seq} }

func (o FixedOracle) Total() int    { return len(o.seq) }
func (o FixedOracle) Get(i int) int { return o.seq[i] }

var _ tatamigo.Oracle = FixedOracle{}

// ConsecutiveOracle is an Oracle over a contiguous ascending run starting at
// first, of the given length (§4.K).
type ConsecutiveOracle struct {
	first, length int
}

// NewConsecutiveOracle builds a run of length starting at first. Panics if
// length is negative.
func NewConsecutiveOracle(first, length int) ConsecutiveOracle {
	if length < 0 {
		panic("chunked: negative oracle length")
	}
	return ConsecutiveOracle{first: first, length: length}
}

func (o ConsecutiveOracle) Total() int    { return o.length }
func (o ConsecutiveOracle) Get(i int) int { return o.first + i }

var _ tatamigo.Oracle = ConsecutiveOracle{}

// OracleStream serves a predicted access sequence incrementally, one
// prediction - or a run of predictions - at a time, with the ability to
// rewind by one and to be redirected mid-stream to a new Oracle (§4.K). This
// is the single point through which the custom chunked matrix and the
// oracle chunk cache consume a bound Oracle; neither needs to know whether
// the oracle is fixed, consecutive, or something else.
type OracleStream struct {
	oracle  tatamigo.Oracle
	cursor  int
	lastOut int
	havePrev bool
}

// NewOracleStream begins streaming predictions from oracle, starting at its
// first entry.
func NewOracleStream(oracle tatamigo.Oracle) *OracleStream {
	return &OracleStream{oracle: oracle}
}

// Next returns the next predicted index and reports whether one was
// available (the stream is exhausted once cursor reaches the oracle's
// total).
func (s *OracleStream) Next() (int, bool) {
	if s.cursor >= s.oracle.Total() {
		return 0, false
	}
	v := s.oracle.Get(s.cursor)
	s.cursor++
	s.lastOut = v
	s.havePrev = true
	return v, true
}

// Predict fills out (up to len(out)) with the next predictions without
// consuming more than are available, returning the number filled.
func (s *OracleStream) Predict(out []int) int {
	n := 0
	for n < len(out) {
		v, ok := s.Next()
		if !ok {
			break
		}
		out[n] = v
		n++
	}
	return n
}

// Back rewinds the stream by one position, so the most recently returned
// prediction will be reissued by the next Next/Predict call. Valid only
// immediately after a successful Next/Predict; calling it twice in a row
// without an intervening Next is a caller error (mirrors the teacher's
// "the caller is trusted" convention elsewhere in this module).
func (s *OracleStream) Back() {
	if s.havePrev {
		s.cursor--
		s.havePrev = false
	}
}

// Set redirects the stream to a new oracle starting from its beginning,
// discarding any remaining predictions from the old one.
func (s *OracleStream) Set(o tatamigo.Oracle) {
	s.oracle = o
	s.cursor = 0
	s.havePrev = false
}

// Remaining reports how many predictions are left unconsumed.
func (s *OracleStream) Remaining() int { return s.oracle.Total() - s.cursor }

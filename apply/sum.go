package apply

import "github.com/jbowman-labs/tatamigo"

// SumReducer accumulates one sum per MARGIN position, supporting both direct
// and running dispatch and both densities - a minimal concrete reducer
// exercising every path Apply can take, standing in for the statistics
// layer this traversal primitive is built to serve.
type SumReducer struct {
	sums []float64
}

// NewSumReducer allocates a reducer producing marginLen sums.
func NewSumReducer(marginLen int) *SumReducer {
	return &SumReducer{sums: make([]float64, marginLen)}
}

func (r *SumReducer) DenseDirect(i int, vals []float64) {
	var s float64
	for _, v := range vals {
		s += v
	}
	r.sums[i] = s
}

func (r *SumReducer) SparseDirect(i int, rng tatamigo.SparseRange) {
	var s float64
	for k := 0; k < rng.N; k++ {
		s += rng.Values[k]
	}
	r.sums[i] = s
}

func (r *SumReducer) DenseRunning(vals []float64) {
	for i, v := range vals {
		r.sums[i] += v
	}
}

func (r *SumReducer) SparseRunning(rng tatamigo.SparseRange) {
	for k := 0; k < rng.N; k++ {
		r.sums[rng.Indices[k]] += rng.Values[k]
	}
}

func (r *SumReducer) Finalize() interface{} { return r.sums }

package apply_test

import (
	"testing"

	"github.com/jbowman-labs/tatamigo/apply"
	"github.com/jbowman-labs/tatamigo/csparse"
	"github.com/jbowman-labs/tatamigo/dense"
)

// A (row-major, 3x4):
// 1,  2,  3,  4,
// 5,  6,  7,  8,
// 9, 10, 11, 12,
func newA() *dense.Matrix {
	return dense.New(3, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	}, true)
}

func TestApplyRowSumsDirectPath(t *testing.T) {
	// Row-major dense matrix prefers rows, so margin=Row takes the direct
	// dispatch path.
	m := newA()
	r := apply.NewSumReducer(3)
	got := apply.Apply(m, apply.Row, r).([]float64)
	want := []float64{10, 26, 42}
	for i, v := range want {
		if got[i] != v {
			t.Errorf("row sum %d = %v, want %v", i, got[i], v)
		}
	}
}

func TestApplyColumnSumsRunningPath(t *testing.T) {
	// Row-major dense matrix prefers rows, so margin=Column forces the
	// running dispatch path (iterate rows, accumulate all column sums).
	m := newA()
	r := apply.NewSumReducer(4)
	got := apply.Apply(m, apply.Column, r).([]float64)
	want := []float64{15, 18, 21, 24}
	for j, v := range want {
		if got[j] != v {
			t.Errorf("column sum %d = %v, want %v", j, got[j], v)
		}
	}
}

func TestApplySparseDirectPath(t *testing.T) {
	m, err := csparse.NewCSR(3, 4,
		[]int{0, 2, 2, 5},
		[]int{0, 3, 1, 2, 3},
		[]float64{10, 20, 30, 40, 50},
		true)
	if err != nil {
		t.Fatalf("NewCSR: %v", err)
	}
	r := apply.NewSumReducer(3)
	got := apply.Apply(m, apply.Row, r).([]float64)
	want := []float64{30, 0, 120}
	for i, v := range want {
		if got[i] != v {
			t.Errorf("row sum %d = %v, want %v", i, got[i], v)
		}
	}
}

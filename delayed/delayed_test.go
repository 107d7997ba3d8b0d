package delayed_test

import (
	"testing"

	"github.com/jbowman-labs/tatamigo"
	"github.com/jbowman-labs/tatamigo/delayed"
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

func TestSubsetRowsReorderAndDuplicate(t *testing.T) {
	m := delayed.NewSubset(newA(), true, []int{2, 0, 0})
	if r, c := m.Dims(); r != 3 || c != 4 {
		t.Fatalf("Dims() = %d,%d want 3,4", r, c)
	}
	want := [][]float64{
		{9, 10, 11, 12},
		{1, 2, 3, 4},
		{1, 2, 3, 4},
	}
	ext := m.DenseRow(tatamigo.FullSelection(4))
	for i, row := range want {
		got := ext.Fetch(i, nil)
		for j, v := range row {
			if got[j] != v {
				t.Errorf("row %d: got %v, want %v", i, got, row)
				break
			}
		}
	}
}

func TestSubsetGatherOtherAxis(t *testing.T) {
	// Subset rows to [2,0,1] (not contiguous/sorted), then fetch column 1
	// across the subset: expect [10, 2, 6].
	m := delayed.NewSubset(newA(), true, []int{2, 0, 1})
	ext := m.DenseColumn(tatamigo.FullSelection(3))
	got := ext.Fetch(1, nil)
	want := []float64{10, 2, 6}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("column 1 = %v, want %v", got, want)
			break
		}
	}
}

type fixedOracle struct{ seq []int }

func (o fixedOracle) Total() int    { return len(o.seq) }
func (o fixedOracle) Get(i int) int { return o.seq[i] }

// A gather-axis extractor must forward a bound oracle to its per-run child
// extractors, not merely record it: binding an oracle that predicts index 1
// next, then fetching index 0, should surface the child extractor's own
// oracle-mismatch panic rather than silently succeeding.
func TestSubsetGatherForwardsOracleToChildExtractors(t *testing.T) {
	m := delayed.NewSubset(newA(), true, []int{2, 0, 1})
	ext := m.DenseColumn(tatamigo.FullSelection(3))
	ext.SetOracle(fixedOracle{seq: []int{1}})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from mismatched oracle order on the gather-axis child extractor")
		}
	}()
	ext.Fetch(0, nil)
}

func TestSubsetBlockIdentity(t *testing.T) {
	a := newA()
	m := delayed.NewSubsetBlock(a, true, 0, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if m.At(i, j) != a.At(i, j) {
				t.Fatalf("SubsetBlock identity mismatch at (%d,%d)", i, j)
			}
		}
	}
}

func TestIsometricAddScalarDense(t *testing.T) {
	m := delayed.NewIsometricOp(newA(), delayed.AddScalar(100))
	ext := m.DenseRow(tatamigo.FullSelection(4))
	got := ext.Fetch(0, nil)
	want := []float64{101, 102, 103, 104}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("row 0 = %v, want %v", got, want)
			break
		}
	}
	if m.Sparse() {
		t.Error("AddScalar should not preserve sparsity")
	}
}

func TestIsometricMulScalarPreservesSparsity(t *testing.T) {
	m := delayed.NewIsometricOp(newA(), delayed.MulScalar(2))
	ext := m.DenseRow(tatamigo.FullSelection(4))
	got := ext.Fetch(1, nil)
	want := []float64{10, 12, 14, 16}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("row 1 = %v, want %v", got, want)
			break
		}
	}
	if !delayed.MulScalar(2).Sparse() {
		t.Error("MulScalar should preserve sparsity")
	}
}

func TestIsometricAddVectorByRowMatchingAxisUsesConstantPath(t *testing.T) {
	// byRow=true matches the row fetch: every value in a row adds the same
	// constant vec[row], the ApplyVector fast path.
	m := delayed.NewIsometricOp(newA(), delayed.AddVector([]float64{100, 200, 300}, true))
	ext := m.DenseRow(tatamigo.FullSelection(4))
	got := ext.Fetch(1, nil)
	want := []float64{205, 206, 207, 208}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("row 1 = %v, want %v", got, want)
			break
		}
	}
}

func TestIsometricAddVectorByColumnMismatchedAxisGathers(t *testing.T) {
	// byRow=false while fetching a row: each column adds a different
	// vec[col], the ApplyVector gather-then-combine path.
	m := delayed.NewIsometricOp(newA(), delayed.AddVector([]float64{100, 200, 300, 400}, false))
	ext := m.DenseRow(tatamigo.FullSelection(4))
	got := ext.Fetch(0, nil)
	want := []float64{101, 202, 303, 404}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("row 0 = %v, want %v", got, want)
			break
		}
	}
}

func TestIsometricDivScalarReversed(t *testing.T) {
	m := delayed.NewIsometricOp(newA(), delayed.DivScalar(100, true))
	ext := m.DenseRow(tatamigo.FullSelection(4))
	got := ext.Fetch(0, nil)
	want := []float64{100, 50, 100.0 / 3.0, 25}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("row 0 = %v, want %v", got, want)
			break
		}
	}
}

func TestIsometricSubVectorByColumnReversedMismatchedAxis(t *testing.T) {
	m := delayed.NewIsometricOp(newA(), delayed.SubVector([]float64{10, 20, 30, 40}, false, true))
	ext := m.DenseRow(tatamigo.FullSelection(4))
	got := ext.Fetch(0, nil)
	// reversed: vec[col] - v
	want := []float64{9, 18, 27, 36}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("row 0 = %v, want %v", got, want)
			break
		}
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	a := newA()
	tt := delayed.NewTranspose(a)
	back := tt.T()
	bm, ok := back.(tatamigo.Matrix)
	if !ok {
		t.Fatalf("T().T() does not implement tatamigo.Matrix")
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if a.At(i, j) != bm.At(i, j) {
				t.Fatalf("transpose round trip mismatch at (%d,%d)", i, j)
			}
		}
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			if tt.At(i, j) != a.At(j, i) {
				t.Errorf("Transpose.At(%d,%d) = %v, want %v", i, j, tt.At(i, j), a.At(j, i))
			}
		}
	}
}

func TestBindRowsLocatesChild(t *testing.T) {
	top := dense.New(2, 4, []float64{1, 2, 3, 4, 5, 6, 7, 8}, true)
	bottom := dense.New(1, 4, []float64{9, 10, 11, 12}, true)
	m := delayed.NewBind([]tatamigo.Matrix{top, bottom}, true)

	if r, c := m.Dims(); r != 3 || c != 4 {
		t.Fatalf("Dims() = %d,%d want 3,4", r, c)
	}
	if m.At(2, 0) != 9 {
		t.Errorf("At(2,0) = %v, want 9", m.At(2, 0))
	}
	if m.At(0, 3) != 4 {
		t.Errorf("At(0,3) = %v, want 4", m.At(0, 3))
	}
}

func TestBindGatherOtherAxis(t *testing.T) {
	top := dense.New(2, 2, []float64{1, 2, 3, 4}, true)
	bottom := dense.New(1, 2, []float64{5, 6}, true)
	m := delayed.NewBind([]tatamigo.Matrix{top, bottom}, true)

	ext := m.DenseColumn(tatamigo.FullSelection(3))
	got := ext.Fetch(1, nil)
	want := []float64{2, 4, 6}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("column 1 = %v, want %v", got, want)
			break
		}
	}
}

func TestCastAlwaysCopies(t *testing.T) {
	a := newA()
	c := delayed.NewCast(a, nil)
	ext := c.DenseRow(tatamigo.FullSelection(4))
	buf := make([]float64, 4)
	got := ext.Fetch(0, buf)
	if &got[0] == &a.DenseRow(tatamigo.FullSelection(4)).Fetch(0, nil)[0] {
		t.Error("Cast must not return the child's own backing pointer")
	}
	want := []float64{1, 2, 3, 4}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("row 0 = %v, want %v", got, want)
			break
		}
	}
}

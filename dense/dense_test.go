package dense_test

import (
	"testing"

	"github.com/jbowman-labs/tatamigo"
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

func TestDimsAndAt(t *testing.T) {
	m := newA()
	r, c := m.Dims()
	if r != 3 || c != 4 {
		t.Fatalf("Dims() = %d, %d, want 3, 4", r, c)
	}
	if got := m.At(1, 2); got != 7 {
		t.Errorf("At(1, 2) = %v, want 7", got)
	}
}

func TestDenseRowFull(t *testing.T) {
	m := newA()
	ext := m.DenseRow(tatamigo.FullSelection(4))

	got := ext.Fetch(1, nil)
	want := []float64{5, 6, 7, 8}
	if !floatsEqual(got, want) {
		t.Errorf("row 1 full = %v, want %v", got, want)
	}
}

func TestDenseColumnBlock(t *testing.T) {
	m := newA()
	ext := m.DenseColumn(tatamigo.BlockSelection(0, 2))

	got := ext.Fetch(2, nil)
	want := []float64{3, 7}
	if !floatsEqual(got, want) {
		t.Errorf("column 2 block [0,2) = %v, want %v", got, want)
	}
}

func TestSparseColumnFull(t *testing.T) {
	m := newA()
	ext := m.SparseRow(tatamigo.FullSelection(4))
	_ = ext // sanity: constructible

	sext := m.SparseColumn(tatamigo.FullSelection(3))
	r := sext.FetchSparse(0, nil, nil)
	if r.N != 3 {
		t.Fatalf("N = %d, want 3", r.N)
	}
	if !floatsEqual(r.Values, []float64{1, 5, 9}) {
		t.Errorf("values = %v, want [1 5 9]", r.Values)
	}
	if !intsEqual(r.Indices, []int{0, 1, 2}) {
		t.Errorf("indices = %v, want [0 1 2]", r.Indices)
	}
}

func TestTransposeSharesStorage(t *testing.T) {
	m := newA()
	tr := m.T()

	trm, ok := tr.(tatamigo.Matrix)
	if !ok {
		t.Fatalf("T() does not implement tatamigo.Matrix")
	}
	r, c := trm.Dims()
	if r != 4 || c != 3 {
		t.Fatalf("transpose Dims() = %d, %d, want 4, 3", r, c)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if m.At(i, j) != trm.At(j, i) {
				t.Errorf("At(%d,%d) = %v, transpose At(%d,%d) = %v", i, j, m.At(i, j), j, i, trm.At(j, i))
			}
		}
	}
}

func TestDenseRowOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out of range row")
		}
	}()
	m := newA()
	ext := m.DenseRow(tatamigo.FullSelection(4))
	ext.Fetch(99, nil)
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

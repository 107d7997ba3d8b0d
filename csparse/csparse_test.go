package csparse_test

import (
	"testing"

	"github.com/jbowman-labs/tatamigo"
	"github.com/jbowman-labs/tatamigo/csparse"
)

// B (CSR, 3x4):
// row 0: col 0 = 10, col 3 = 20
// row 1: (empty)
// row 2: col 1 = 30, col 2 = 40, col 3 = 50
func newB(t *testing.T) *csparse.CSR {
	t.Helper()
	m, err := csparse.NewCSR(3, 4,
		[]int{0, 2, 2, 5},
		[]int{0, 3, 1, 2, 3},
		[]float64{10, 20, 30, 40, 50},
		true)
	if err != nil {
		t.Fatalf("NewCSR: %v", err)
	}
	return m
}

func TestCSRAt(t *testing.T) {
	m := newB(t)
	cases := []struct {
		i, j int
		want float64
	}{
		{0, 0, 10}, {0, 3, 20}, {0, 1, 0},
		{1, 0, 0},
		{2, 1, 30}, {2, 2, 40}, {2, 3, 50},
	}
	for _, c := range cases {
		if got := m.At(c.i, c.j); got != c.want {
			t.Errorf("At(%d,%d) = %v, want %v", c.i, c.j, got, c.want)
		}
	}
}

func TestCSRSparseRowFull(t *testing.T) {
	m := newB(t)
	ext := m.SparseRow(tatamigo.FullSelection(4))

	r := ext.FetchSparse(0, nil, nil)
	if r.N != 2 {
		t.Fatalf("N = %d, want 2", r.N)
	}
	if r.Values[0] != 10 || r.Values[1] != 20 {
		t.Errorf("values = %v, want [10 20]", r.Values)
	}
	if r.Indices[0] != 0 || r.Indices[1] != 3 {
		t.Errorf("indices = %v, want [0 3]", r.Indices)
	}

	empty := ext.FetchSparse(1, nil, nil)
	if empty.N != 0 {
		t.Errorf("row 1 N = %d, want 0", empty.N)
	}
}

func TestCSRSparseColumnWorkspace(t *testing.T) {
	m := newB(t)
	ext := m.SparseColumn(tatamigo.FullSelection(3))

	r := ext.FetchSparse(3, nil, nil)
	if r.N != 2 {
		t.Fatalf("N = %d, want 2", r.N)
	}
	if r.Values[0] != 20 || r.Values[1] != 50 {
		t.Errorf("values = %v, want [20 50]", r.Values)
	}
	if r.Indices[0] != 0 || r.Indices[1] != 2 {
		t.Errorf("indices = %v, want [0 2] (local row positions)", r.Indices)
	}

	// Retreat-by-one path (column 3, then column 2).
	r2 := ext.FetchSparse(2, nil, nil)
	if r2.N != 1 || r2.Values[0] != 40 || r2.Indices[0] != 2 {
		t.Errorf("column 2 = %+v, want single 40 at local row 2", r2)
	}
}

func TestCSRDenseColumnBlock(t *testing.T) {
	m := newB(t)
	ext := m.DenseColumn(tatamigo.BlockSelection(0, 3))

	got := ext.Fetch(3, nil)
	want := []float64{20, 0, 50}
	if len(got) != len(want) {
		t.Fatalf("Fetch(3) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fetch(3)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCSRTransposeSharesStorage(t *testing.T) {
	m := newB(t)
	tr := m.T()
	trm, ok := tr.(tatamigo.Matrix)
	if !ok {
		t.Fatalf("T() does not implement tatamigo.Matrix")
	}
	if _, ok := tr.(*csparse.CSC); !ok {
		t.Fatalf("T() = %T, want *csparse.CSC", tr)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if m.At(i, j) != trm.At(j, i) {
				t.Errorf("At(%d,%d) = %v, transpose At(%d,%d) = %v", i, j, m.At(i, j), j, i, trm.At(j, i))
			}
		}
	}
}

func TestNewCSRRejectsUnsortedIndices(t *testing.T) {
	_, err := csparse.NewCSR(1, 4, []int{0, 2}, []int{3, 1}, []float64{1, 2}, true)
	if err == nil {
		t.Fatal("expected error for non-ascending indices")
	}
}

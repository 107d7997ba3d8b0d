package csparse_test

import (
	"testing"

	"github.com/jbowman-labs/tatamigo/csparse"
)

// Same matrix as newB in csparse_test.go, built incrementally instead of
// from pre-sorted CSR slices, plus a duplicate coordinate at (2,3) that
// ToCSR/ToCSC must sum.
func TestCOOToCSRSumsDuplicatesAndMatchesDirectCSR(t *testing.T) {
	c := csparse.NewCOO(3, 4)
	c.Add(0, 3, 20)
	c.Add(2, 1, 30)
	c.Add(0, 0, 10)
	c.Add(2, 3, 20)
	c.Add(2, 2, 40)
	c.Add(2, 3, 30) // duplicate: (2,3) should end up 50

	m := c.ToCSR()
	cases := []struct {
		i, j int
		want float64
	}{
		{0, 0, 10}, {0, 3, 20}, {0, 1, 0},
		{1, 0, 0},
		{2, 1, 30}, {2, 2, 40}, {2, 3, 50},
	}
	for _, tc := range cases {
		if got := m.At(tc.i, tc.j); got != tc.want {
			t.Errorf("At(%d,%d) = %v, want %v", tc.i, tc.j, got, tc.want)
		}
	}
}

func TestCOOToCSCMatchesToCSR(t *testing.T) {
	c := csparse.NewCOO(3, 4)
	c.Add(0, 3, 20)
	c.Add(2, 1, 30)
	c.Add(0, 0, 10)
	c.Add(2, 3, 50)
	c.Add(2, 2, 40)

	csr := c.ToCSR()
	csc := c.ToCSC()
	nrow, ncol := csr.Dims()
	for i := 0; i < nrow; i++ {
		for j := 0; j < ncol; j++ {
			if csr.At(i, j) != csc.At(i, j) {
				t.Errorf("At(%d,%d): CSR=%v, CSC=%v", i, j, csr.At(i, j), csc.At(i, j))
			}
		}
	}
}

func TestCOOAddOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range Add")
		}
	}()
	c := csparse.NewCOO(2, 2)
	c.Add(2, 0, 1)
}

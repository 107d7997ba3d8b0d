// Package csparse implements Component E: compressed sparse row/column
// storage, grounded on the teacher's compressedSparse/CSR/CSC types
// (compressed.go) - values[], indices[] and indptr[] slices shared between a
// CSR and CSC "orientation", exactly as the teacher's CSR.T() returns a CSC
// sharing the same three slices. Primary-axis access matches storage order
// and needs only a bounds lookup; secondary-axis access is workspace
// accelerated (§4.E, §3 Workspace).
package csparse

import (
	"fmt"

	"github.com/jbowman-labs/tatamigo"
)

// core is the storage shared by CSR and CSC: primaryLen slices along the
// storage-order axis, each holding an ascending run of secondary-axis
// indices in [0, secondaryLen).
type core struct {
	primaryLen, secondaryLen int
	indptr                   []int
	indices                  []int
	data                     []float64
}

// NNZ returns the number of stored non-zero elements.
func (c *core) NNZ() int { return len(c.data) }

func newCore(primaryLen, secondaryLen int, indptr, indices []int, data []float64, validate bool) (*core, error) {
	if primaryLen < 0 || secondaryLen < 0 {
		return nil, fmt.Errorf("csparse: %w: negative dimension", tatamigo.ErrShape)
	}
	if len(indptr) != primaryLen+1 {
		return nil, fmt.Errorf("csparse: %w: indptr has length %d, want %d", tatamigo.ErrShape, len(indptr), primaryLen+1)
	}
	if len(indices) != len(data) {
		return nil, fmt.Errorf("csparse: %w: indices has length %d, data has length %d", tatamigo.ErrShape, len(indices), len(data))
	}

	c := &core{primaryLen: primaryLen, secondaryLen: secondaryLen, indptr: indptr, indices: indices, data: data}
	if validate {
		if err := c.validate(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// validate checks the CSR/CSC invariants from §4.E and §7: indptr is
// non-decreasing starting at 0 and ending at len(indices); within each
// primary slice, indices are strictly ascending and lie in
// [0, secondaryLen).
func (c *core) validate() error {
	if c.indptr[0] != 0 {
		return fmt.Errorf("csparse: %w: indptr[0] = %d, want 0", tatamigo.ErrInvalidSparseData, c.indptr[0])
	}
	if c.indptr[c.primaryLen] != len(c.indices) {
		return fmt.Errorf("csparse: %w: indptr[%d] = %d, want %d", tatamigo.ErrInvalidSparseData, c.primaryLen, c.indptr[c.primaryLen], len(c.indices))
	}
	for p := 0; p < c.primaryLen; p++ {
		lo, hi := c.indptr[p], c.indptr[p+1]
		if hi < lo {
			return fmt.Errorf("csparse: %w: indptr is not monotonic at slice %d", tatamigo.ErrInvalidSparseData, p)
		}
		prev := -1
		for k := lo; k < hi; k++ {
			idx := c.indices[k]
			if idx <= prev {
				return fmt.Errorf("csparse: %w: indices not strictly ascending within slice %d", tatamigo.ErrInvalidSparseData, p)
			}
			if idx < 0 || idx >= c.secondaryLen {
				return fmt.Errorf("csparse: %w: index %d out of range [0,%d) in slice %d", tatamigo.ErrInvalidSparseData, idx, c.secondaryLen, p)
			}
			prev = idx
		}
	}
	return nil
}

// at returns the element at primary slice p, secondary position s.
func (c *core) at(p, s int) float64 {
	lo, hi := c.indptr[p], c.indptr[p+1]
	for k := lo; k < hi; k++ {
		if c.indices[k] == s {
			return c.data[k]
		}
		if c.indices[k] > s {
			break
		}
	}
	return 0
}

// sliceLen returns the number of non-zero elements in primary slice p.
func (c *core) sliceLen(p int) int { return c.indptr[p+1] - c.indptr[p] }

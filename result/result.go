// Package result defines the sparse distance matrix output type and the
// collector that filters verified candidates down to true neighbors
// (spec 4.8).
package result

// Matrix is a sparse (row, col, dist) distance matrix: three parallel
// arrays of equal length, sorted ascending lexicographically by
// (Row, Col). Within-mode callers are guaranteed Row[i] < Col[i] for every
// i; cross-mode callers index Row/Col into their respective collections
// independently.
type Matrix struct {
	Row  []uint32
	Col  []uint32
	Dist []uint8
}

// Len returns the number of entries in the matrix.
func (m *Matrix) Len() int {
	return len(m.Row)
}

// Collect walks the parallel candidate/dist arrays (already sorted
// ascending by candidate) and copies every entry whose distance is within
// maxDistance into a freshly shrunk-to-fit Matrix, preserving order.
func Collect(rows, cols []uint32, dists []uint8, maxDistance uint8) *Matrix {
	n := len(dists)
	row := make([]uint32, 0, n)
	col := make([]uint32, 0, n)
	dist := make([]uint8, 0, n)
	for i := 0; i < n; i++ {
		if dists[i] > maxDistance {
			continue
		}
		row = append(row, rows[i])
		col = append(col, cols[i])
		dist = append(dist, dists[i])
	}
	return &Matrix{Row: row, Col: col, Dist: dist}
}

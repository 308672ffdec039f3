// Package editdist implements the bounded-cost Levenshtein verifier: the
// final, authoritative check applied to every candidate pair surfaced by
// convergence-group expansion (spec 4.7).
package editdist

// Sentinel is returned for a pair whose distance exceeds the requested
// cutoff. It is never a genuine distance because max-distance is capped at
// arith.MaxK (254).
const Sentinel uint8 = 255

// Distance computes the Levenshtein distance between a and b, aborting
// early and returning Sentinel as soon as the distance is certain to exceed
// maxDistance. Uses a diagonal band of width 2*maxDistance+1 around the
// main diagonal (Ukkonen's algorithm), giving O(maxDistance * min(len(a),
// len(b))) time instead of the naive O(len(a) * len(b)).
func Distance(a, b []byte, maxDistance uint8) uint8 {
	la, lb := len(a), len(b)
	if absDiff(la, lb) > int(maxDistance) {
		return Sentinel
	}
	k := int(maxDistance)
	// The band is addressed by offset d = j - i, d in [-k, k]; swapping so
	// a is the shorter string makes the row loop run over the shorter
	// string and puts the final cell at the non-negative offset lb-la,
	// without changing the distance.
	if la > lb {
		a, b = b, a
		la, lb = lb, la
	}

	width := 2*k + 1
	big := k + 1 // stands in for "larger than the cutoff"

	prev := make([]int, width)
	curr := make([]int, width)

	// Row i=0: dp[0][j] = j for j in [0, lb].
	for o := 0; o < width; o++ {
		d := o - k
		j := d
		if j < 0 || j > lb {
			prev[o] = big
		} else {
			prev[o] = j
		}
	}

	for i := 1; i <= la; i++ {
		rowMin := big
		for o := 0; o < width; o++ {
			d := o - k
			j := i + d
			if j < 0 || j > lb {
				curr[o] = big
				continue
			}
			if j == 0 {
				curr[o] = i
				if curr[o] < rowMin {
					rowMin = curr[o]
				}
				continue
			}

			diag := prev[o]
			if a[i-1] != b[j-1] {
				diag++
			}

			del := big // dp[i-1][j]: a loses a char
			if o+1 < width {
				del = prev[o+1] + 1
			}

			ins := big // dp[i][j-1]: b loses a char
			if o > 0 {
				ins = curr[o-1] + 1
			}

			v := diag
			if del < v {
				v = del
			}
			if ins < v {
				v = ins
			}
			if v > big {
				v = big
			}
			curr[o] = v
			if v < rowMin {
				rowMin = v
			}
		}
		if rowMin > k {
			return Sentinel
		}
		prev, curr = curr, prev
	}

	ansOffset := (lb - la) + k
	result := prev[ansOffset]
	if result > k {
		return Sentinel
	}
	return uint8(result)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

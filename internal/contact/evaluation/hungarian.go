package evaluation

import "math"

// forbidden marks a cost matrix entry the solver must never select.
const forbidden = 1e18

// assign solves the rectangular assignment problem for an n×m cost matrix
// with the Kuhn–Munkres algorithm (Jonker–Volgenant potentials). It returns
// rowCol[i] = column assigned to row i, or -1 when row i is unassigned.
// Entries >= forbidden are never assigned.
//
// Forbidden and padding cells are solved with a penalty just above the sum
// of all allowed costs, so the solver maximises the number of allowed
// assignments first and minimises their total cost second, and the
// potentials stay small enough to keep sub-millisecond costs distinct.
func assign(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])
	rowCol := make([]int, n)
	for i := range rowCol {
		rowCol[i] = -1
	}
	if m == 0 {
		return rowCol
	}

	maxAllowed := 0.0
	for _, row := range cost {
		for _, v := range row {
			if v < forbidden {
				maxAllowed = math.Max(maxAllowed, v)
			}
		}
	}
	dim := max(n, m)
	penalty := (maxAllowed + 1) * float64(dim+1)

	c := make([][]float64, dim)
	for i := range c {
		c[i] = make([]float64, dim)
		for j := range c[i] {
			if i < n && j < m && cost[i][j] < forbidden {
				c[i][j] = cost[i][j]
			} else {
				c[i][j] = penalty
			}
		}
	}

	// 1-indexed; column 0 is virtual.
	const inf = math.MaxFloat64 / 2
	u := make([]float64, dim+1)
	v := make([]float64, dim+1)
	p := make([]int, dim+1) // p[j] = row assigned to column j
	way := make([]int, dim+1)
	minv := make([]float64, dim+1)
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		p[0] = i
		j0 := 0
		for j := 1; j <= dim; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				if cur := c[i0-1][j-1] - u[i0] - v[j]; cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			if j1 < 0 {
				break
			}
			for j := 0; j <= dim; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	for j := 1; j <= dim; j++ {
		row, col := p[j]-1, j-1
		if row < 0 || row >= n || col >= m || cost[row][col] >= forbidden {
			continue
		}
		rowCol[row] = col
	}
	return rowCol
}

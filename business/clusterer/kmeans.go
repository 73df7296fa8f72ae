package clusterer

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

const (
	kmeansSeed    = 42
	kmeansMaxIter = 300
)

// runKMeans partitions the rows of data into k clusters by Lloyd's
// algorithm. Initial centroids are k distinct rows drawn with a fixed seed
// so repeated runs over the same matrix give identical assignments.
func runKMeans(data *mat.Dense, k int) []int {
	rows, cols := data.Dims()
	rng := rand.New(rand.NewSource(kmeansSeed))

	centroids := make([][]float64, k)
	for i, rowIdx := range rng.Perm(rows)[:k] {
		centroids[i] = make([]float64, cols)
		mat.Row(centroids[i], rowIdx, data)
	}

	labels := make([]int, rows)
	for i := range labels {
		labels[i] = -1
	}

	row := make([]float64, cols)
	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false

		for i := 0; i < rows; i++ {
			mat.Row(row, i, data)
			best, bestDist := 0, math.Inf(1)
			for c := 0; c < k; c++ {
				d := sqDist(row, centroids[c])
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		// recompute centroids; a cluster left empty keeps its old centroid
		counts := make([]int, k)
		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, cols)
		}
		for i := 0; i < rows; i++ {
			c := labels[i]
			counts[c]++
			for j := 0; j < cols; j++ {
				sums[c][j] += data.At(i, j)
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}

	return labels
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

package recommender

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"myMovieLab/domain"
)

// latentFactorModel holds the rank-k truncated SVD of the demeaned matrix:
// userFactors (m x k), sigma (k singular values) and itemFactors (k x n),
// plus the per-user means to add back at prediction time.
type latentFactorModel struct {
	k           int
	userMeans   []float64
	userFactors *mat.Dense
	sigma       []float64
	itemFactors *mat.Dense
}

// trainSVD demeans each row by its mean over all columns, zero fill
// included, and keeps the k largest singular triplets. Sparse users get a
// low mean from the zeros; the trained model depends on that.
func trainSVD(data *mat.Dense, k int) (*latentFactorModel, error) {
	rows, cols := data.Dims()

	userMeans := make([]float64, rows)
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum += data.At(i, j)
		}
		userMeans[i] = sum / float64(cols)
	}

	demeaned := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			demeaned.Set(i, j, data.At(i, j)-userMeans[i])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(demeaned, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: SVD did not converge", domain.ErrModelTraining)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	// gonum orders singular values descending; truncate to the first k
	userFactors := mat.NewDense(rows, k, nil)
	for i := 0; i < rows; i++ {
		for f := 0; f < k; f++ {
			userFactors.Set(i, f, u.At(i, f))
		}
	}

	itemFactors := mat.NewDense(k, cols, nil)
	for f := 0; f < k; f++ {
		for j := 0; j < cols; j++ {
			itemFactors.Set(f, j, v.At(j, f))
		}
	}

	return &latentFactorModel{
		k:           k,
		userMeans:   userMeans,
		userFactors: userFactors,
		sigma:       values[:k],
		itemFactors: itemFactors,
	}, nil
}

// predictRow reconstructs the full predicted rating vector for one matrix
// row: U[row] * diag(sigma) * Vt + mean[row].
func (m *latentFactorModel) predictRow(row int) []float64 {
	_, cols := m.itemFactors.Dims()

	out := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for f := 0; f < m.k; f++ {
			sum += m.userFactors.At(row, f) * m.sigma[f] * m.itemFactors.At(f, j)
		}
		out[j] = sum + m.userMeans[row]
	}
	return out
}

package clusterer

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"myMovieLab/business/matrix"
	"myMovieLab/domain"
	"myMovieLab/pkg/logger"
)

const topOccupations = 5

// Engine partitions users into k groups by their standardized rating
// behavior and derives demographic and genre-preference profiles per group.
// ClusterUsers must run before AnalyzeClusters.
type Engine struct {
	matrix     *matrix.UserItemMatrix
	ratings    []domain.Rating
	movies     map[int]domain.Movie
	users      []domain.User
	genreNames []string
	k          int

	labels      []int
	userCluster map[int]int
}

// NewEngine builds the engine's own copy of the user x movie matrix.
// k must satisfy 1 <= k <= #users.
func NewEngine(ratings []domain.Rating, movies []domain.Movie, users []domain.User, genreNames []string, k int) (*Engine, error) {
	m, err := matrix.Build(ratings)
	if err != nil {
		return nil, err
	}

	if k < 1 || k > m.NumUsers() {
		return nil, fmt.Errorf("%w: cluster count %d outside [1, %d]", domain.ErrModelTraining, k, m.NumUsers())
	}

	movieIdx := make(map[int]domain.Movie, len(movies))
	for _, mv := range movies {
		movieIdx[mv.ID] = mv
	}

	return &Engine{
		matrix:     m,
		ratings:    ratings,
		movies:     movieIdx,
		users:      users,
		genreNames: genreNames,
		k:          k,
	}, nil
}

func (e *Engine) NumClusters() int {
	return e.k
}

// Assignment returns the user id to cluster label mapping. Nil before
// ClusterUsers has run.
func (e *Engine) Assignment() map[int]int {
	return e.userCluster
}

// ClusterUsers standardizes every movie column to zero mean and unit
// variance across users, then runs seeded k-means over the rows. The
// resulting assignment replaces any previous one wholesale.
func (e *Engine) ClusterUsers(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	standardized, ok := standardizeColumns(e.matrix.Data)
	if !ok {
		return nil, fmt.Errorf("%w: ratings matrix is all zero", domain.ErrModelTraining)
	}

	labels := runKMeans(standardized, e.k)

	userCluster := make(map[int]int, len(labels))
	for row, label := range labels {
		userCluster[e.matrix.UserIDs[row]] = label
	}

	e.labels = labels
	e.userCluster = userCluster

	logger.Debug("cluster_users",
		"trace_id", logger.TraceIDFromContext(ctx),
		"users", len(labels),
		"clusters", e.k,
	)

	return labels, nil
}

// AnalyzeClusters computes one demographic profile and one genre profile
// per cluster label, aligned by index. Empty groups yield absent
// statistics, never errors.
func (e *Engine) AnalyzeClusters(ctx context.Context) ([]domain.ClusterDemographics, []domain.ClusterGenres, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context error: %w", err)
	}
	if e.labels == nil {
		return nil, nil, fmt.Errorf("%w: run ClusterUsers first", domain.ErrNotClustered)
	}

	demographics := e.demographicSummary()
	genres := e.genreSummary()

	return demographics, genres, nil
}

func (e *Engine) demographicSummary() []domain.ClusterDemographics {
	byCluster := make([][]domain.User, e.k)
	for _, u := range e.users {
		if c, ok := e.userCluster[u.ID]; ok {
			byCluster[c] = append(byCluster[c], u)
		}
	}

	out := make([]domain.ClusterDemographics, 0, e.k)
	for c := 0; c < e.k; c++ {
		members := byCluster[c]

		ages := make([]float64, len(members))
		for i, u := range members {
			ages[i] = float64(u.Age)
		}

		genderDist := make(map[string]float64)
		occCounts := make(map[string]int)
		for _, u := range members {
			genderDist[u.Gender]++
			occCounts[u.Occupation]++
		}
		for g := range genderDist {
			genderDist[g] /= float64(len(members))
		}

		out = append(out, domain.ClusterDemographics{
			Cluster:        c,
			NumUsers:       len(members),
			AgeMean:        domain.CleanFloat(stat.Mean(ages, nil)),
			AgeStd:         domain.CleanFloat(stat.StdDev(ages, nil)),
			GenderDist:     genderDist,
			TopOccupations: topOccupationShares(occCounts, len(members)),
		})
	}
	return out
}

// topOccupationShares ranks occupations by share descending, name
// ascending on ties, and keeps at most the top five.
func topOccupationShares(counts map[string]int, total int) []domain.OccupationShare {
	shares := make([]domain.OccupationShare, 0, len(counts))
	for name, n := range counts {
		shares = append(shares, domain.OccupationShare{
			Name:  name,
			Share: float64(n) / float64(total),
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Share != shares[j].Share {
			return shares[i].Share > shares[j].Share
		}
		return shares[i].Name < shares[j].Name
	})

	if len(shares) > topOccupations {
		shares = shares[:topOccupations]
	}
	return shares
}

// genreSummary averages, per cluster and genre, every rating whose user
// sits in the cluster and whose movie carries the genre flag. A cluster
// with no ratings for a genre gets nil, not zero.
func (e *Engine) genreSummary() []domain.ClusterGenres {
	numGenres := len(e.genreNames)
	sums := make([][]float64, e.k)
	counts := make([][]int, e.k)
	for c := 0; c < e.k; c++ {
		sums[c] = make([]float64, numGenres)
		counts[c] = make([]int, numGenres)
	}

	for _, r := range e.ratings {
		c, ok := e.userCluster[r.UserID]
		if !ok {
			continue
		}
		mv, ok := e.movies[r.MovieID]
		if !ok {
			continue
		}
		for gi, flag := range mv.GenreFlags {
			if flag != 1 || gi >= numGenres {
				continue
			}
			sums[c][gi] += r.Score
			counts[c][gi]++
		}
	}

	out := make([]domain.ClusterGenres, 0, e.k)
	for c := 0; c < e.k; c++ {
		means := make(map[string]*float64, numGenres)
		for gi, name := range e.genreNames {
			if counts[c][gi] == 0 {
				means[name] = nil
				continue
			}
			mean := sums[c][gi] / float64(counts[c][gi])
			means[name] = &mean
		}
		out = append(out, domain.ClusterGenres{
			Cluster:    c,
			GenreMeans: means,
			GenreOrder: e.genreNames,
		})
	}
	return out
}

// standardizeColumns returns a copy of data with every column scaled to
// zero mean and unit variance. Constant columns standardize to zero. The
// second return is false when the matrix holds no nonzero cell at all.
func standardizeColumns(data *mat.Dense) (*mat.Dense, bool) {
	rows, cols := data.Dims()

	anyNonZero := false
	out := mat.NewDense(rows, cols, nil)
	col := make([]float64, rows)

	for j := 0; j < cols; j++ {
		mat.Col(col, j, data)

		mean := stat.Mean(col, nil)
		std := math.Sqrt(stat.PopVariance(col, nil))

		for i := 0; i < rows; i++ {
			if col[i] != 0 {
				anyNonZero = true
			}
			if std == 0 {
				out.Set(i, j, 0)
				continue
			}
			out.Set(i, j, (col[i]-mean)/std)
		}
	}

	return out, anyNonZero
}

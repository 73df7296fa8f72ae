package recommender

import (
	"context"
	"fmt"
	"sort"

	"myMovieLab/business/matrix"
	"myMovieLab/domain"
	"myMovieLab/pkg/logger"
)

const defaultTopN = 10

// Engine predicts unseen ratings from a rank-k latent factor model of the
// user x movie matrix. All state is computed once in NewEngine and never
// mutated, so Recommend is safe for concurrent callers.
type Engine struct {
	matrix     *matrix.UserItemMatrix
	movies     map[int]domain.Movie
	genreNames []string

	// movies each user has a rating row for, regardless of score
	rated map[int]map[int]struct{}

	model *latentFactorModel
}

// NewEngine builds the matrix, demeans it row-wise and factorizes it.
// k must satisfy 1 <= k <= min(#users, #movies) - 1.
func NewEngine(ratings []domain.Rating, movies []domain.Movie, genreNames []string, k int) (*Engine, error) {
	m, err := matrix.Build(ratings)
	if err != nil {
		return nil, err
	}

	maxRank := m.NumUsers()
	if m.NumMovies() < maxRank {
		maxRank = m.NumMovies()
	}
	maxRank--

	if k < 1 || k > maxRank {
		return nil, fmt.Errorf("%w: rank %d outside [1, %d]", domain.ErrModelTraining, k, maxRank)
	}

	model, err := trainSVD(m.Data, k)
	if err != nil {
		return nil, err
	}

	rated := make(map[int]map[int]struct{})
	for _, r := range ratings {
		seen, ok := rated[r.UserID]
		if !ok {
			seen = make(map[int]struct{})
			rated[r.UserID] = seen
		}
		seen[r.MovieID] = struct{}{}
	}

	movieIdx := make(map[int]domain.Movie, len(movies))
	for _, mv := range movies {
		movieIdx[mv.ID] = mv
	}

	return &Engine{
		matrix:     m,
		movies:     movieIdx,
		genreNames: genreNames,
		rated:      rated,
		model:      model,
	}, nil
}

// Rank returns the factorization rank the engine was trained with.
func (e *Engine) Rank() int {
	return e.model.k
}

// Recommend returns up to n unrated movies for the user, ranked by
// predicted rating descending, ties broken by ascending movie id. Fewer
// than n remaining unrated movies is a short result, not an error.
func (e *Engine) Recommend(ctx context.Context, userID, n int) ([]domain.MovieRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if n <= 0 {
		n = defaultTopN
	}

	row, ok := e.matrix.Row(userID)
	if !ok {
		return nil, fmt.Errorf("%w: user %d not in ratings matrix", domain.ErrUnknownUser, userID)
	}

	predicted := e.model.predictRow(row)

	seen := e.rated[userID]

	type scoredMovie struct {
		col   int
		score float64
	}
	candidates := make([]scoredMovie, 0, len(predicted))
	for col, score := range predicted {
		movieID := e.matrix.MovieIDs[col]
		if _, rated := seen[movieID]; rated {
			continue
		}
		candidates = append(candidates, scoredMovie{col: col, score: score})
	}

	// candidates follow the ascending movie-id column order, so a stable
	// sort on score alone keeps ties ordered by movie id
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	logger.Debug("recommend",
		"trace_id", logger.TraceIDFromContext(ctx),
		"user_id", userID,
		"n", n,
		"candidates", len(candidates),
	)

	out := make([]domain.MovieRecommendation, 0, n)
	for _, c := range candidates {
		movieID := e.matrix.MovieIDs[c.col]
		info, ok := e.movies[movieID]
		if !ok {
			continue
		}
		out = append(out, domain.MovieRecommendation{
			MovieID: movieID,
			Title:   info.Title,
			Genres:  info.Genres(e.genreNames),
		})
		if len(out) >= n {
			break
		}
	}

	return out, nil
}

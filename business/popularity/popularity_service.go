package popularity

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"myMovieLab/domain"
)

const (
	SortByRatingCount   = "rating_count"
	SortByAvgRating     = "avg_rating"
	SortByWeightedScore = "weighted_score"

	defaultLimit      = 20
	defaultMinRatings = 10
)

// Query selects how popular movies are ranked.
type Query struct {
	SortBy     string
	Limit      int
	MinRatings int
}

// movieStats is the per-movie aggregate before the metadata join.
type movieStats struct {
	movieID       int
	count         int
	mean          float64
	std           float64
	weightedScore float64
}

// Service ranks movies by aggregate rating statistics. State is read-only
// after construction.
type Service struct {
	ratings    []domain.Rating
	movies     map[int]domain.Movie
	genreNames []string
	globalMean float64
}

func NewService(ratings []domain.Rating, movies []domain.Movie, genreNames []string) *Service {
	movieIdx := make(map[int]domain.Movie, len(movies))
	for _, m := range movies {
		movieIdx[m.ID] = m
	}

	scores := make([]float64, len(ratings))
	for i, r := range ratings {
		scores[i] = r.Score
	}

	return &Service{
		ratings:    ratings,
		movies:     movieIdx,
		genreNames: genreNames,
		globalMean: stat.Mean(scores, nil),
	}
}

// PopularMovies aggregates count/mean/std per movie, drops movies with
// fewer than MinRatings ratings, scores the rest with a Bayesian weighted
// average pulled toward the global mean, and returns the top Limit entries
// joined with movie metadata.
func (s *Service) PopularMovies(ctx context.Context, q Query) (domain.PopularMoviesResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.PopularMoviesResult{}, fmt.Errorf("context error: %w", err)
	}

	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.MinRatings <= 0 {
		q.MinRatings = defaultMinRatings
	}
	switch q.SortBy {
	case SortByAvgRating, SortByWeightedScore, SortByRatingCount:
	default:
		q.SortBy = SortByRatingCount
	}

	perMovie := make(map[int][]float64)
	for _, r := range s.ratings {
		perMovie[r.MovieID] = append(perMovie[r.MovieID], r.Score)
	}

	filtered := make([]movieStats, 0, len(perMovie))
	for movieID, scores := range perMovie {
		if len(scores) < q.MinRatings {
			continue
		}

		mean := stat.Mean(scores, nil)
		std := stat.StdDev(scores, nil)
		if math.IsNaN(std) {
			std = 0
		}

		count := float64(len(scores))
		m := float64(q.MinRatings)
		weighted := (count*mean + m*s.globalMean) / (count + m)

		filtered = append(filtered, movieStats{
			movieID:       movieID,
			count:         len(scores),
			mean:          mean,
			std:           std,
			weightedScore: weighted,
		})
	}

	sortStats(filtered, q.SortBy)

	limit := q.Limit
	if limit > len(filtered) {
		limit = len(filtered)
	}

	movies := make([]domain.PopularMovie, 0, limit)
	for _, st := range filtered {
		info, ok := s.movies[st.movieID]
		if !ok {
			continue
		}
		movies = append(movies, domain.PopularMovie{
			MovieID:       st.movieID,
			Title:         info.Title,
			Genres:        info.Genres(s.genreNames),
			RatingCount:   st.count,
			AvgRating:     domain.CleanFloat(st.mean),
			WeightedScore: domain.CleanFloat(st.weightedScore),
			ReleaseDate:   info.ReleaseDate,
		})
		if len(movies) >= limit {
			break
		}
	}

	return domain.PopularMoviesResult{
		Movies:           movies,
		SortBy:           q.SortBy,
		TotalMatching:    len(filtered),
		GlobalMeanRating: domain.CleanFloat(s.globalMean),
	}, nil
}

// sortStats orders by the chosen key descending, movie id ascending on
// ties so repeated queries return identical orderings.
func sortStats(stats []movieStats, sortBy string) {
	key := func(st movieStats) float64 {
		switch sortBy {
		case SortByAvgRating:
			return st.mean
		case SortByWeightedScore:
			return st.weightedScore
		default:
			return float64(st.count)
		}
	}

	sort.Slice(stats, func(i, j int) bool {
		ki, kj := key(stats[i]), key(stats[j])
		if ki != kj {
			return ki > kj
		}
		return stats[i].movieID < stats[j].movieID
	})
}

package popularity

import (
	"context"
	"math"
	"testing"

	"myMovieLab/domain"
)

var testGenres = []string{"Action", "Drama"}

func testMovies() []domain.Movie {
	return []domain.Movie{
		{ID: 10, Title: "Hit", ReleaseDate: "01-Jan-1995", GenreFlags: []int{1, 0}},
		{ID: 20, Title: "Cult", ReleaseDate: "01-Jan-1996", GenreFlags: []int{0, 1}},
		{ID: 30, Title: "Obscure", ReleaseDate: "01-Jan-1997", GenreFlags: []int{1, 1}},
	}
}

func testRatings() []domain.Rating {
	var ratings []domain.Rating
	add := func(movieID int, scores ...float64) {
		for i, s := range scores {
			ratings = append(ratings, domain.Rating{UserID: i + 1, MovieID: movieID, Score: s})
		}
	}
	add(10, 5, 5, 4, 5) // 4 ratings, high
	add(20, 3, 3)       // 2 ratings, middling
	add(30, 5)          // 1 rating, filtered out at min_ratings=2
	return ratings
}

func TestPopularMoviesMinRatingsFilter(t *testing.T) {
	svc := NewService(testRatings(), testMovies(), testGenres)

	result, err := svc.PopularMovies(context.Background(), Query{SortBy: SortByRatingCount, Limit: 10, MinRatings: 2})
	if err != nil {
		t.Fatalf("PopularMovies: %v", err)
	}

	if result.TotalMatching != 2 {
		t.Fatalf("total matching = %d, want 2", result.TotalMatching)
	}
	for _, m := range result.Movies {
		if m.MovieID == 30 {
			t.Errorf("movie 30 has a single rating and must be filtered out")
		}
	}
	if result.Movies[0].MovieID != 10 {
		t.Errorf("top movie by rating count = %d, want 10", result.Movies[0].MovieID)
	}
}

func TestPopularMoviesSortByAvgRating(t *testing.T) {
	svc := NewService(testRatings(), testMovies(), testGenres)

	result, err := svc.PopularMovies(context.Background(), Query{SortBy: SortByAvgRating, Limit: 10, MinRatings: 1})
	if err != nil {
		t.Fatalf("PopularMovies: %v", err)
	}

	// 30 (5.0) > 10 (4.75) > 20 (3.0)
	want := []int{30, 10, 20}
	for i, id := range want {
		if result.Movies[i].MovieID != id {
			t.Errorf("position %d = movie %d, want %d", i, result.Movies[i].MovieID, id)
		}
	}
}

func TestWeightedScorePullsTowardGlobalMean(t *testing.T) {
	svc := NewService(testRatings(), testMovies(), testGenres)

	result, err := svc.PopularMovies(context.Background(), Query{SortBy: SortByWeightedScore, Limit: 10, MinRatings: 2})
	if err != nil {
		t.Fatalf("PopularMovies: %v", err)
	}

	gm := *result.GlobalMeanRating
	for _, m := range result.Movies {
		avg := *m.AvgRating
		weighted := *m.WeightedScore
		if math.Abs(weighted-gm) > math.Abs(avg-gm)+1e-12 {
			t.Errorf("movie %d: weighted %v sits farther from global mean %v than avg %v", m.MovieID, weighted, gm, avg)
		}
	}
}

func TestWeightedScoreConvergesToAvgWithManyRatings(t *testing.T) {
	var ratings []domain.Rating
	for i := 0; i < 1000; i++ {
		ratings = append(ratings, domain.Rating{UserID: i + 1, MovieID: 10, Score: 5})
	}
	ratings = append(ratings,
		domain.Rating{UserID: 1, MovieID: 20, Score: 1},
		domain.Rating{UserID: 2, MovieID: 20, Score: 1},
	)

	svc := NewService(ratings, testMovies(), testGenres)
	result, err := svc.PopularMovies(context.Background(), Query{SortBy: SortByWeightedScore, Limit: 1, MinRatings: 2})
	if err != nil {
		t.Fatalf("PopularMovies: %v", err)
	}

	top := result.Movies[0]
	if top.MovieID != 10 {
		t.Fatalf("top movie = %d, want 10", top.MovieID)
	}
	if math.Abs(*top.WeightedScore-*top.AvgRating) > 0.02 {
		t.Errorf("with 1000 ratings weighted %v should be close to avg %v", *top.WeightedScore, *top.AvgRating)
	}
}

func TestPopularMoviesDefaults(t *testing.T) {
	svc := NewService(testRatings(), testMovies(), testGenres)

	result, err := svc.PopularMovies(context.Background(), Query{})
	if err != nil {
		t.Fatalf("PopularMovies: %v", err)
	}

	if result.SortBy != SortByRatingCount {
		t.Errorf("default sort_by = %q, want %q", result.SortBy, SortByRatingCount)
	}
	// default min_ratings of 10 filters everything in this small fixture
	if result.TotalMatching != 0 {
		t.Errorf("total matching = %d, want 0 with default min_ratings", result.TotalMatching)
	}
	if len(result.Movies) != 0 {
		t.Errorf("got %d movies, want none", len(result.Movies))
	}
}

func TestPopularMoviesTieBreakByMovieID(t *testing.T) {
	ratings := []domain.Rating{
		{UserID: 1, MovieID: 20, Score: 4},
		{UserID: 2, MovieID: 20, Score: 4},
		{UserID: 1, MovieID: 10, Score: 4},
		{UserID: 2, MovieID: 10, Score: 4},
	}

	svc := NewService(ratings, testMovies(), testGenres)
	result, err := svc.PopularMovies(context.Background(), Query{SortBy: SortByRatingCount, Limit: 10, MinRatings: 1})
	if err != nil {
		t.Fatalf("PopularMovies: %v", err)
	}

	if result.Movies[0].MovieID != 10 || result.Movies[1].MovieID != 20 {
		t.Errorf("tied counts must order by ascending id, got %d then %d",
			result.Movies[0].MovieID, result.Movies[1].MovieID)
	}
}

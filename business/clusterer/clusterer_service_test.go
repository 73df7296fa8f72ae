package clusterer

import (
	"context"
	"errors"
	"math"
	"testing"

	"myMovieLab/domain"
)

var testGenres = []string{"Action", "Drama", "Western"}

func testMovies() []domain.Movie {
	return []domain.Movie{
		{ID: 10, Title: "A", GenreFlags: []int{1, 0, 0}},
		{ID: 20, Title: "B", GenreFlags: []int{1, 0, 0}},
		{ID: 30, Title: "C", GenreFlags: []int{0, 1, 0}},
		{ID: 40, Title: "D", GenreFlags: []int{0, 1, 0}},
		// a Western exists in the catalog but nobody ever rated it
		{ID: 50, Title: "E", GenreFlags: []int{0, 0, 1}},
	}
}

func testUsers() []domain.User {
	return []domain.User{
		{ID: 1, Age: 20, Gender: "M", Occupation: "student"},
		{ID: 2, Age: 25, Gender: "F", Occupation: "student"},
		{ID: 3, Age: 60, Gender: "M", Occupation: "engineer"},
		{ID: 4, Age: 65, Gender: "F", Occupation: "writer"},
	}
}

func testRatings() []domain.Rating {
	return []domain.Rating{
		{UserID: 1, MovieID: 10, Score: 5},
		{UserID: 1, MovieID: 20, Score: 4},
		{UserID: 2, MovieID: 10, Score: 5},
		{UserID: 2, MovieID: 20, Score: 4},
		{UserID: 3, MovieID: 30, Score: 5},
		{UserID: 3, MovieID: 40, Score: 4},
		{UserID: 4, MovieID: 30, Score: 5},
		{UserID: 4, MovieID: 40, Score: 4},
	}
}

func newTestEngine(t *testing.T, k int) *Engine {
	t.Helper()
	eng, err := NewEngine(testRatings(), testMovies(), testUsers(), testGenres, k)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng
}

func TestClusterUsersAssignsEveryUser(t *testing.T) {
	eng := newTestEngine(t, 2)

	labels, err := eng.ClusterUsers(context.Background())
	if err != nil {
		t.Fatalf("ClusterUsers: %v", err)
	}

	if len(labels) != 4 {
		t.Fatalf("got %d labels, want 4", len(labels))
	}
	for i, l := range labels {
		if l < 0 || l >= 2 {
			t.Errorf("label[%d] = %d, outside [0,2)", i, l)
		}
	}
}

func TestClusterUsersDeterministicWithFixedSeed(t *testing.T) {
	first, err := newTestEngine(t, 2).ClusterUsers(context.Background())
	if err != nil {
		t.Fatalf("first ClusterUsers: %v", err)
	}
	second, err := newTestEngine(t, 2).ClusterUsers(context.Background())
	if err != nil {
		t.Fatalf("second ClusterUsers: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("label[%d] differs between runs: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestIdenticalUsersShareCluster(t *testing.T) {
	eng := newTestEngine(t, 2)
	if _, err := eng.ClusterUsers(context.Background()); err != nil {
		t.Fatalf("ClusterUsers: %v", err)
	}

	assignment := eng.Assignment()

	// users 1/2 and 3/4 have identical rating rows
	if assignment[1] != assignment[2] {
		t.Errorf("users 1 and 2 rate identically but landed in clusters %d and %d", assignment[1], assignment[2])
	}
	if assignment[3] != assignment[4] {
		t.Errorf("users 3 and 4 rate identically but landed in clusters %d and %d", assignment[3], assignment[4])
	}
}

func TestAnalyzeClustersCountsAndDistributions(t *testing.T) {
	eng := newTestEngine(t, 2)
	if _, err := eng.ClusterUsers(context.Background()); err != nil {
		t.Fatalf("ClusterUsers: %v", err)
	}

	demographics, genres, err := eng.AnalyzeClusters(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeClusters: %v", err)
	}

	if len(demographics) != 2 || len(genres) != 2 {
		t.Fatalf("got %d/%d profiles, want 2/2", len(demographics), len(genres))
	}

	total := 0
	for _, d := range demographics {
		total += d.NumUsers

		if d.NumUsers == 0 {
			if len(d.GenderDist) != 0 {
				t.Errorf("cluster %d is empty but has gender dist %v", d.Cluster, d.GenderDist)
			}
			continue
		}

		sum := 0.0
		for _, share := range d.GenderDist {
			sum += share
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("cluster %d gender shares sum to %v, want 1", d.Cluster, sum)
		}

		if len(d.TopOccupations) > 5 {
			t.Errorf("cluster %d has %d top occupations, want at most 5", d.Cluster, len(d.TopOccupations))
		}
	}
	if total != 4 {
		t.Errorf("cluster sizes sum to %d, want 4", total)
	}
}

func TestUnratedGenreIsAbsentNotZero(t *testing.T) {
	eng := newTestEngine(t, 2)
	if _, err := eng.ClusterUsers(context.Background()); err != nil {
		t.Fatalf("ClusterUsers: %v", err)
	}

	_, genres, err := eng.AnalyzeClusters(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeClusters: %v", err)
	}

	for _, g := range genres {
		if mean := g.GenreMeans["Western"]; mean != nil {
			t.Errorf("cluster %d has Western mean %v, want absent (no Western movie was ever rated)", g.Cluster, *mean)
		}
	}
}

func TestAnalyzeBeforeClusterFails(t *testing.T) {
	eng := newTestEngine(t, 2)

	if _, _, err := eng.AnalyzeClusters(context.Background()); !errors.Is(err, domain.ErrNotClustered) {
		t.Fatalf("got %v, want ErrNotClustered", err)
	}
}

func TestNewEngineRejectsBadClusterCount(t *testing.T) {
	cases := []struct {
		name string
		k    int
	}{
		{"zero", 0},
		{"negative", -1},
		{"more clusters than users", 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEngine(testRatings(), testMovies(), testUsers(), testGenres, tc.k)
			if !errors.Is(err, domain.ErrModelTraining) {
				t.Fatalf("got %v, want ErrModelTraining", err)
			}
		})
	}
}

func TestClusterUsersRejectsAllZeroMatrix(t *testing.T) {
	// zero scores are valid input shape-wise but leave nothing to cluster on
	ratings := []domain.Rating{
		{UserID: 1, MovieID: 10, Score: 0},
		{UserID: 2, MovieID: 20, Score: 0},
	}

	eng, err := NewEngine(ratings, testMovies(), testUsers(), testGenres, 2)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	if _, err := eng.ClusterUsers(context.Background()); !errors.Is(err, domain.ErrModelTraining) {
		t.Fatalf("got %v, want ErrModelTraining", err)
	}
}

func TestSmallClusterAgeStdIsAbsent(t *testing.T) {
	// one user per cluster: std needs two observations
	users := []domain.User{
		{ID: 1, Age: 20, Gender: "M", Occupation: "student"},
		{ID: 2, Age: 60, Gender: "F", Occupation: "engineer"},
	}
	ratings := []domain.Rating{
		{UserID: 1, MovieID: 10, Score: 5},
		{UserID: 2, MovieID: 30, Score: 5},
	}

	eng, err := NewEngine(ratings, testMovies(), users, testGenres, 2)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, err := eng.ClusterUsers(context.Background()); err != nil {
		t.Fatalf("ClusterUsers: %v", err)
	}

	demographics, _, err := eng.AnalyzeClusters(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeClusters: %v", err)
	}

	for _, d := range demographics {
		if d.NumUsers == 1 {
			if d.AgeStd != nil {
				t.Errorf("cluster %d has one user but age std %v, want absent", d.Cluster, *d.AgeStd)
			}
			if d.AgeMean == nil {
				t.Errorf("cluster %d has one user, age mean should still be present", d.Cluster)
			}
		}
	}
}

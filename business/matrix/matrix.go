package matrix

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"myMovieLab/domain"
)

// UserItemMatrix is the dense user x movie ratings matrix. Rows follow the
// sorted distinct user ids, columns the sorted distinct movie ids; cells
// hold the observed score or 0. Built once, immutable afterward.
type UserItemMatrix struct {
	Data     *mat.Dense
	UserIDs  []int
	MovieIDs []int

	userRow  map[int]int
	movieCol map[int]int
}

// BuildIndex derives the row and column orderings from the ratings table:
// sorted, deduplicated user ids and movie ids. Both engines and the tests
// share this so the orderings never drift apart.
func BuildIndex(ratings []domain.Rating) (userIDs, movieIDs []int) {
	userSet := make(map[int]struct{})
	movieSet := make(map[int]struct{})
	for _, r := range ratings {
		userSet[r.UserID] = struct{}{}
		movieSet[r.MovieID] = struct{}{}
	}

	userIDs = make([]int, 0, len(userSet))
	for id := range userSet {
		userIDs = append(userIDs, id)
	}
	movieIDs = make([]int, 0, len(movieSet))
	for id := range movieSet {
		movieIDs = append(movieIDs, id)
	}

	sort.Ints(userIDs)
	sort.Ints(movieIDs)
	return userIDs, movieIDs
}

// Build constructs the matrix from the ratings table. Duplicate
// (user, movie) pairs keep the last score seen; the source data is assumed
// to hold at most one rating per pair, this is not corrected here.
func Build(ratings []domain.Rating) (*UserItemMatrix, error) {
	if len(ratings) == 0 {
		return nil, fmt.Errorf("%w: ratings table is empty", domain.ErrMalformedInput)
	}

	for _, r := range ratings {
		if r.Score < 0 || math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
			return nil, fmt.Errorf("%w: invalid score %v for user %d movie %d",
				domain.ErrMalformedInput, r.Score, r.UserID, r.MovieID)
		}
	}

	userIDs, movieIDs := BuildIndex(ratings)

	userRow := make(map[int]int, len(userIDs))
	for i, id := range userIDs {
		userRow[id] = i
	}
	movieCol := make(map[int]int, len(movieIDs))
	for j, id := range movieIDs {
		movieCol[id] = j
	}

	data := mat.NewDense(len(userIDs), len(movieIDs), nil)
	for _, r := range ratings {
		data.Set(userRow[r.UserID], movieCol[r.MovieID], r.Score)
	}

	return &UserItemMatrix{
		Data:     data,
		UserIDs:  userIDs,
		MovieIDs: movieIDs,
		userRow:  userRow,
		movieCol: movieCol,
	}, nil
}

// Row maps a user id to its row index.
func (m *UserItemMatrix) Row(userID int) (int, bool) {
	i, ok := m.userRow[userID]
	return i, ok
}

// Col maps a movie id to its column index.
func (m *UserItemMatrix) Col(movieID int) (int, bool) {
	j, ok := m.movieCol[movieID]
	return j, ok
}

func (m *UserItemMatrix) NumUsers() int {
	return len(m.UserIDs)
}

func (m *UserItemMatrix) NumMovies() int {
	return len(m.MovieIDs)
}

package catalog

import (
	"context"
	"fmt"
	"sort"

	"myMovieLab/domain"
)

// Service exposes the static reference tables: the user roster and movie
// metadata. Read-only after construction.
type Service struct {
	users      []domain.User
	movies     map[int]domain.Movie
	genreNames []string
}

func NewService(users []domain.User, movies []domain.Movie, genreNames []string) *Service {
	sorted := make([]domain.User, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	movieIdx := make(map[int]domain.Movie, len(movies))
	for _, m := range movies {
		movieIdx[m.ID] = m
	}

	return &Service{
		users:      sorted,
		movies:     movieIdx,
		genreNames: genreNames,
	}
}

// ListUsers returns all user records ordered by id.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *Service) NumUsers() int {
	return len(s.users)
}

func (s *Service) NumMovies() int {
	return len(s.movies)
}

package dataset

import (
	"context"
	"fmt"

	"myMovieLab/domain"
)

// Dataset is the in-memory snapshot of the three source tables plus the
// reference lists that describe them. Engines never mutate it.
type Dataset struct {
	Ratings     []domain.Rating
	Movies      []domain.Movie
	Users       []domain.User
	GenreNames  []string
	Occupations []string
}

// Repository loads a full dataset snapshot from some backing store
// (flat files or postgres).
type Repository interface {
	Load(ctx context.Context) (*Dataset, error)
}

// MovieIndex returns movies keyed by id for metadata joins.
func (d *Dataset) MovieIndex() map[int]domain.Movie {
	idx := make(map[int]domain.Movie, len(d.Movies))
	for _, m := range d.Movies {
		idx[m.ID] = m
	}
	return idx
}

// Validate rejects snapshots the engines cannot be built from.
func (d *Dataset) Validate() error {
	if len(d.Ratings) == 0 {
		return fmt.Errorf("%w: ratings table is empty", domain.ErrMalformedInput)
	}
	if len(d.Movies) == 0 {
		return fmt.Errorf("%w: movies table is empty", domain.ErrMalformedInput)
	}
	if len(d.Users) == 0 {
		return fmt.Errorf("%w: users table is empty", domain.ErrMalformedInput)
	}
	if len(d.GenreNames) == 0 {
		return fmt.Errorf("%w: no genre names", domain.ErrMalformedInput)
	}
	return nil
}

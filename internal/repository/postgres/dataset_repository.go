package postgres

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"myMovieLab/business/dataset"
	"myMovieLab/domain"
)

// Row models for the relational layout of the three source tables. Genre
// flags are normalized into a movie_genres join table; Load folds them
// back into the per-movie flag vector the engines expect.
type ratingRow struct {
	UserID  int     `gorm:"column:user_id"`
	MovieID int     `gorm:"column:movie_id"`
	Rating  float64 `gorm:"column:rating"`
	RatedAt int64   `gorm:"column:rated_at"`
}

func (ratingRow) TableName() string { return "ratings" }

type movieRow struct {
	ID               int    `gorm:"primaryKey"`
	Title            string `gorm:"column:title"`
	ReleaseDate      string `gorm:"column:release_date"`
	VideoReleaseDate string `gorm:"column:video_release_date"`
	IMDBURL          string `gorm:"column:imdb_url"`
}

func (movieRow) TableName() string { return "movies" }

type movieGenreRow struct {
	MovieID int    `gorm:"column:movie_id"`
	Genre   string `gorm:"column:genre"`
}

func (movieGenreRow) TableName() string { return "movie_genres" }

type userRow struct {
	ID         int    `gorm:"primaryKey"`
	Age        int    `gorm:"column:age"`
	Gender     string `gorm:"column:gender"`
	Occupation string `gorm:"column:occupation"`
	ZipCode    string `gorm:"column:zip_code"`
}

func (userRow) TableName() string { return "users" }

type genreRow struct {
	Name     string `gorm:"column:name"`
	Position int    `gorm:"column:position"`
}

func (genreRow) TableName() string { return "genres" }

// DatasetRepository loads the dataset snapshot from postgres. It is
// interchangeable with the flat-file repository behind dataset.Repository.
type DatasetRepository struct {
	DB *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{DB: db}
}

func (r *DatasetRepository) Load(ctx context.Context) (*dataset.Dataset, error) {
	genres, err := r.loadGenres(ctx)
	if err != nil {
		return nil, err
	}

	ratings, err := r.loadRatings(ctx)
	if err != nil {
		return nil, err
	}

	movies, err := r.loadMovies(ctx, genres)
	if err != nil {
		return nil, err
	}

	users, occupations, err := r.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &dataset.Dataset{
		Ratings:     ratings,
		Movies:      movies,
		Users:       users,
		GenreNames:  genres,
		Occupations: occupations,
	}, nil
}

func (r *DatasetRepository) loadGenres(ctx context.Context) ([]string, error) {
	var rows []genreRow
	if err := r.DB.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	names := make([]string, len(rows))
	for i, g := range rows {
		names[i] = g.Name
	}
	return names, nil
}

func (r *DatasetRepository) loadRatings(ctx context.Context) ([]domain.Rating, error) {
	var rows []ratingRow
	if err := r.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}

	ratings := make([]domain.Rating, len(rows))
	for i, row := range rows {
		ratings[i] = domain.Rating{
			UserID:    row.UserID,
			MovieID:   row.MovieID,
			Score:     row.Rating,
			Timestamp: row.RatedAt,
		}
	}
	return ratings, nil
}

func (r *DatasetRepository) loadMovies(ctx context.Context, genres []string) ([]domain.Movie, error) {
	var rows []movieRow
	if err := r.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}

	var genreRows []movieGenreRow
	if err := r.DB.WithContext(ctx).Find(&genreRows).Error; err != nil {
		return nil, fmt.Errorf("load movie genres: %w", err)
	}

	genrePos := make(map[string]int, len(genres))
	for i, name := range genres {
		genrePos[name] = i
	}

	flagsByMovie := make(map[int][]int, len(rows))
	for _, mg := range genreRows {
		pos, ok := genrePos[mg.Genre]
		if !ok {
			continue
		}
		flags := flagsByMovie[mg.MovieID]
		if flags == nil {
			flags = make([]int, len(genres))
			flagsByMovie[mg.MovieID] = flags
		}
		flags[pos] = 1
	}

	movies := make([]domain.Movie, len(rows))
	for i, row := range rows {
		flags := flagsByMovie[row.ID]
		if flags == nil {
			flags = make([]int, len(genres))
		}
		movies[i] = domain.Movie{
			ID:               row.ID,
			Title:            row.Title,
			ReleaseDate:      row.ReleaseDate,
			VideoReleaseDate: row.VideoReleaseDate,
			IMDBURL:          row.IMDBURL,
			GenreFlags:       flags,
		}
	}
	return movies, nil
}

func (r *DatasetRepository) loadUsers(ctx context.Context) ([]domain.User, []string, error) {
	var rows []userRow
	if err := r.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("load users: %w", err)
	}

	users := make([]domain.User, len(rows))
	occSet := make(map[string]struct{})
	for i, row := range rows {
		users[i] = domain.User{
			ID:         row.ID,
			Age:        row.Age,
			Gender:     row.Gender,
			Occupation: row.Occupation,
			ZipCode:    row.ZipCode,
		}
		occSet[row.Occupation] = struct{}{}
	}

	occupations := make([]string, 0, len(occSet))
	for occ := range occSet {
		occupations = append(occupations, occ)
	}
	sort.Strings(occupations)

	return users, occupations, nil
}

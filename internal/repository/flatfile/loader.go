package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"myMovieLab/business/dataset"
	"myMovieLab/domain"
)

// The MovieLens 100K layout: tab-separated ratings, pipe-separated movie
// and user tables encoded in Latin-1.
const (
	ratingsFile     = "u.data"
	moviesFile      = "u.item"
	usersFile       = "u.user"
	genresFile      = "u.genre"
	occupationsFile = "u.occupation"

	movieFixedFields = 5 // id, title, release date, video release date, imdb url
)

// Repository loads the dataset from a MovieLens 100K directory.
type Repository struct {
	dir string
}

func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

func (r *Repository) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	genres, err := r.loadGenres()
	if err != nil {
		return nil, err
	}

	ratings, err := r.loadRatings()
	if err != nil {
		return nil, err
	}

	movies, err := r.loadMovies(len(genres))
	if err != nil {
		return nil, err
	}

	users, err := r.loadUsers()
	if err != nil {
		return nil, err
	}

	occupations, err := r.loadOccupations()
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

func (r *Repository) loadRatings() ([]domain.Rating, error) {
	path := filepath.Join(r.dir, ratingsFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var ratings []domain.Rating
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: %s: expected 4 fields, got %d", domain.ErrMalformedInput, ratingsFile, len(fields))
		}

		userID, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad user id %q", domain.ErrMalformedInput, ratingsFile, fields[0])
		}
		movieID, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad movie id %q", domain.ErrMalformedInput, ratingsFile, fields[1])
		}
		score, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad rating %q", domain.ErrMalformedInput, ratingsFile, fields[2])
		}
		ts, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad timestamp %q", domain.ErrMalformedInput, ratingsFile, fields[3])
		}

		ratings = append(ratings, domain.Rating{
			UserID:    userID,
			MovieID:   movieID,
			Score:     score,
			Timestamp: ts,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return ratings, nil
}

func (r *Repository) loadMovies(numGenres int) ([]domain.Movie, error) {
	path := filepath.Join(r.dir, moviesFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var movies []domain.Movie
	scanner := bufio.NewScanner(latin1Reader(f))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != movieFixedFields+numGenres {
			return nil, fmt.Errorf("%w: %s: expected %d fields, got %d",
				domain.ErrMalformedInput, moviesFile, movieFixedFields+numGenres, len(fields))
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad movie id %q", domain.ErrMalformedInput, moviesFile, fields[0])
		}

		flags := make([]int, numGenres)
		for i := 0; i < numGenres; i++ {
			flag, err := strconv.Atoi(fields[movieFixedFields+i])
			if err != nil {
				return nil, fmt.Errorf("%w: %s: bad genre flag %q", domain.ErrMalformedInput, moviesFile, fields[movieFixedFields+i])
			}
			flags[i] = flag
		}

		movies = append(movies, domain.Movie{
			ID:               id,
			Title:            fields[1],
			ReleaseDate:      fields[2],
			VideoReleaseDate: fields[3],
			IMDBURL:          fields[4],
			GenreFlags:       flags,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return movies, nil
}

func (r *Repository) loadUsers() ([]domain.User, error) {
	path := filepath.Join(r.dir, usersFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var users []domain.User
	scanner := bufio.NewScanner(latin1Reader(f))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != 5 {
			return nil, fmt.Errorf("%w: %s: expected 5 fields, got %d", domain.ErrMalformedInput, usersFile, len(fields))
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad user id %q", domain.ErrMalformedInput, usersFile, fields[0])
		}
		age, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad age %q", domain.ErrMalformedInput, usersFile, fields[1])
		}

		users = append(users, domain.User{
			ID:         id,
			Age:        age,
			Gender:     fields[2],
			Occupation: fields[3],
			ZipCode:    fields[4],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return users, nil
}

// loadGenres reads name|index pairs and returns the names ordered by index
// so they align with the genre flag columns of the movie table.
func (r *Repository) loadGenres() ([]string, error) {
	path := filepath.Join(r.dir, genresFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	type indexedGenre struct {
		name  string
		index int
	}

	var entries []indexedGenre
	scanner := bufio.NewScanner(latin1Reader(f))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %s: expected 2 fields, got %d", domain.ErrMalformedInput, genresFile, len(fields))
		}

		idx, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad genre index %q", domain.ErrMalformedInput, genresFile, fields[1])
		}

		entries = append(entries, indexedGenre{name: fields[0], index: idx})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].index < entries[j].index
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names, nil
}

func (r *Repository) loadOccupations() ([]string, error) {
	path := filepath.Join(r.dir, occupationsFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var occupations []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			occupations = append(occupations, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return occupations, nil
}

func latin1Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
}

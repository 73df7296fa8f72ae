package flatfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"myMovieLab/domain"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, dir, "u.genre", "Drama|1\nAction|0\nComedy|2\n")
	writeFixture(t, dir, "u.data", "1\t10\t5\t881250949\n2\t20\t3\t891717742\n")
	writeFixture(t, dir, "u.item",
		"10|Toy Story (1995)|01-Jan-1995||http://imdb.example/10|1|0|0\n"+
			"20|GoldenEye (1995)|01-Jan-1995||http://imdb.example/20|0|1|1\n")
	writeFixture(t, dir, "u.user", "1|24|M|technician|85711\n2|53|F|other|94043\n")
	writeFixture(t, dir, "u.occupation", "technician\nother\n")

	return dir
}

func TestLoadParsesAllTables(t *testing.T) {
	repo := NewRepository(fixtureDir(t))

	ds, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(ds.Ratings) != 2 || len(ds.Movies) != 2 || len(ds.Users) != 2 {
		t.Fatalf("got %d ratings, %d movies, %d users, want 2 each",
			len(ds.Ratings), len(ds.Movies), len(ds.Users))
	}

	r := ds.Ratings[0]
	if r.UserID != 1 || r.MovieID != 10 || r.Score != 5 || r.Timestamp != 881250949 {
		t.Errorf("first rating = %+v", r)
	}

	u := ds.Users[1]
	if u.ID != 2 || u.Age != 53 || u.Gender != "F" || u.Occupation != "other" || u.ZipCode != "94043" {
		t.Errorf("second user = %+v", u)
	}

	if len(ds.Occupations) != 2 || ds.Occupations[0] != "technician" {
		t.Errorf("occupations = %v", ds.Occupations)
	}
}

func TestLoadOrdersGenresByIndex(t *testing.T) {
	repo := NewRepository(fixtureDir(t))

	ds, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// u.genre lists Drama first but Action has index 0
	want := []string{"Action", "Drama", "Comedy"}
	for i, name := range want {
		if ds.GenreNames[i] != name {
			t.Errorf("genre[%d] = %q, want %q", i, ds.GenreNames[i], name)
		}
	}

	// movie 20 carries flags 0|1|1 aligned to that order
	m := ds.Movies[1]
	genres := m.Genres(ds.GenreNames)
	if len(genres) != 2 || genres[0] != "Drama" || genres[1] != "Comedy" {
		t.Errorf("movie 20 genres = %v, want [Drama Comedy]", genres)
	}
}

func TestLoadDecodesLatin1Titles(t *testing.T) {
	dir := fixtureDir(t)
	// "Am\xe9lie" is Latin-1 for Amélie
	writeFixture(t, dir, "u.item", "10|Am\xe9lie (2001)|01-Jan-2001||http://imdb.example/10|1|0|0\n")

	ds, err := NewRepository(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if ds.Movies[0].Title != "Amélie (2001)" {
		t.Errorf("title = %q, want %q", ds.Movies[0].Title, "Amélie (2001)")
	}
}

func TestLoadRejectsMalformedRows(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
	}{
		{"rating with too few fields", "u.data", "1\t10\t5\n"},
		{"rating with bad score", "u.data", "1\t10\tfive\t881250949\n"},
		{"movie with wrong field count", "u.item", "10|Broken (1995)|01-Jan-1995\n"},
		{"movie with bad genre flag", "u.item", "10|Broken (1995)|01-Jan-1995||http://x|1|0|x\n"},
		{"user with bad age", "u.user", "1|young|M|technician|85711\n"},
		{"genre with bad index", "u.genre", "Drama|one\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := fixtureDir(t)
			writeFixture(t, dir, tc.file, tc.content)

			if _, err := NewRepository(dir).Load(context.Background()); !errors.Is(err, domain.ErrMalformedInput) {
				t.Fatalf("got %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := fixtureDir(t)
	if err := os.Remove(filepath.Join(dir, "u.data")); err != nil {
		t.Fatalf("remove fixture: %v", err)
	}

	if _, err := NewRepository(dir).Load(context.Background()); err == nil {
		t.Fatal("expected an error for a missing ratings file")
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	dir := fixtureDir(t)
	writeFixture(t, dir, "u.data", "\n1\t10\t5\t881250949\n\n\n2\t20\t3\t891717742\n")

	ds, err := NewRepository(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Ratings) != 2 {
		t.Errorf("got %d ratings, want 2", len(ds.Ratings))
	}
}

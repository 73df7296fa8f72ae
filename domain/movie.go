package domain

// Movie is static reference data. GenreFlags is aligned index-for-index
// with the dataset's genre name list; 1 means the movie carries that genre.
type Movie struct {
	ID               int    `json:"movie_id"`
	Title            string `json:"title"`
	ReleaseDate      string `json:"release_date"`
	VideoReleaseDate string `json:"video_release_date,omitempty"`
	IMDBURL          string `json:"imdb_url,omitempty"`
	GenreFlags       []int  `json:"-"`
}

// Genres resolves the set genre flags against the dataset's genre names.
func (m Movie) Genres(names []string) []string {
	genres := make([]string, 0, len(m.GenreFlags))
	for i, flag := range m.GenreFlags {
		if flag == 1 && i < len(names) {
			genres = append(genres, names[i])
		}
	}
	return genres
}

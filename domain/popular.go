package domain

// PopularMovie is one per-movie aggregate joined with movie metadata.
type PopularMovie struct {
	MovieID       int      `json:"movie_id"`
	Title         string   `json:"title"`
	Genres        []string `json:"genres"`
	RatingCount   int      `json:"rating_count"`
	AvgRating     *float64 `json:"avg_rating"`
	WeightedScore *float64 `json:"weighted_score"`
	ReleaseDate   string   `json:"release_date"`
}

// PopularMoviesResult is the popular-items query response.
type PopularMoviesResult struct {
	Movies           []PopularMovie `json:"movies"`
	SortBy           string         `json:"sort_by"`
	TotalMatching    int            `json:"total_matching"`
	GlobalMeanRating *float64       `json:"global_mean_rating"`
}

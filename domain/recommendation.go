package domain

// MovieRecommendation is one ranked entry returned by the recommender.
type MovieRecommendation struct {
	MovieID int      `json:"movie_id"`
	Title   string   `json:"title"`
	Genres  []string `json:"genres"`
}

package domain

// Rating is one (user, movie, score) observation from the ratings table.
// The source data holds at most one rating per (user, movie) pair; on
// duplicates the last row wins when the matrix is built.
type Rating struct {
	UserID    int     `json:"user_id"`
	MovieID   int     `json:"movie_id"`
	Score     float64 `json:"rating"`
	Timestamp int64   `json:"timestamp"`
}

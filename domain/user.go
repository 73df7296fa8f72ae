package domain

// User is one row of the users table (MovieLens demographic record).
type User struct {
	ID         int    `json:"user_id"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Occupation string `json:"occupation"`
	ZipCode    string `json:"zip_code"`
}

package domain

// OccupationShare is one entry of a cluster's top-occupation ranking.
type OccupationShare struct {
	Name  string  `json:"name"`
	Share float64 `json:"share"`
}

// GenrePreference is one (genre, mean rating) pair for a cluster. Only
// genres with an observed mean > 0 are rendered at the boundary.
type GenrePreference struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ClusterDemographics summarizes the users assigned to one cluster.
// AgeMean/AgeStd are nil when fewer than the required observations exist;
// nil marshals as JSON null, never NaN.
type ClusterDemographics struct {
	Cluster        int                `json:"cluster"`
	NumUsers       int                `json:"num_users"`
	AgeMean        *float64           `json:"age_mean"`
	AgeStd         *float64           `json:"age_std"`
	GenderDist     map[string]float64 `json:"gender_dist"`
	TopOccupations []OccupationShare  `json:"top_occupations"`
}

// ClusterGenres holds the per-genre mean rating for one cluster. A nil
// value means no rating by this cluster touched that genre.
type ClusterGenres struct {
	Cluster    int                 `json:"cluster"`
	GenreMeans map[string]*float64 `json:"genre_means"`
	GenreOrder []string            `json:"-"`
}

// ClusterProfile is the merged boundary view of one cluster: demographics
// plus the positive genre preferences in the dataset's genre order.
type ClusterProfile struct {
	Cluster          int                `json:"cluster"`
	NumUsers         int                `json:"num_users"`
	AgeMean          *float64           `json:"age_mean"`
	AgeStd           *float64           `json:"age_std"`
	GenderDist       map[string]float64 `json:"gender_dist"`
	TopOccupations   []OccupationShare  `json:"top_occupations"`
	GenrePreferences []GenrePreference  `json:"genre_preferences"`
}

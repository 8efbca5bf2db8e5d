package catalog

// pageResponse is the envelope for every paginated listing endpoint
type pageResponse struct {
	Page         int        `json:"page"`
	Results      []movieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// movieDTO covers both wire shapes of a movie. Listing and search results
// populate GenreIDs; the single-movie endpoint populates Genres, Runtime
// and Tagline instead.
type movieDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	ReleaseDate string     `json:"release_date,omitempty"`
	PosterPath  string     `json:"poster_path,omitempty"`
	VoteAverage float64    `json:"vote_average,omitempty"`
	VoteCount   int        `json:"vote_count,omitempty"`
	Overview    string     `json:"overview,omitempty"`
	GenreIDs    []int      `json:"genre_ids,omitempty"`
	Genres      []genreDTO `json:"genres,omitempty"`
	Runtime     int        `json:"runtime,omitempty"`
	Tagline     string     `json:"tagline,omitempty"`
	Popularity  float64    `json:"popularity,omitempty"`
}

// genreDTO is a single genre entry
type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// genreListResponse is the envelope for the genre list endpoint
type genreListResponse struct {
	Genres []genreDTO `json:"genres"`
}

// statusResponse is the error body returned on non-2xx responses
type statusResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

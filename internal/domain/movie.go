package domain

import "strconv"

// Movie represents a catalog item. Listings and search return the summary
// shape (GenreIDs populated); a single-item lookup returns the detail shape
// (Genres populated, plus runtime/tagline). Both shapes are valid watchlist
// members, so genre information must always be read through GenreIDSet.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date,omitempty"`
	PosterPath  string  `json:"poster_path,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
	VoteCount   int     `json:"vote_count,omitempty"`
	Overview    string  `json:"overview,omitempty"`

	// Summary shape only
	GenreIDs []int `json:"genre_ids,omitempty"`

	// Detail shape only
	Genres  []Genre `json:"genres,omitempty"`
	Runtime int     `json:"runtime,omitempty"`
	Tagline string  `json:"tagline,omitempty"`
}

// Genre is a catalog genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreIDSet normalizes genre information to a set of genre IDs regardless
// of which shape the movie carries. Detail-shape Genres win when present.
func (m Movie) GenreIDSet() map[int]struct{} {
	ids := make(map[int]struct{})
	if len(m.Genres) > 0 {
		for _, g := range m.Genres {
			ids[g.ID] = struct{}{}
		}
		return ids
	}
	for _, id := range m.GenreIDs {
		ids[id] = struct{}{}
	}
	return ids
}

// IsDetail reports whether the movie carries the detail shape
func (m Movie) IsDetail() bool {
	return len(m.Genres) > 0 || m.Runtime > 0
}

// Year returns the release year, or 0 if the release date is absent
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// YearLabel returns the release year for display, or "N/A" when unknown
func (m Movie) YearLabel() string {
	if y := m.Year(); y > 0 {
		return strconv.Itoa(y)
	}
	return "N/A"
}

// PosterURL joins the poster path onto an image base URL. Returns empty
// when the movie has no poster.
func (m Movie) PosterURL(imageBaseURL string) string {
	if m.PosterPath == "" {
		return ""
	}
	return imageBaseURL + m.PosterPath
}

// GenreNames returns detail-shape genre names for display
func (m Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// PageResult is one page of a paginated listing. Page and TotalPages are
// the server's authoritative pagination bounds for the issuing query.
type PageResult struct {
	Movies     []Movie
	Page       int
	TotalPages int
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenreIDSetPrefersDetailShape(t *testing.T) {
	summary := Movie{GenreIDs: []int{28, 12}}
	assert.Equal(t, map[int]struct{}{28: {}, 12: {}}, summary.GenreIDSet())

	detail := Movie{
		GenreIDs: []int{28},
		Genres:   []Genre{{ID: 35, Name: "Comedy"}},
	}
	assert.Equal(t, map[int]struct{}{35: {}}, detail.GenreIDSet())

	assert.Empty(t, Movie{}.GenreIDSet())
}

func TestYearLabel(t *testing.T) {
	assert.Equal(t, "1999", Movie{ReleaseDate: "1999-03-31"}.YearLabel())
	assert.Equal(t, "N/A", Movie{}.YearLabel())
	assert.Equal(t, "N/A", Movie{ReleaseDate: "bad"}.YearLabel())
}

func TestPosterURL(t *testing.T) {
	m := Movie{PosterPath: "/abc.jpg"}
	assert.Equal(t, "https://img.example/w500/abc.jpg", m.PosterURL("https://img.example/w500"))
	assert.Equal(t, "", Movie{}.PosterURL("https://img.example/w500"))
}

func TestIsDetail(t *testing.T) {
	assert.False(t, Movie{GenreIDs: []int{28}}.IsDetail())
	assert.True(t, Movie{Genres: []Genre{{ID: 28}}}.IsDetail())
	assert.True(t, Movie{Runtime: 120}.IsDetail())
}

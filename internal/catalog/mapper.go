package catalog

import "cinemuse/internal/domain"

// mapMovie converts a wire movie to the domain representation, preserving
// whichever genre shape the endpoint returned
func mapMovie(dto movieDTO) domain.Movie {
	return domain.Movie{
		ID:          dto.ID,
		Title:       dto.Title,
		ReleaseDate: dto.ReleaseDate,
		PosterPath:  dto.PosterPath,
		VoteAverage: dto.VoteAverage,
		VoteCount:   dto.VoteCount,
		Overview:    dto.Overview,
		GenreIDs:    dto.GenreIDs,
		Genres:      mapGenres(dto.Genres),
		Runtime:     dto.Runtime,
		Tagline:     dto.Tagline,
	}
}

// mapMovies converts a listing page's results
func mapMovies(dtos []movieDTO) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, dto := range dtos {
		movies = append(movies, mapMovie(dto))
	}
	return movies
}

// mapGenres converts genre entries
func mapGenres(dtos []genreDTO) []domain.Genre {
	if len(dtos) == 0 {
		return nil
	}
	genres := make([]domain.Genre, 0, len(dtos))
	for _, dto := range dtos {
		genres = append(genres, domain.Genre{ID: dto.ID, Name: dto.Name})
	}
	return genres
}

// mapPage converts a full listing response
func mapPage(resp pageResponse) *domain.PageResult {
	return &domain.PageResult{
		Movies:     mapMovies(resp.Results),
		Page:       resp.Page,
		TotalPages: resp.TotalPages,
	}
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"cinemuse/internal/domain"
)

// FeedKind identifies a listing endpoint
type FeedKind int

const (
	// FeedTrending is the default feed (weekly trending)
	FeedTrending FeedKind = iota
	FeedPopular
	FeedTopRated
	FeedUpcoming
	FeedGenre
	FeedSearch
)

// String returns a short name for logging
func (k FeedKind) String() string {
	switch k {
	case FeedTrending:
		return "trending"
	case FeedPopular:
		return "popular"
	case FeedTopRated:
		return "top_rated"
	case FeedUpcoming:
		return "upcoming"
	case FeedGenre:
		return "genre"
	case FeedSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Feed identifies a listing query target. GenreID is only meaningful for
// FeedGenre. A search term is carried separately because an active search
// and a category endpoint are mutually exclusive.
type Feed struct {
	Kind    FeedKind
	GenreID int
}

// IsDefault reports whether this is the default feed, the only feed whose
// results are snapshotted for offline replay
func (f Feed) IsDefault() bool {
	return f.Kind == FeedTrending
}

// Client is a thin, read-only client for a TMDB-compatible catalog service
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog client
func NewClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// doRequest performs an authenticated GET and returns the response body.
// The API key rides as a query parameter on every call. A 401 maps to
// domain.ErrAuthFailed; transport errors and any other non-2xx map to
// domain.ErrCatalogUnavailable.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("catalog request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "path", path, "error", err)
		return nil, domain.ErrCatalogUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthFailed
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var status statusResponse
		if err := json.Unmarshal(body, &status); err == nil && status.StatusMessage != "" {
			c.logger.Error("catalog request error", "status", resp.StatusCode, "message", status.StatusMessage)
		} else {
			c.logger.Error("catalog request error", "status", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	return body, nil
}

// parsePage parses a paginated listing response
func (c *Client) parsePage(body []byte) (*domain.PageResult, error) {
	var resp pageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return mapPage(resp), nil
}

// feedPath maps a feed to its endpoint path and static query parameters
func feedPath(feed Feed) (string, url.Values) {
	query := url.Values{}
	switch feed.Kind {
	case FeedPopular:
		return "/movie/popular", query
	case FeedTopRated:
		return "/movie/top_rated", query
	case FeedUpcoming:
		return "/movie/upcoming", query
	case FeedGenre:
		query.Set("with_genres", strconv.Itoa(feed.GenreID))
		return "/discover/movie", query
	case FeedSearch:
		return "/search/movie", query
	default:
		return "/trending/movie/week", query
	}
}

// FetchPage returns one page of a listing. The query argument is required
// for FeedSearch and ignored otherwise. The returned page/total_pages are
// the server's authoritative pagination bounds for this query.
func (c *Client) FetchPage(ctx context.Context, feed Feed, query string, page int) (*domain.PageResult, error) {
	if page < 1 {
		page = 1
	}

	path, params := feedPath(feed)
	params.Set("page", strconv.Itoa(page))
	if feed.Kind == FeedSearch {
		params.Set("query", query)
	}

	body, err := c.doRequest(ctx, path, params)
	if err != nil {
		return nil, err
	}

	result, err := c.parsePage(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched page", "feed", feed.Kind, "page", result.Page, "totalPages", result.TotalPages, "results", len(result.Movies))
	return result, nil
}

// MovieDetails returns the detail shape for a single movie
func (c *Client) MovieDetails(ctx context.Context, id int64) (*domain.Movie, error) {
	path := fmt.Sprintf("/movie/%d", id)
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var dto movieDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if dto.ID == 0 {
		return nil, domain.ErrMovieNotFound
	}

	movie := mapMovie(dto)
	return &movie, nil
}

// Genres returns the full genre list for menu rendering and name lookup
func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	body, err := c.doRequest(ctx, "/genre/movie/list", nil)
	if err != nil {
		return nil, err
	}

	var resp genreListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return mapGenres(resp.Genres), nil
}

// DiscoverPopular returns the recommendation candidate pool: the first page
// of a generic discovery query sorted by descending popularity, with no
// genre filter applied server-side.
func (c *Client) DiscoverPopular(ctx context.Context) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("sort_by", "popularity.desc")

	body, err := c.doRequest(ctx, "/discover/movie", query)
	if err != nil {
		return nil, err
	}

	result, err := c.parsePage(body)
	if err != nil {
		return nil, err
	}
	return result.Movies, nil
}

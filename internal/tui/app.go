package tui

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cinemuse/internal/browse"
	"cinemuse/internal/catalog"
	"cinemuse/internal/config"
	"cinemuse/internal/domain"
	"cinemuse/internal/recommend"
	"cinemuse/internal/shell"
	"cinemuse/internal/store"
	"cinemuse/internal/suggest"
	"cinemuse/internal/tui/styles"
)

// ViewState represents the active view
type ViewState int

const (
	ViewFeed ViewState = iota
	ViewWatchlist
	ViewMenu
	ViewDetail
)

// Affordance is the per-item action flag handed to the renderer
type Affordance int

const (
	AffordanceNone Affordance = iota
	AffordanceAdd
	AffordanceRemove
)

// menuEntry is one selectable category in the menu view
type menuEntry struct {
	Label string
	Feed  catalog.Feed
}

// Model is the main Bubble Tea model for the application
type Model struct {
	state       ViewState
	returnState ViewState // Where Escape from the detail view goes back to

	// Services
	FeedSvc    *browse.FeedService
	Catalog    *catalog.Client
	Store      *store.Store
	Engine     *recommend.Engine
	SuggestSvc *suggest.Service
	Shell      *shell.Cache
	Controller *browse.Controller

	ImageBaseURL string
	Logger       *slog.Logger

	// Data
	movies          []domain.Movie
	source          browse.Source
	genres          []domain.Genre
	genreNames      map[int]string
	watchlist       []domain.Movie
	recommendations recommend.Result
	topRated        []domain.Movie
	suggestions     []domain.Movie
	detail          *domain.Movie

	// UI state
	cursor      int
	menuCursor  int
	searchInput textinput.Model
	searching   bool
	filterInput textinput.Model
	filtering   bool
	spin        spinner.Model
	loading     bool
	statusMsg   string
	statusIsErr bool
	width       int
	height      int
	theme       styles.Theme
	showHelp    bool
}

// NewModel creates a new application model
func NewModel(
	feedSvc *browse.FeedService,
	cat *catalog.Client,
	st *store.Store,
	engine *recommend.Engine,
	suggestSvc *suggest.Service,
	shellCache *shell.Cache,
	imageBaseURL string,
	themeName string,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Search movies..."
	searchInput.CharLimit = 100

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter watchlist..."
	filterInput.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := styles.DarkTheme()
	if themeName == config.ThemeLight {
		theme = styles.LightTheme()
	}

	return Model{
		state:        ViewFeed,
		returnState:  ViewFeed,
		FeedSvc:      feedSvc,
		Catalog:      cat,
		Store:        st,
		Engine:       engine,
		SuggestSvc:   suggestSvc,
		Shell:        shellCache,
		Controller:   browse.NewController(),
		ImageBaseURL: imageBaseURL,
		Logger:       logger,
		genreNames:   make(map[int]string),
		watchlist:    st.Watchlist(),
		searchInput:  searchInput,
		filterInput:  filterInput,
		spin:         sp,
		theme:        theme,
	}
}

// Init loads secondary data first, then issues the primary feed fetch
func (m Model) Init() tea.Cmd {
	qctx, generation := m.Controller.NewQuery(catalog.Feed{Kind: catalog.FeedTrending}, "")
	return tea.Batch(
		m.spin.Tick,
		LoadGenresCmd(m.Catalog),
		LoadTopRatedCmd(m.Catalog),
		RefreshRecommendationsCmd(m.Engine),
		LoadFeedCmd(m.FeedSvc, qctx, generation),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FeedLoadedMsg:
		return m.handleFeedLoaded(msg)

	case FeedFailedMsg:
		return m.handleFeedFailed(msg)

	case GenresLoadedMsg:
		m.genres = msg.Genres
		m.genreNames = make(map[int]string, len(msg.Genres))
		for _, g := range msg.Genres {
			m.genreNames[g.ID] = g.Name
		}
		return m, nil

	case DetailsLoadedMsg:
		m.loading = false
		m.detail = msg.Movie
		if m.state != ViewDetail {
			m.returnState = m.state
		}
		m.state = ViewDetail
		return m, nil

	case WatchlistChangedMsg:
		return m.handleWatchlistChanged(msg)

	case RecommendationsMsg:
		m.recommendations = msg.Result
		return m, nil

	case TopRatedMsg:
		m.topRated = msg.Movies
		return m, nil

	case SuggestTickMsg:
		// Only fetch if the input hasn't moved on since the tick was armed
		if m.searching && msg.Query == m.searchInput.Value() {
			return m, LoadSuggestionsCmd(m.SuggestSvc, msg.Query)
		}
		return m, nil

	case SuggestionsMsg:
		if m.searching && msg.Query == m.searchInput.Value() {
			m.suggestions = msg.Movies
		}
		return m, nil

	case PosterSavedMsg:
		return m.setStatus("Poster saved to "+msg.Path, false)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil

	case ErrMsg:
		m.loading = false
		m.Logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		return m.setStatus("Failed to "+msg.Context+".", true)
	}

	return m, nil
}

// handleKey routes key presses by input mode and view
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, Keys.Up):
		if m.state == ViewMenu {
			if m.menuCursor > 0 {
				m.menuCursor--
			}
		} else if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, Keys.Down):
		if m.state == ViewMenu {
			if m.menuCursor < len(m.menuEntries())-1 {
				m.menuCursor++
			}
		} else if m.cursor < len(m.currentList())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, Keys.PrevPage):
		return m.changePage(-1)

	case key.Matches(msg, Keys.NextPage):
		return m.changePage(1)

	case key.Matches(msg, Keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, Keys.Escape):
		return m.handleEscape()

	case key.Matches(msg, Keys.Search):
		m.searching = true
		m.suggestions = nil
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, Keys.Filter):
		if m.state == ViewWatchlist {
			m.filtering = true
			m.filterInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, Keys.Menu):
		m.state = ViewMenu
		m.menuCursor = 0
		return m, nil

	case key.Matches(msg, Keys.Watchlist):
		m.state = ViewWatchlist
		m.cursor = 0
		return m, nil

	case key.Matches(msg, Keys.Add):
		return m.handleAdd()

	case key.Matches(msg, Keys.Remove):
		return m.handleRemove()

	case key.Matches(msg, Keys.Theme):
		return m.toggleTheme()

	case key.Matches(msg, Keys.Refresh):
		if m.state == ViewFeed {
			// Re-fetch the current page under a fresh generation
			if qctx, generation, ok := m.Controller.GoToPage(0); ok {
				m.loading = true
				return m, tea.Batch(m.spin.Tick, LoadFeedCmd(m.FeedSvc, qctx, generation))
			}
		}
		return m, nil

	case key.Matches(msg, Keys.SavePoster):
		if m.state == ViewDetail && m.detail != nil {
			posterURL := m.detail.PosterURL(m.ImageBaseURL)
			if posterURL == "" {
				return m.setStatus("No poster available.", true)
			}
			return m, SavePosterCmd(m.Shell, posterURL, m.detail.Title)
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey handles keys while the search box is focused
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.searching = false
		m.suggestions = nil
		m.searchInput.Blur()
		return m, nil

	case tea.KeyEnter:
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		m.searching = false
		m.suggestions = nil
		m.searchInput.Blur()
		m.state = ViewFeed
		qctx, generation := m.Controller.NewQuery(catalog.Feed{Kind: catalog.FeedSearch}, query)
		m.loading = true
		return m, tea.Batch(m.spin.Tick, LoadFeedCmd(m.FeedSvc, qctx, generation))
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	value := m.searchInput.Value()
	if len(value) < suggest.MinQueryLen {
		m.suggestions = nil
		return m, cmd
	}
	return m, tea.Batch(cmd, SuggestTickCmd(value))
}

// handleFilterKey handles keys while the watchlist filter is focused
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.filtering = false
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.cursor = 0
		return m, nil

	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.cursor = 0
	return m, cmd
}

// handleEnter opens details or activates a menu entry
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.state == ViewMenu {
		entries := m.menuEntries()
		if m.menuCursor >= len(entries) {
			return m, nil
		}
		entry := entries[m.menuCursor]
		m.state = ViewFeed
		qctx, generation := m.Controller.NewQuery(entry.Feed, "")
		m.loading = true
		return m, tea.Batch(m.spin.Tick, LoadFeedCmd(m.FeedSvc, qctx, generation))
	}

	movie, ok := m.selectedMovie()
	if !ok {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spin.Tick, LoadDetailsCmd(m.Catalog, movie.ID))
}

// handleEscape steps back toward the feed view
func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	switch m.state {
	case ViewDetail:
		m.detail = nil
		m.state = m.returnState
	case ViewWatchlist, ViewMenu:
		m.state = ViewFeed
		m.cursor = 0
	}
	return m, nil
}

// handleAdd adds the selected movie (or the open detail) to the watchlist
func (m Model) handleAdd() (tea.Model, tea.Cmd) {
	if m.state == ViewDetail && m.detail != nil {
		added, err := m.Store.AddToWatchlist(*m.detail)
		if err != nil {
			return m.setStatus("Failed to save watchlist.", true)
		}
		return m.applyWatchlistChange(WatchlistChangedMsg{Title: m.detail.Title, Added: added, AlreadyPresent: !added})
	}

	if m.affordance() != AffordanceAdd {
		return m, nil
	}
	movie, ok := m.selectedMovie()
	if !ok {
		return m, nil
	}
	return m, AddToWatchlistCmd(m.Catalog, m.Store, movie.ID)
}

// handleRemove removes the selected watchlist entry
func (m Model) handleRemove() (tea.Model, tea.Cmd) {
	if m.affordance() != AffordanceRemove {
		return m, nil
	}
	movie, ok := m.selectedMovie()
	if !ok {
		return m, nil
	}
	return m, RemoveFromWatchlistCmd(m.Store, movie.ID, movie.Title)
}

// changePage issues a relative page transition for the feed view
func (m Model) changePage(delta int) (tea.Model, tea.Cmd) {
	if m.state != ViewFeed {
		return m, nil
	}
	qctx, generation, ok := m.Controller.GoToPage(delta)
	if !ok {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spin.Tick, LoadFeedCmd(m.FeedSvc, qctx, generation))
}

// toggleTheme flips the palette and persists the preference
func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	saved := ""
	if m.theme.Name == "dark" {
		m.theme = styles.LightTheme()
		saved = config.ThemeLight
	} else {
		m.theme = styles.DarkTheme()
	}
	if err := config.SaveTheme(saved); err != nil {
		m.Logger.Warn("failed to persist theme", "error", err)
	}
	return m, nil
}

// handleFeedLoaded adopts a feed result unless it is stale
func (m Model) handleFeedLoaded(msg FeedLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Result.Source == browse.SourceSnapshot {
		if !m.Controller.ApplySnapshot(msg.Generation) {
			return m, nil
		}
	} else if !m.Controller.ApplyResult(msg.Generation, msg.Result.Page, msg.Result.TotalPages) {
		return m, nil
	}

	m.loading = false
	m.movies = msg.Result.Movies
	m.source = msg.Result.Source
	m.cursor = 0
	m.state = ViewFeed
	return m, nil
}

// handleFeedFailed surfaces a classified fetch failure
func (m Model) handleFeedFailed(msg FeedFailedMsg) (tea.Model, tea.Cmd) {
	if !m.Controller.Fail(msg.Generation) {
		return m, nil
	}
	m.loading = false

	switch {
	case errors.Is(msg.Err, domain.ErrAuthFailed):
		// Fatal credential problem: surfaced verbatim
		return m.setStatus("ERROR: "+msg.Err.Error(), true)
	case errors.Is(msg.Err, domain.ErrNoSnapshot):
		return m.setStatus("Could not load trending movies. Connect to the internet to fetch data.", true)
	default:
		return m.setStatus("Failed to load content. Please check your network connection.", true)
	}
}

// handleWatchlistChanged reloads the list and triggers recomputation
func (m Model) handleWatchlistChanged(msg WatchlistChangedMsg) (tea.Model, tea.Cmd) {
	return m.applyWatchlistChange(msg)
}

func (m Model) applyWatchlistChange(msg WatchlistChangedMsg) (tea.Model, tea.Cmd) {
	m.watchlist = m.Store.Watchlist()
	if m.cursor >= len(m.currentList()) && m.cursor > 0 {
		m.cursor--
	}

	var status string
	switch {
	case msg.Added:
		status = msg.Title + " added to your watchlist."
	case msg.AlreadyPresent:
		status = msg.Title + " is already in your watchlist."
	case msg.Removed:
		status = msg.Title + " removed from your watchlist."
	default:
		// Removing an absent id is a silent no-op
		return m, nil
	}

	updated, cmd := m.setStatus(status, false)
	model := updated.(Model)
	return model, tea.Batch(cmd, RefreshRecommendationsCmd(m.Engine))
}

// setStatus sets a temporary status line
func (m Model) setStatus(message string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusMsg = message
	m.statusIsErr = isErr
	return m, ClearStatusCmd()
}

// affordance returns the action flag for items in the current view
func (m Model) affordance() Affordance {
	switch m.state {
	case ViewFeed:
		return AffordanceAdd
	case ViewWatchlist:
		return AffordanceRemove
	case ViewDetail:
		return AffordanceAdd
	default:
		return AffordanceNone
	}
}

// selectedMovie returns the movie under the cursor
func (m Model) selectedMovie() (domain.Movie, bool) {
	list := m.currentList()
	if m.cursor < 0 || m.cursor >= len(list) {
		return domain.Movie{}, false
	}
	return list[m.cursor], true
}

// currentList returns the navigable list for the active view
func (m Model) currentList() []domain.Movie {
	switch m.state {
	case ViewWatchlist:
		return m.filteredWatchlist()
	default:
		return m.movies
	}
}

// menuEntries builds the category menu: fixed categories then genres
func (m Model) menuEntries() []menuEntry {
	entries := []menuEntry{
		{Label: "Trending Now", Feed: catalog.Feed{Kind: catalog.FeedTrending}},
		{Label: "Popular Movies", Feed: catalog.Feed{Kind: catalog.FeedPopular}},
		{Label: "Top Rated", Feed: catalog.Feed{Kind: catalog.FeedTopRated}},
		{Label: "Upcoming Movies", Feed: catalog.Feed{Kind: catalog.FeedUpcoming}},
	}
	for _, g := range m.genres {
		entries = append(entries, menuEntry{
			Label: g.Name,
			Feed:  catalog.Feed{Kind: catalog.FeedGenre, GenreID: g.ID},
		})
	}
	return entries
}

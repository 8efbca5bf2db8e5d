package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"cinemuse/internal/browse"
	"cinemuse/internal/catalog"
	"cinemuse/internal/domain"
	"cinemuse/internal/recommend"
)

const maxVisibleRows = 20

// movieSource adapts a movie slice for fuzzy matching on titles
type movieSource []domain.Movie

func (s movieSource) String(i int) string { return s[i].Title }
func (s movieSource) Len() int            { return len(s) }

// View renders the application
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("CineMuse"))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
		b.WriteString(m.renderSuggestions())
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(m.theme.Subtitle.Render(" Loading..."))
		b.WriteString("\n")
	} else {
		switch m.state {
		case ViewFeed:
			b.WriteString(m.renderFeed())
		case ViewWatchlist:
			b.WriteString(m.renderWatchlist())
		case ViewMenu:
			b.WriteString(m.renderMenu())
		case ViewDetail:
			b.WriteString(m.renderDetail())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// heading derives the section heading from the active query context
func (m Model) heading() string {
	qctx := m.Controller.Context()
	if m.source == browse.SourceSnapshot {
		return "Trending (Cached Offline)"
	}
	switch qctx.Feed.Kind {
	case catalog.FeedPopular:
		return "Popular Movies"
	case catalog.FeedTopRated:
		return "Top Rated"
	case catalog.FeedUpcoming:
		return "Upcoming Movies"
	case catalog.FeedGenre:
		if name, ok := m.genreNames[qctx.Feed.GenreID]; ok {
			return "Category: " + name
		}
		return "Category"
	case catalog.FeedSearch:
		return fmt.Sprintf("Search Results for %q", qctx.Query)
	default:
		return "Trending Now"
	}
}

func (m Model) renderFeed() string {
	var b strings.Builder

	b.WriteString(m.theme.Accent.Render(m.heading()))
	b.WriteString("\n\n")

	if len(m.movies) == 0 {
		b.WriteString(m.theme.Dim.Render("No content to display."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderMovieList(m.movies, m.cursor, AffordanceAdd))
	}

	if rail := m.renderTopRated(); rail != "" {
		b.WriteString("\n")
		b.WriteString(rail)
	}
	return b.String()
}

// renderMovieList renders a selectable list with per-item affordance hints
func (m Model) renderMovieList(movies []domain.Movie, cursor int, affordance Affordance) string {
	var b strings.Builder

	start, end := visibleWindow(cursor, len(movies), maxVisibleRows)
	for i := start; i < end; i++ {
		movie := movies[i]
		line := fmt.Sprintf("%s (%s)  ★ %.1f", movie.Title, movie.YearLabel(), movie.VoteAverage)

		if i == cursor {
			switch affordance {
			case AffordanceAdd:
				line += m.theme.Dim.Render("  [a] add")
			case AffordanceRemove:
				line += m.theme.Dim.Render("  [x] remove")
			}
			b.WriteString(m.theme.SelectedItem.Render("> " + line))
		} else {
			b.WriteString(m.theme.NormalItem.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if end < len(movies) {
		b.WriteString(m.theme.Dim.Render(fmt.Sprintf("  ... %d more", len(movies)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

// visibleWindow keeps the cursor inside a fixed-height viewport
func visibleWindow(cursor, total, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}

func (m Model) renderWatchlist() string {
	var b strings.Builder

	b.WriteString(m.theme.Accent.Render("My Watchlist"))
	b.WriteString("\n\n")

	if m.filtering || m.filterInput.Value() != "" {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n\n")
	}

	list := m.filteredWatchlist()
	switch {
	case len(m.watchlist) == 0:
		b.WriteString(m.theme.Dim.Render("Your watchlist is empty. Add movies to see recommendations."))
		b.WriteString("\n")
	case len(list) == 0:
		b.WriteString(m.theme.Dim.Render("No watchlist entries match the filter."))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderMovieList(list, m.cursor, AffordanceRemove))
	}

	b.WriteString("\n")
	b.WriteString(m.renderRecommendations())
	return b.String()
}

// filteredWatchlist applies the fuzzy title filter, preserving watchlist
// order when the filter is empty
func (m Model) filteredWatchlist() []domain.Movie {
	query := m.filterInput.Value()
	if query == "" {
		return m.watchlist
	}
	matches := fuzzy.FindFrom(query, movieSource(m.watchlist))
	out := make([]domain.Movie, 0, len(matches))
	for _, match := range matches {
		out = append(out, m.watchlist[match.Index])
	}
	return out
}

func (m Model) renderRecommendations() string {
	var b strings.Builder

	b.WriteString(m.theme.Accent.Render("Recommended For You"))
	b.WriteString("\n")

	switch m.recommendations.Reason {
	case recommend.ReasonNoInterests:
		b.WriteString(m.theme.Dim.Render("No genre data available for recommendations."))
	case recommend.ReasonNoMatches:
		b.WriteString(m.theme.Dim.Render("Could not find suitable recommendations."))
	default:
		for _, movie := range m.recommendations.Movies {
			b.WriteString(m.theme.NormalItem.Render(fmt.Sprintf("  %s (%s)  ★ %.1f", movie.Title, movie.YearLabel(), movie.VoteAverage)))
			b.WriteString("\n")
		}
		return b.String()
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTopRated() string {
	if len(m.topRated) == 0 {
		return ""
	}
	titles := make([]string, 0, len(m.topRated))
	for _, movie := range m.topRated {
		titles = append(titles, movie.Title)
	}
	return m.theme.Accent.Render("Top Rated: ") + m.theme.Dim.Render(strings.Join(titles, " · ")) + "\n"
}

func (m Model) renderMenu() string {
	var b strings.Builder

	b.WriteString(m.theme.Accent.Render("Categories"))
	b.WriteString("\n\n")

	for i, entry := range m.menuEntries() {
		if i == m.menuCursor {
			b.WriteString(m.theme.SelectedItem.Render("> " + entry.Label))
		} else {
			b.WriteString(m.theme.NormalItem.Render("  " + entry.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	if m.detail == nil {
		return m.theme.Dim.Render("No details available.") + "\n"
	}
	movie := m.detail

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("%s (%s)", movie.Title, movie.YearLabel())))
	b.WriteString("\n")

	if movie.Tagline != "" {
		b.WriteString(m.theme.Subtitle.Italic(true).Render(movie.Tagline))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.theme.Accent.Render(fmt.Sprintf("★ %.1f", movie.VoteAverage)))
	b.WriteString(m.theme.Dim.Render(fmt.Sprintf(" (%d votes)", movie.VoteCount)))
	if movie.Runtime > 0 {
		b.WriteString(m.theme.Dim.Render(fmt.Sprintf("  %dm", movie.Runtime)))
	}
	b.WriteString("\n")

	if names := movie.GenreNames(); len(names) > 0 {
		b.WriteString(m.theme.Subtitle.Render(strings.Join(names, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	overview := movie.Overview
	if overview == "" {
		overview = "No overview available."
	}
	width := m.width - 4
	if width < 20 || width > 100 {
		width = 80
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Render(overview))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Dim.Render("[a] add to watchlist  [p] save poster  [esc] back"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	var b strings.Builder
	for _, movie := range m.suggestions {
		b.WriteString(m.theme.Dim.Render(fmt.Sprintf("  %s (%s)", movie.Title, movie.YearLabel())))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	var parts []string

	if m.state == ViewFeed {
		if pager := m.Controller.Pager(); pager.Visible {
			prev := "‹ prev"
			next := "next ›"
			if !pager.PrevEnabled {
				prev = m.theme.Dim.Render(prev)
			} else {
				prev = m.theme.Accent.Render(prev)
			}
			if !pager.NextEnabled {
				next = m.theme.Dim.Render(next)
			} else {
				next = m.theme.Accent.Render(next)
			}
			parts = append(parts, fmt.Sprintf("%s  Page %d of %d  %s", prev, pager.Current, pager.Total, next))
		}
	}

	if m.statusMsg != "" {
		style := m.theme.Success
		if m.statusIsErr {
			style = m.theme.Error
		}
		parts = append(parts, style.Render(m.statusMsg))
	}

	if m.showHelp {
		parts = append(parts, m.theme.Footer.Render(m.helpText()))
	} else {
		parts = append(parts, m.theme.Footer.Render("? help · q quit"))
	}
	return strings.Join(parts, "\n")
}

func (m Model) helpText() string {
	bindings := []struct{ keys, desc string }{
		{"j/k", "move"},
		{"h/l", "page"},
		{"enter", "details"},
		{"/", "search"},
		{"m", "categories"},
		{"w", "watchlist"},
		{"f", "filter"},
		{"a", "add"},
		{"x", "remove"},
		{"t", "theme"},
		{"r", "refresh"},
		{"p", "poster"},
		{"esc", "back"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(bindings))
	for _, bd := range bindings {
		parts = append(parts, bd.keys+" "+bd.desc)
	}
	return strings.Join(parts, " · ")
}

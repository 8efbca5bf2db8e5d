package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"cinemuse/internal/browse"
	"cinemuse/internal/catalog"
	"cinemuse/internal/config"
	"cinemuse/internal/log"
	"cinemuse/internal/recommend"
	"cinemuse/internal/shell"
	"cinemuse/internal/store"
	"cinemuse/internal/suggest"
	"cinemuse/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

const shellInstallTimeout = 60 * time.Second

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("cinemuse %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting cinemuse", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("cinemuse must be run in an interactive terminal")
	}

	// Open the local store; falls back to memory-only when the cache dir
	// cannot be created
	st, err := store.NewStore(cfg.Cache.Dir)
	if err != nil {
		logger.Warn("persistent store unavailable, running memory-only", "error", err)
		st, err = store.NewStore("")
		if err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
	}
	defer st.Close()

	// Install the shell cache. Install failure is not fatal: a previously
	// stored version still serves offline, and with neither the cache just
	// stays cold.
	shellCache := shell.NewCache(st, cfg.Shell.Version, cfg.Shell.Manifest, nil, logger)
	installCtx, cancel := context.WithTimeout(context.Background(), shellInstallTimeout)
	if err := shellCache.Install(installCtx); err != nil {
		logger.Warn("shell install failed", "error", err)
		if shellCache.Restore() {
			logger.Info("restored shell cache from previous run", "version", shellCache.Version())
		}
	}
	cancel()
	if shellCache.Phase() != shell.PhaseNew {
		if err := shellCache.Activate(); err != nil {
			logger.Warn("shell activation failed", "error", err)
		}
	}

	// Create services
	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, nil, logger)
	feedSvc := browse.NewFeedService(client, st, logger)
	engine := recommend.NewEngine(client, st, logger)
	suggestSvc := suggest.NewService(client, logger)

	// Create TUI model
	model := tui.NewModel(
		feedSvc,
		client,
		st,
		engine,
		suggestSvc,
		shellCache,
		cfg.Catalog.ImageBaseURL,
		cfg.UI.Theme,
		logger,
	)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when no API key is configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to CineMuse!")
	fmt.Println()
	fmt.Println("CineMuse needs a TMDB API key to browse the catalog.")
	fmt.Println("Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var apiKey string
	for {
		fmt.Print("Enter your API key: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		apiKey = strings.TrimSpace(input)
		if apiKey != "" {
			break
		}
		fmt.Println("API key cannot be empty. Please try again.")
	}

	cfg.Catalog.APIKey = apiKey
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run cinemuse again to start the application.")

	return nil
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"catalog/internal/browse"
	"catalog/internal/client"
	"catalog/internal/models"
)

func main() {
	apiURL := os.Getenv("CATALOG_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	var limit int
	var debounce time.Duration

	flag.StringVar(&apiURL, "api", apiURL, "Catalog API base URL")
	flag.IntVar(&limit, "limit", models.DefaultLimit, "Projects per page")
	flag.DurationVar(&debounce, "debounce", browse.DefaultDebounce, "Quiet time before a search is sent")
	flag.Parse()

	// Bubble Tea owns the terminal, so logs only go to a file when asked for.
	if path := os.Getenv("CATALOG_BROWSE_LOG"); path != "" {
		f, err := tea.LogToFile(path, "browse")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.DiscardHandler))
	}

	model := browse.New(client.New(apiURL), browse.Options{Limit: limit, Debounce: debounce})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

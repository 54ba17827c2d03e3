// Command prosearch is an interactive terminal search over the
// professional directory.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sps2604/Prosearch-sub001/internal/config"
	"github.com/sps2604/Prosearch-sub001/internal/database"
	"github.com/sps2604/Prosearch-sub001/internal/directory"
	"github.com/sps2604/Prosearch-sub001/internal/logger"
	"github.com/sps2604/Prosearch-sub001/internal/search"
	"github.com/sps2604/Prosearch-sub001/internal/tui"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	location := flag.String("location", "", "only professionals whose address contains this")
	minExp := flag.Float64("min-exp", -1, "minimum years of experience (negative disables)")
	limit := flag.Int("limit", cfg.SearchLimit, "maximum results (1-50)")
	debounce := flag.Duration("debounce", cfg.SearchDebounce, "delay after typing before searching")
	noAuto := flag.Bool("no-auto", false, "only search when enter is pressed")
	byID := flag.Bool("by-id", false, "open profiles by id instead of name")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// stdout belongs to the UI
	log := logger.Discard()

	var db *gorm.DB
	if cfg.DirectoryBackend == config.BackendDatabase {
		var err error
		if db, err = database.Connect(cfg.DatabaseURL); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	dir, closeDir, err := directory.Open(cfg, db, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeDir()

	var experience *float64
	if *minExp >= 0 {
		experience = minExp
	}
	selectKey := search.SelectByName
	if *byID {
		selectKey = search.SelectByID
	}

	var (
		notifier tui.Notifier
		model    *tui.Model
	)
	searcher := search.New(dir,
		search.WithInitialQuery(flag.Arg(0)),
		search.WithLocation(*location),
		search.WithMinExperience(experience),
		search.WithLimit(*limit),
		search.WithDebounce(*debounce),
		search.WithAutoSearch(!*noAuto),
		search.WithSelectKey(selectKey),
		search.WithLogger(log),
		search.WithOnResults(notifier.OnResults),
		search.WithNavigator(func(path string) { model.Navigate(path) }),
	)
	defer searcher.Close()
	model = tui.New(searcher)

	p := tea.NewProgram(model)
	notifier.Attach(p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if path := model.Selected(); path != "" {
		fmt.Println(path)
	}
}

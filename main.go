package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kvural/perftrack/internal/logbuf"
	"github.com/kvural/perftrack/internal/store"
	"github.com/kvural/perftrack/internal/tui"
)

func main() {
	dbFlag := flag.String("db", "", "path to the database file")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	dbPath := *dbFlag
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving data directory: %v\n", err)
			os.Exit(1)
		}
		dbPath = p
	}

	if err := logbuf.Init(filepath.Dir(dbPath), *debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	logbuf.Info("starting up", "db", dbPath)

	p := tea.NewProgram(tui.NewApp(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

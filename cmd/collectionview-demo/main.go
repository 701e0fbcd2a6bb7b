// Command collectionview-demo scrolls a large list, grid or looping pager
// in the terminal. Only the visible rows are ever built.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	cv "github.com/568071718/creator-collection-view"
	"github.com/568071718/creator-collection-view/internal/termhost"
)

var (
	configPath = flag.String("config", "", "TOML config file")
	layout     = flag.String("layout", "", "table, grid or pager (overrides config)")
	items      = flag.Int("items", 0, "number of items (overrides config)")
	mode       = flag.String("mode", "", "recycle or preload (overrides config)")
	logPath    = flag.String("log", "", "write logs to this file")
	logLevel   = flag.String("level", "info", "log level")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "collectionview-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	cfg := termhost.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = termhost.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	if *layout != "" {
		cfg.Layout = *layout
	}
	if *items > 0 {
		cfg.Items = *items
	}
	if *mode != "" {
		if err := cfg.Controller.Mode.UnmarshalText([]byte(*mode)); err != nil {
			return err
		}
	}

	logger, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()
	cv.SetLogger(logger)

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		logger.Info("starting", "layout", cfg.Layout, "items", cfg.Items, "mode", cfg.Controller.Mode, "width", w, "height", h)
	}

	m, err := termhost.New(cfg, termhost.Labels(cfg.Items), logger)
	if err != nil {
		return err
	}
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return err
	}
	return m.Err()
}

// openLog returns a logger writing to -log. Without one, logs are
// discarded since stderr shares the screen.
func openLog() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = io.Discard
	done := func() {}
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, done = f, func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "collectionview",
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, done, nil
}

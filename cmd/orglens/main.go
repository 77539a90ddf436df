package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orglens/orglens/pkg/config"
	"github.com/orglens/orglens/pkg/gateway"
	"github.com/orglens/orglens/pkg/logging"
	"github.com/orglens/orglens/pkg/metrics"
	"github.com/orglens/orglens/pkg/router"
	"github.com/orglens/orglens/pkg/tui"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to the YAML config file")
		serverURL   = flag.String("server", "", "analytics service base URL (overrides config)")
		viewName    = flag.String("view", "graph", "initial view: graph, people, risks, trends, dashboard, chat")
		focusID     = flag.String("focus", "", "person id to select once the graph has loaded")
		metricsAddr = flag.String("metrics-addr", "", "serve client metrics on this address (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	start, err := router.Parse(*viewName)
	if err != nil {
		fail(err)
	}

	logger, closeLog, err := buildLogger(cfg)
	if err != nil {
		fail(err)
	}
	defer closeLog()

	reg := metrics.DefaultRegistry()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := reg.Serve(cfg.MetricsAddr); err != nil {
				logger.Error("metrics listener failed", logging.Error(err))
			}
		}()
	}

	gw := gateway.NewClient(cfg.ServerURL, cfg.RequestTimeout, cfg.StreamTimeout,
		gateway.WithLogger(logger), gateway.WithMetrics(reg))

	logger.Info("starting",
		logging.Endpoint(cfg.ServerURL),
		logging.View(router.Describe(start).TabLabel))

	m := tui.New(cfg, gw, logger, reg, start, *focusID)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail(err)
	}
}

// buildLogger writes to the configured log file, or to stderr when none is
// set. Stdout belongs to the terminal renderer.
func buildLogger(cfg *config.Config) (logging.Logger, func(), error) {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		return logging.NewJSONLogger(os.Stderr, level), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.NewJSONLogger(f, level), func() { f.Close() }, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "orglens:", err)
	os.Exit(1)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/dataquery/internal/assistant"
	"github.com/csheth/dataquery/internal/config"
	"github.com/csheth/dataquery/internal/logger"
	"github.com/csheth/dataquery/internal/markdown"
	"github.com/csheth/dataquery/internal/metrics"
	"github.com/csheth/dataquery/internal/notify"
	"github.com/csheth/dataquery/internal/tui"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file (default: search ., ./configs and the user config dir)")
	envFile := flag.String("env-file", "", "path to a .env file (default: ./.env when present)")
	baseURL := flag.String("url", "", "base URL of the data assistant server (eg. http://localhost:5000)")
	timeout := flag.Duration("timeout", 0, "request timeout for a single question")
	revealInterval := flag.Duration("reveal-interval", 0, "delay between revealed characters of an answer")
	logFile := flag.String("log-file", "", `diagnostic log file, "-" discards logs`)
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address (eg. :9090)")
	markdownStyle := flag.String("markdown-style", "", "glamour style for answers: auto, dark, light or notty")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	cfg, err := config.Load(config.LoadOptions{ConfigFile: *configFile, EnvFile: *envFile})
	if err != nil {
		fmt.Println("failed to load config:", err)
		os.Exit(1)
	}

	// Only flags the user actually passed override the file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.Server.BaseURL = *baseURL
		case "timeout":
			cfg.Server.Timeout = *timeout
		case "reveal-interval":
			cfg.Reveal.Interval = *revealInterval
		case "log-file":
			cfg.Log.File = *logFile
		case "log-level":
			cfg.Log.Level = *logLevel
		case "metrics-addr":
			cfg.Metrics.Addr = *metricsAddr
		case "markdown-style":
			cfg.UI.MarkdownStyle = *markdownStyle
		case "no-alt-screen":
			cfg.UI.AltScreen = !*noAltScreen
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Println("invalid config:", err)
		os.Exit(1)
	}

	logOut, err := logger.Open(cfg.Log.File)
	if err != nil {
		fmt.Println("failed to open log file:", err)
		os.Exit(1)
	}
	defer logOut.Close()
	log := logger.New(logger.FromConfig(cfg.Log.Level, cfg.Log.Format), logOut)
	log.Info("starting data assistant client",
		"base_url", cfg.Server.BaseURL,
		"timeout", cfg.Server.Timeout,
		"reveal_interval", cfg.Reveal.Interval,
	)

	client, err := assistant.New(assistant.Config{
		BaseURL: cfg.Server.BaseURL,
		Timeout: cfg.Server.Timeout,
		Logger:  log,
	})
	if err != nil {
		fmt.Println("failed to create client:", err)
		os.Exit(1)
	}

	var renderer markdown.Renderer
	termRenderer, err := markdown.New(markdown.Options{Style: cfg.UI.MarkdownStyle})
	if err != nil {
		log.LogError(context.Background(), err, "markdown disabled; answers are shown as plain text")
		renderer = markdown.PlainRenderer{}
	} else {
		renderer = termRenderer
	}

	ctx, stopMetrics := context.WithCancel(context.Background())
	defer stopMetrics()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.LogError(ctx, err, "metrics server stopped", "addr", cfg.Metrics.Addr)
			}
		}()
		log.Info("serving metrics", "addr", cfg.Metrics.Addr)
	}

	model := tui.New(tui.Config{
		Client:         client,
		Notifier:       notify.WithLogging(nil, log),
		Renderer:       renderer,
		RevealInterval: cfg.Reveal.Interval,
		Logger:         log,
	})
	defer model.Shutdown()

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(model, opts...)

	started := time.Now()
	if _, err := program.Run(); err != nil {
		log.LogError(ctx, err, "program error")
		fmt.Println("program error:", err)
		os.Exit(1)
	}
	log.Info("exiting", "uptime", time.Since(started).Round(time.Second))
}

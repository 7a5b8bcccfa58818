package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/wesen/grailnav/internal/config"
	"github.com/wesen/grailnav/internal/grailui"
	"github.com/wesen/grailnav/internal/hostgraph"
)

var (
	configPath string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "grailnav [graph.json]",
	Short: "Browse a graph with a minimap navigator",
	Long: brand.Sprint("grailnav") + " shows a graph on a pannable, zoomable canvas with a minimap.\n" +
		subtle.Sprint("Without a file the built-in demo flowchart is shown."),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (.toml or .yaml), default "+config.DefaultPath())
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	rootCmd.AddCommand(
		fitCmd(),
		snapshotCmd(),
		configCmd(),
	)
}

// loadConfig reads --config, or the default config file when present.
// Warnings go to stderr.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings {
		warn.Fprintf(os.Stderr, "config: %s\n", w)
	}
	return cfg, nil
}

// newLogger logs to a file; the terminal belongs to the UI. Without a
// file logs are discarded.
func newLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	path := logFile
	if path == "" {
		path = cfg.Log.File
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel()})
	return slog.New(h), f.Close, nil
}

// loadGraph reads the graph named by args, or the demo.
func loadGraph(args []string) (*hostgraph.Graph, string, error) {
	if len(args) == 0 {
		return hostgraph.Demo(), "", nil
	}
	g, err := hostgraph.LoadFile(args[0])
	if err != nil {
		return nil, "", err
	}
	return g, args[0], nil
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	g, source, err := loadGraph(args)
	if err != nil {
		return err
	}
	engine := hostgraph.NewEngine(g,
		hostgraph.WithLimits(cfg.Limits()),
		hostgraph.WithLogger(log),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model, err := grailui.NewModel(engine, grailui.Options{
		Config:  cfg,
		Logger:  log,
		Source:  source,
		Context: ctx,
	})
	if err != nil {
		return err
	}
	log.Info("starting", "source", source, "nodes", g.Len())

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

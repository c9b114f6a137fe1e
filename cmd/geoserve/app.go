package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bastiangx/geoserve/internal/logger"
	"github.com/bastiangx/geoserve/internal/utils"
	"github.com/bastiangx/geoserve/pkg/config"
	"github.com/bastiangx/geoserve/pkg/dataset"
	"github.com/bastiangx/geoserve/pkg/geo"
	"github.com/bastiangx/geoserve/pkg/server"
	"github.com/bastiangx/geoserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "geoserve"
	gh      = "https://github.com/bastiangx/geoserve"
)

// app is everything a subcommand needs once config and data are loaded.
type app struct {
	cfg        *config.Config
	configPath string
	dataPath   string
	holder     *suggest.Holder
	reload     server.ReloadFunc
	opts       suggest.Options
}

// loadApp reads the config, resolves and loads the dataset and builds the first engine.
func loadApp(configFlag, dataFlag string) (*app, error) {
	cfg, configPath, err := config.LoadConfigWithPriority(configFlag)
	if err != nil {
		return nil, err
	}

	dataPath := cfg.Data.Path
	if dataFlag != "" {
		dataPath = dataFlag
	}
	configDir := ""
	if configPath != "" {
		configDir = filepath.Dir(configPath)
	}
	resolved := utils.ResolveDataPath(dataPath, configDir)
	log.Debugf("Using dataset at: %s", resolved)

	loader := &dataset.Loader{
		Regions:    dataset.MergeRegions(dataset.DefaultRegions(), cfg.Data.Regions),
		SkipHeader: cfg.Data.SkipHeader,
	}
	reload := func() ([]geo.Record, error) {
		return loader.LoadFile(resolved)
	}

	records, err := reload()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	return &app{
		cfg:        cfg,
		configPath: configPath,
		dataPath:   resolved,
		holder:     suggest.NewHolder(suggest.New(records)),
		reload:     reload,
		opts: suggest.Options{
			MinPrefix:    cfg.Server.MinPrefix,
			MaxPrefix:    cfg.Server.MaxPrefix,
			MaxLimit:     cfg.Server.MaxLimit,
			DefaultLimit: cfg.CLI.DefaultLimit,
			Capitalize:   cfg.Server.Capitalize,
		},
	}, nil
}

// reloadOnHangup rebuilds the engine whenever the process receives SIGHUP.
// A failed reload keeps the current engine.
func (a *app) reloadOnHangup() (stop func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-c:
				records, err := a.reload()
				if err != nil {
					log.Errorf("Reload failed, keeping current data: %v", err)
					continue
				}
				a.holder.Reload(records)
				log.Infof("Reloaded %d records", a.holder.Stats()["records"])
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(c)
		close(done)
	}
}

// showStartupInfo displays some basic info about the init process on stderr.
func (a *app) showStartupInfo(mode string) {
	l := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)
	stats := a.holder.Stats()

	l.Print("===========")
	l.Print(" GeoServe ")
	l.Print("===========")
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("mode: %s", mode)
	l.Infof("config: ( %s )", config.GetActiveConfigPath(a.configPath))
	l.Infof("dataset: ( %s )", a.dataPath)
	l.Info("records", "count", stats["records"], "duplicates", stats["duplicates"])
	l.Info("status: ready")
	l.Print("===========")
}

// printVersion renders the version banner.
func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ GeoServe ] City name suggestions by population or distance")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

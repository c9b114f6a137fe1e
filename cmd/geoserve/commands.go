package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/geoserve/internal/cli"
	"github.com/bastiangx/geoserve/internal/logger"
	"github.com/bastiangx/geoserve/pkg/config"
	"github.com/bastiangx/geoserve/pkg/httpapi"
	"github.com/bastiangx/geoserve/pkg/server"
	"github.com/bastiangx/geoserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	config  string
	data    string
	debug   bool
	version bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   AppName,
		Short: "Fast city name suggestions ranked by population or distance",
		Long: `GeoServe suggests North American cities for a typed prefix.
Without a subcommand it serves MessagePack requests on stdin/stdout.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(flags.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.version {
				printVersion()
				return nil
			}
			return runServe(flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.config, "config", "", "Path to a config.toml (default: user config dir)")
	root.PersistentFlags().StringVar(&flags.data, "data", "", "GeoNames TSV dataset (default: [data] path from config)")
	root.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "Toggle debug mode")
	root.Flags().BoolVarP(&flags.version, "version", "v", false, "Show current version")

	root.AddCommand(
		newServeCmd(flags),
		newHTTPCmd(flags),
		newQueryCmd(flags),
		newReplCmd(flags),
		newConfigCmd(flags),
	)
	return root
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MessagePack requests on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags)
		},
	}
}

func runServe(flags *rootFlags) error {
	a, err := loadApp(flags.config, flags.data)
	if err != nil {
		return err
	}
	stop := a.reloadOnHangup()
	defer stop()

	if flags.debug {
		a.showStartupInfo("ipc")
	}
	log.Debug("spawning IPC")
	return server.NewServer(a.holder, a.reload, a.opts).Start()
}

func newHTTPCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the JSON suggestions API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags.config, flags.data)
			if err != nil {
				return err
			}
			stop := a.reloadOnHangup()
			defer stop()

			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}
			if !flags.debug {
				gin.SetMode(gin.ReleaseMode)
			}
			a.showStartupInfo("http " + addr)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return httpapi.NewServer(a.holder, a.opts).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: [http] addr from config)")
	return cmd
}

func newQueryCmd(flags *rootFlags) *cobra.Command {
	var (
		lat, lon float64
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "query <prefix>",
		Short: "Print suggestions for one prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags.config, flags.data)
			if err != nil {
				return err
			}

			q := suggest.Query{Prefix: args[0], Limit: limit}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
				q.Latitude, q.Longitude = &lat, &lon
			}

			suggestions, err := a.opts.Run(a.holder, q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if suggestions == nil {
					suggestions = []suggest.Suggestion{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(suggestions)
			}
			if len(suggestions) == 0 {
				fmt.Fprintf(out, "no cities start with '%s'\n", args[0])
				return nil
			}
			cli.RenderSuggestions(out, suggestions)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude to rank by distance from (needs --lon)")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude to rank by distance from (needs --lat)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Number of suggestions to return (default: [cli] default_limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")
	return cmd
}

func newReplCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Type prefixes interactively and see suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags.config, flags.data)
			if err != nil {
				return err
			}
			return cli.NewInputHandler(a.holder, a.opts, cmd.InOrStdin(), cmd.OutOrStdout()).Start()
		},
	}
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active config file, or rewrite the default one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rebuild {
				if err := config.RebuildConfigFile(); err != nil {
					return fmt.Errorf("failed to rebuild config: %w", err)
				}
			}
			_, path, err := config.LoadConfigWithPriority(flags.config)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.GetActiveConfigPath(path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Overwrite the default config.toml with built-in defaults")
	return cmd
}

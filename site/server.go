// Package main provides a simple web server: it serves files, runs scripts
// and lists directories under a root directory.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/f4ah6o/simple-web-server-go/internal/config"
	"github.com/f4ah6o/simple-web-server-go/internal/logging"
	"github.com/f4ah6o/simple-web-server-go/internal/server"
)

type options struct {
	configPath string
	host       string
	port       int
	dir        string
	verbose    bool
}

func main() {
	cmd, _ := newRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand returns the command together with the options its flags
// are bound to.
func newRootCommand() (*cobra.Command, *options) {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "simple-web-server",
		Short:        "Serve a directory over HTTP",
		Long:         "Serve files under a directory, run scripts and list directories without an index file.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (.toml, .yaml)")
	flags.StringVar(&opts.host, "host", "", "Host to listen on (default all interfaces)")
	flags.IntVarP(&opts.port, "port", "p", 8080, "Port to serve on")
	flags.StringVarP(&opts.dir, "dir", "d", ".", "Directory to serve")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")
	return cmd, opts
}

// loadConfig reads the config file, if any, and lets explicitly set flags
// override it.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.Port = opts.port
	}
	if flags.Changed("dir") {
		cfg.Root = opts.dir
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	absDir, err := filepath.Abs(cfg.Root)
	if err != nil {
		return cfg, fmt.Errorf("failed to resolve directory: %w", err)
	}
	if _, err := os.Stat(absDir); os.IsNotExist(err) {
		return cfg, fmt.Errorf("directory does not exist: %s", absDir)
	}
	cfg.Root = absDir
	return cfg, nil
}

func run(cmd *cobra.Command, cfg config.Config) error {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}

	handler, err := server.NewHandlerFromConfig(cfg, log)
	if err != nil {
		return err
	}
	srv := server.New(cfg.Addr(), server.AccessLog(handler, log), log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "🌐 Serving %s at %s\n",
		color.CyanString(cfg.Root), color.GreenString("http://%s", net.JoinHostPort(host, strconv.Itoa(cfg.Port))))
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return srv.Run(ctx)
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/dougaird/angular-text-extractor/pkg/mcp"
	"github.com/dougaird/angular-text-extractor/pkg/parser"
	"github.com/dougaird/angular-text-extractor/pkg/session"
	"github.com/dougaird/angular-text-extractor/pkg/util"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "ngextract",
		Short:         "Extract user-facing display texts from Angular sources into translation keys",
		Long:          "ngextract scans Angular markup templates and component logic files, classifies string content as display text or code, assigns stable translation keys, and optionally rewrites sources to reference those keys.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text, json")

	newLogger := func() *slog.Logger {
		return util.NewLogger(util.LoggerConfig{
			Level:  util.LogLevel(logLevel),
			Format: util.LogFormat(logFormat),
			Output: os.Stderr,
		})
	}

	root.AddCommand(newExtractCmd(newLogger))
	root.AddCommand(newWatchCmd(newLogger))
	root.AddCommand(newServeCmd(newLogger))
	root.AddCommand(newVersionCmd())

	return root
}

// extractFlags mirrors the session options; empty values fall back to the
// project config file and then the defaults.
type extractFlags struct {
	src              string
	output           string
	locale           string
	prefix           string
	servicePath      string
	include          []string
	exclude          []string
	replace          bool
	skipLogic        bool
	componentContext bool
}

func (f *extractFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.src, "src", "", "Root directory to scan (default: .)")
	cmd.Flags().StringVar(&f.output, "output", "", "Artifact destination path")
	cmd.Flags().StringVar(&f.locale, "locale", "", "Locale tag stored in the artifact")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Root namespace for generated keys")
	cmd.Flags().StringVar(&f.servicePath, "service-path", "", "Shared lookup-service location, relative to --src")
	cmd.Flags().StringSliceVar(&f.include, "include", nil, "Discovery glob patterns, replacing the defaults (e.g. '**/*.html,**/*.ts,**/*.js')")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "Additional discovery exclude glob patterns")
	cmd.Flags().BoolVar(&f.replace, "replace", false, "Rewrite source files in place (default: dry run)")
	cmd.Flags().BoolVar(&f.skipLogic, "skip-logic", false, "Skip component logic (.ts) files")
	cmd.Flags().BoolVar(&f.componentContext, "component-context", false, "Namespace keys with a per-file component token")
}

func newExtractCmd(newLogger func() *slog.Logger) *cobra.Command {
	flags := &extractFlags{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run one extraction session over a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg := resolveConfig(flags, logger)

			sess, err := session.New(cfg, nil, nil, logger)
			if err != nil {
				return err
			}
			defer sess.Close()

			artifact, err := sess.Run()
			if err != nil {
				return err
			}
			return sess.WriteArtifact(artifact)
		},
	}
	flags.register(cmd)
	return cmd
}

func newWatchCmd(newLogger func() *slog.Logger) *cobra.Command {
	flags := &extractFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Extract once, then re-extract whenever sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg := resolveConfig(flags, logger)
			return runWatch(cfg, logger)
		},
	}
	flags.register(cmd)
	return cmd
}

// runWatch keeps one parser manager and file cache alive across runs;
// each change spins up a fresh session so the key counter restarts and
// output stays deterministic.
func runWatch(cfg session.Config, logger *slog.Logger) error {
	pm := parser.NewManager(logger)
	defer pm.Close()

	fc, err := util.NewFileCache(util.DefaultMaxCachedFiles, logger)
	if err != nil {
		return err
	}
	defer fc.Close()

	runOnce := func() {
		sess, err := session.New(cfg, pm, fc, logger)
		if err != nil {
			logger.Error("failed to create session", "error", err)
			return
		}
		artifact, err := sess.Run()
		if err != nil {
			logger.Error("extraction failed", "error", err)
			return
		}
		if err := sess.WriteArtifact(artifact); err != nil {
			logger.Error("failed to write artifact", "error", err)
		}
	}

	runOnce()

	watcher, err := session.NewWatcher(session.DefaultWatchOptions(), func(path string) {
		fc.Invalidate(path)
		logger.Info("change detected, re-extracting", "file", path)
		runOnce()
	}, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(cfg.SrcPath); err != nil {
		return err
	}
	defer watcher.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}

func newServeCmd(newLogger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			pm := parser.NewManager(logger)
			defer pm.Close()

			srv := mcpserver.NewServer(pm, logger)
			return srv.ServeStdio()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ngextract %s\n", version)
		},
	}
}

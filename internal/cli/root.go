// Package cli contains the command line wiring of ftpls.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gonzalop/ftpengine"
	"github.com/gonzalop/ftpengine/client"
)

var rootCmd = &cobra.Command{
	Use:           "ftpls [flags] host[:port]",
	Short:         "List a directory on an FTP server",
	Long:          "ftpls logs in to an FTP server, optionally reports its system type and working directory, and prints the Unix listing of the working directory.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.PersistentFlags(), args)
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.Debug)
		return run(cmd.OutOrStdout(), cfg, logger)
	},
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run performs one listing session against cfg.Address and writes the
// results to out.
func run(out io.Writer, cfg *Config, logger *slog.Logger) error {
	lineEnding, err := ftpengine.ParseLineEnding(cfg.LineEnding)
	if err != nil {
		return err
	}

	c, err := client.Dial(cfg.Address,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger),
		client.WithLineEnding(lineEnding),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Login(cfg.User, cfg.Password); err != nil {
		return err
	}

	if cfg.ShowSystem {
		system, err := c.System()
		if err != nil {
			return fmt.Errorf("failed to get system type: %w", err)
		}
		fmt.Fprintf(out, "System: %s\n", system)
	}
	if cfg.ShowPwd {
		dir, err := c.CurrentDir()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		fmt.Fprintf(out, "Directory: %s\n", dir)
	}

	entries, err := c.List()
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}
	logger.Debug("listing parsed", "entries", len(entries))
	return renderListing(out, entries, colorEnabled(out, cfg.NoColor))
}

// RegisterFlags registers the flags of the root command. It replaces an init
// function so that callers control ordering.
func RegisterFlags() {
	registerFlags(rootCmd.PersistentFlags())
}

// Execute sets the version and runs the root command.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

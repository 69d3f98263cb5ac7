// Package cli implements the tabledata command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/tabledata/internal/codec"
	"github.com/JonMunkholm/tabledata/internal/config"
	"github.com/JonMunkholm/tabledata/internal/core"
	"github.com/JonMunkholm/tabledata/internal/logging"
	"github.com/JonMunkholm/tabledata/internal/table"
)

type app struct {
	cfg     *config.Config
	dataDir string
	level   string
	out     io.Writer

	session *core.Session[*table.Frame]
}

// NewRootCmd builds the command tree writing results to out and logs to
// errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "tabledata",
		Short: "Import, persist and inspect tabular data files",
		Long: `tabledata reads CSV and Excel files into named tables and persists them
under a data directory as csv, xlsx, xls or pickle files.

Settings come from CONFIG_FILE, .env and environment variables (DATA_DIR,
DATA_FILE_FORMAT, LOG_LEVEL, ...). Flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg

			// Quiet by default; LOG_LEVEL or --log-level turn logs up.
			level := a.level
			if _, ok := os.LookupEnv("LOG_LEVEL"); ok && !cmd.Flags().Changed("log-level") {
				level = cfg.Logging.Level
			}
			logging.SetupWriter(errOut, level, cfg.Logging.Format)

			dir := cfg.Storage.Dir
			if cmd.Flags().Changed("data-dir") {
				dir = a.dataDir
			}

			a.session, err = codec.NewSession(dir)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.session != nil {
				a.session.Close()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&a.dataDir, "data-dir", "d", core.DefaultBaseDir, "directory holding persisted tables")
	root.PersistentFlags().StringVar(&a.level, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newImportCmd(a),
		newLoadCmd(a),
		newListCmd(a),
		newConvertCmd(a),
	)
	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	root := NewRootCmd(out, errOut)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Debug("command failed", "error", err)
		return err
	}
	return nil
}

// formatFlag resolves a --format value, falling back to the configured
// default.
func (a *app) formatFlag(value string) (core.Format, error) {
	if value == "" {
		return a.cfg.DataFormat(), nil
	}
	return core.ParseFormat(value)
}

// UserMessage renders err for the terminal with its support code.
func UserMessage(err error) string {
	if core.IsUserFacing(err) {
		return fmt.Sprintf("%s\n  %s", core.FormatUserError(err), err)
	}
	return err.Error()
}

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/tabledata/internal/ingest"
	"github.com/JonMunkholm/tabledata/internal/table"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		key, format, sheet, encoding, sep string
		skipRows                          int
		noHeader                          bool
		useCols                           []string
	)

	cmd := &cobra.Command{
		Use:     "import <file>",
		Short:   "Read a CSV or Excel file and save it to the data directory",
		Example: `  tabledata import sales.csv --format pickle
  tabledata import book.xlsx --sheet Prices --key prices
  tabledata import export.csv --encoding shift_jis --sep ';'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			f, err := a.formatFlag(format)
			if err != nil {
				return err
			}

			opts := []ingest.Option{
				ingest.WithEncoding(encoding),
				ingest.WithSkipRows(skipRows),
			}
			if sep != "" {
				r := []rune(sep)
				if len(r) != 1 {
					return fmt.Errorf("--sep must be a single character, got %q", sep)
				}
				opts = append(opts, ingest.WithSeparator(r[0]))
			}
			if noHeader {
				opts = append(opts, ingest.WithNoHeader())
			}
			if len(useCols) > 0 {
				opts = append(opts, ingest.WithUseCols(useCols...))
			}

			typ, err := ingest.DetectType(path)
			if err != nil {
				return err
			}

			var frame *table.Frame
			if typ.IsSpreadsheet() && sheet != "" {
				frame, err = ingest.ReadExcel(path, ingest.SheetName(sheet), opts...)
			} else {
				frame, err = ingest.ReadFile(path, opts...)
			}
			if err != nil {
				return err
			}

			if key == "" {
				base := filepath.Base(path)
				key = strings.TrimSuffix(base, filepath.Ext(base))
			}
			if err := a.session.Store.Add(key, frame); err != nil {
				return err
			}

			saved, err := a.session.Persist(key, f)
			if err != nil {
				return err
			}

			rows, cols := frame.Shape()
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d rows, %d columns) -> %s\n", key, rows, cols, saved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "table name (default: file name without extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "save format: csv, xlsx, xls, pickle (default: DATA_FILE_FORMAT)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name for Excel files (default: first sheet)")
	cmd.Flags().StringVar(&encoding, "encoding", ingest.DefaultEncoding, "CSV text encoding")
	cmd.Flags().StringVar(&sep, "sep", "", "CSV field separator (default: ',' or tab for .tsv)")
	cmd.Flags().IntVar(&skipRows, "skip-rows", 0, "records to skip before the header")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first record as data")
	cmd.Flags().StringSliceVar(&useCols, "usecols", nil, "columns to keep, in order")
	return cmd
}

func newLoadCmd(a *app) *cobra.Command {
	var (
		format, output string
		limit          int
	)

	cmd := &cobra.Command{
		Use:   "load <key>",
		Short: "Print a persisted table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(output); err != nil {
				return err
			}
			f, err := a.formatFlag(format)
			if err != nil {
				return err
			}

			frame, err := a.session.Restore(args[0], f)
			if err != nil {
				return err
			}
			return printFrame(cmd.OutOrStdout(), frame, limit, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "file format: csv, xlsx, xls, pickle (default: DATA_FILE_FORMAT)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output: table, json, yaml")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "rows to print (0 for all)")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List files in the data directory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.session.Manager.ListFiles()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no saved data in %s\n", a.session.Manager.BaseDir())
				return nil
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func newConvertCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:     "convert <key>",
		Short:   "Re-save a persisted table in another format",
		Example: `  tabledata convert sales --from csv --to pickle`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			src, err := a.formatFlag(from)
			if err != nil {
				return err
			}
			dst, err := a.formatFlag(to)
			if err != nil {
				return err
			}

			if _, err := a.session.Restore(key, src); err != nil {
				return err
			}
			path, err := a.session.Persist(key, dst)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "converted %s: %s -> %s (%s)\n", key, src, dst, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source format (default: DATA_FILE_FORMAT)")
	cmd.Flags().StringVar(&to, "to", "", "target format")
	cmd.MarkFlagRequired("to")
	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spektr-org/hrquery"
	"github.com/spektr-org/hrquery/engine"
	"github.com/spektr-org/hrquery/helpers"
)

// ── Output format ─────────────────────────────────────────────────────────

type outputFormat string

const (
	formatJSON   outputFormat = "json"
	formatPretty outputFormat = "pretty"
	formatCSV    outputFormat = "csv"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(v string) error {
	switch outputFormat(v) {
	case formatJSON, formatPretty, formatCSV:
		*f = outputFormat(v)
		return nil
	}
	return fmt.Errorf("unknown format %q (want json, pretty or csv)", v)
}

func (f *outputFormat) Type() string { return "format" }

// ── ask ───────────────────────────────────────────────────────────────────

func newAskCmd(a *app) *cobra.Command {
	format := formatJSON
	var outFile string

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Answer one question and print the result",
		Example: `  hrquery ask "show me all employees in Sales"
  hrquery ask "who is the manager of Engineering" --format pretty
  hrquery ask "list all employees hired after 2023-01-01" --format csv --out hires.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return a.runAsk(cmd, strings.Join(args, " "), format, w)
		},
	}

	cmd.Flags().VarP(&format, "format", "f", "Output format: json, pretty, csv")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write output to file instead of stdout")
	return cmd
}

func (a *app) runAsk(cmd *cobra.Command, query string, format outputFormat, w io.Writer) error {
	if strings.TrimSpace(query) == "" {
		return engine.ErrEmptyQuery()
	}

	st, err := a.openStore(cmd)
	if err != nil {
		return err
	}

	res, err := hrquery.Ask(cmd.Context(), st, query, a.logger)
	if err != nil {
		return err
	}

	switch format {
	case formatCSV:
		return helpers.WriteCSV(w, res)
	default:
		enc := json.NewEncoder(w)
		if format == formatPretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(engine.Shape(res))
	}
}

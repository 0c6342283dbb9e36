package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/usestring/schemamap/internal/batch"
	"github.com/usestring/schemamap/internal/config"
	"github.com/usestring/schemamap/internal/report"
	"github.com/usestring/schemamap/internal/version"
	"github.com/usestring/schemamap/pkg/schemamap"
	"github.com/usestring/schemamap/pkg/source"
)

type rootOptions struct {
	cfg *config.Config

	format     string
	selectExpr string
	parseDates bool
	bigInts    bool
	output     string
	merge      string
	workers    int
	quiet      bool
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	o := &rootOptions{cfg: cfg}

	cmd := &cobra.Command{
		Use:   "schemamap [flags] [FILE...]",
		Short: "Infer a flat path-to-type schema from JSON, NDJSON, YAML or XML documents",
		Long: `schemamap reads documents from the given files (or standard input when no
file or "-" is given) and prints one entry per field path, for example
"user.address.city": "string". Documents are merged into a single schema; the
first type seen for a path wins.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          o.run,
	}
	cmd.CompletionOptions.HiddenDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&o.format, "format", "f", string(source.Auto), "input format: auto, json, ndjson, yaml or xml")
	flags.StringVarP(&o.selectExpr, "select", "s", "", "jq expression applied to each document before mapping")
	flags.BoolVar(&o.parseDates, "parse-dates", cfg.ParseDates, "map ISO-8601 strings as date")
	flags.BoolVar(&o.bigInts, "big-ints", cfg.BigInts, "map integers beyond 64 bits as bigint")
	flags.StringVarP(&o.output, "output", "o", string(report.OutputJSON), "output: json, table or jsonschema")
	flags.StringVarP(&o.merge, "merge", "m", "", "schema JSON file to start from")
	flags.IntVarP(&o.workers, "workers", "w", cfg.DecodeWorkers, "number of inputs decoded in parallel")
	flags.BoolVarP(&o.quiet, "quiet", "q", false, "do not print the summary line")

	cmd.AddCommand(newVersionCommand())
	return cmd
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	out, err := report.ParseOutput(o.output)
	if err != nil {
		return err
	}
	format, err := source.ParseFormat(o.format)
	if err != nil {
		return err
	}

	opts := o.cfg.SourceOptions()
	opts.Format = format
	opts.Select = o.selectExpr
	opts.ParseDates = o.parseDates
	opts.BigInts = o.bigInts

	dec, err := source.NewDecoder(opts)
	if err != nil {
		return err
	}

	var acc *schemamap.Schema
	if o.merge != "" {
		acc, err = loadSchema(o.merge)
		if err != nil {
			return err
		}
	}

	if len(args) == 0 {
		args = []string{batch.StdinName}
	}
	inputs := make([]batch.Input, len(args))
	for i, arg := range args {
		if arg == batch.StdinName {
			inputs[i] = batch.ReaderInput(batch.StdinName, cmd.InOrStdin())
			continue
		}
		inputs[i] = batch.FileInput(arg)
	}

	res, err := batch.New(dec, o.workers).Run(cmd.Context(), inputs, acc)
	if err != nil {
		return err
	}

	if err := report.Write(cmd.OutOrStdout(), out, res.Schema); err != nil {
		return err
	}
	if !o.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), report.Summary(res.Inputs, res.Documents, res.Schema.Len()))
	}
	return nil
}

// loadSchema reads a schema previously written with --output json.
func loadSchema(path string) (*schemamap.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading merge schema: %w", err)
	}
	schema := schemamap.NewSchema()
	if err := json.Unmarshal(data, schema); err != nil {
		return nil, fmt.Errorf("parsing merge schema %s: %w", path, err)
	}
	return schema, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
		},
	}
}

package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/214zzl995/perfcharts/log"
)

var (
	rootShort = "Chart and summarize resource monitor CSV files."
	rootLong  = `
		Load every CSV file matching a glob pattern, group the samples by test mode and
		write a heatmap figure, a time series figure and a text report into the output
		directory.

		The mode of a file is taken from its path: the directory before a "run_" component
		when present, otherwise the file name with the monitor noise stripped.`
	rootExample = `
		# Chart every *_monitor.csv file in the current directory
		perfcharts

		# Chart nested runs into a custom directory
		perfcharts --data "results/**/*_monitor.csv" --output charts`
)

// Flags are converted to Options before a run
type Flags struct {
	Data   string
	Output string
}

// NewFlags returns the flag defaults
func NewFlags() *Flags {
	return &Flags{
		Data:   DefaultPattern,
		Output: DefaultOutputDir,
	}
}

// AddFlags registers flags for a cli
func (flags *Flags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flags.Data, "data", "d", flags.Data,
		"Glob pattern of the monitor CSV files to load. ** matches nested directories.")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", flags.Output,
		"Directory the charts and report are written to.")
}

// ToOptions validates the flags and builds run options
func (flags *Flags) ToOptions() (Options, error) {
	if flags.Data == "" {
		return Options{}, errors.New("--data must not be empty")
	}
	if flags.Output == "" {
		return Options{}, errors.New("--output must not be empty")
	}
	opts := DefaultOptions()
	opts.Pattern = flags.Data
	opts.OutputDir = flags.Output
	return opts, nil
}

// NewRootCommand builds the perfcharts command
func NewRootCommand() *cobra.Command {
	flags := NewFlags()
	cmd := &cobra.Command{
		Use:           "perfcharts",
		Short:         rootShort,
		Long:          rootLong,
		Example:       rootExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.ToOptions()
			if err != nil {
				return err
			}
			res, err := Run(opts)
			if errors.Is(err, ErrNoData) {
				log.Warn("Nothing to chart: %s", err)
				return nil
			}
			if err != nil {
				return err
			}
			log.Info("Charted %d records of modes %s into %s (%s)",
				res.Records, strings.Join(res.Modes, ", "), res.OutputDir, res.Summary())
			return nil
		},
	}
	flags.AddFlags(cmd)
	return cmd
}

func main() {
	defer log.Sync()

	if err := NewRootCommand().Execute(); err != nil {
		log.Error("%s", err)
		log.Sync()
		os.Exit(1)
	}
}

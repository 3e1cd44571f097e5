package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/incipit/pae"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

type globalOptions struct {
	strict   bool
	mensural bool
	verbose  int
	logPath  string
}

func (o *globalOptions) parserOptions() []pae.Option {
	var opts []pae.Option
	if o.strict {
		opts = append(opts, pae.WithStrict())
	}
	if o.mensural {
		opts = append(opts, pae.WithMensural())
	}
	return opts
}

// configureLogging keeps the parser quiet unless -v is given, as
// commands print diagnostics themselves.
func (o *globalOptions) configureLogging() {
	verbosity := -4
	if o.verbose > 0 {
		verbosity = o.verbose - 2
	}
	var path *string
	if o.logPath != "" {
		path = &o.logPath
	}
	commonlog.Configure(verbosity, path)
}

func main() {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "incipit",
		Short:         "Plaine & Easie incipit parser",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.configureLogging()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "fail on the first diagnostic")
	rootCmd.PersistentFlags().BoolVar(&opts.mensural, "mensural", false, "read meter changes as mensuration signs")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "log verbosity (repeat for more)")
	rootCmd.PersistentFlags().StringVar(&opts.logPath, "log", "", "log to file instead of stderr")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newTokensCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))
	rootCmd.AddCommand(newReplCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// readRecord reads an incipit file, or standard input for "-".
func readRecord(filename string) (pae.Record, error) {
	var content []byte
	var err error
	if filename == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	rec, err := pae.ReadRecord(filename, content)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return rec, nil
}

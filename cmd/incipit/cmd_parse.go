package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/incipit/format"
	"github.com/dhamidi/incipit/pae"
	"github.com/spf13/cobra"
)

func newParseCmd(opts *globalOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse an incipit and print the document tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := readRecord(args[0])
			if err != nil {
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "yaml":
				encoder = format.NewYAMLEncoder(os.Stdout)
			case "line":
				encoder = format.NewLineEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			result, err := pae.New(opts.parserOptions()...).Parse(rec)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			for _, d := range result.Diagnostics {
				fmt.Fprintln(os.Stderr, d)
			}

			if err := encoder.Encode(result.Doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, yaml, line)")

	return cmd
}

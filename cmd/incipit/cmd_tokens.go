package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/incipit/pae"
	"github.com/spf13/cobra"
)

func newTokensCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the resolved token stream of an incipit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := readRecord(args[0])
			if err != nil {
				return err
			}

			p := pae.New(opts.parserOptions()...)
			_, parseErr := p.Parse(rec)
			fmt.Print(p.Resolved())
			for _, d := range p.Diagnostics() {
				fmt.Fprintln(os.Stderr, d)
			}
			return parseErr
		},
	}
}

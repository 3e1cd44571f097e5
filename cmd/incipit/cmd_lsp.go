package main

import (
	"github.com/dhamidi/incipit/workspace"
	"github.com/spf13/cobra"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := workspace.NewLSPServer(version, opts.parserOptions()...)
			return server.RunStdio()
		},
	}
}

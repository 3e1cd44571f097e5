package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhamidi/incipit/pae"
	"github.com/dhamidi/incipit/workspace"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Report the diagnostics of incipit files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return watchDir(os.Stdout, args[0], opts)
			}

			failed := 0
			for _, arg := range args {
				ws := workspace.New(arg, opts.parserOptions()...)
				info, err := os.Stat(arg)
				if err != nil {
					return err
				}
				if info.IsDir() {
					if err := ws.ScanAll(); err != nil {
						return err
					}
				} else if _, err := ws.ScanFile(arg); err != nil {
					return err
				}
				for _, f := range ws.Files() {
					printFile(os.Stdout, f)
					if f.HasErrors() {
						failed++
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) with errors", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-check files in the directory when they change")

	return cmd
}

func watchDir(w io.Writer, dir string, opts *globalOptions) error {
	ws := workspace.New(dir, opts.parserOptions()...)
	watcher := workspace.NewFileWatcher(ws, workspace.OnChange(func(f *workspace.FileInfo) {
		if f.OK() {
			fmt.Fprintf(w, "%s: ok\n", f.Path)
			return
		}
		printFile(w, f)
	}))
	watcher.Start()
	defer watcher.Stop()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)
	<-sigc
	return nil
}

func printFile(w io.Writer, f *workspace.FileInfo) {
	for _, d := range f.Diagnostics {
		pos := workspace.Locate(f.Content, f.Record, d)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", f.Path, pos.Line+1, pos.Character+1, d.Severity, d.Message)
	}
	if f.ParseErr != nil && len(f.Diagnostics) == 0 {
		fmt.Fprintf(w, "%s: %s: %s\n", f.Path, pae.SeverityError, f.ParseErr)
	}
}

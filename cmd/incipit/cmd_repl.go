package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/incipit/format"
	"github.com/dhamidi/incipit/pae"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const historyFile = ".incipit_history"

func newReplCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse data strings interactively",
		Long: `Parse data strings interactively.

Lines starting with @ set a record key (@clef: G-2) for the following
data lines. :tokens toggles the token table, :reset clears the keys and
:quit exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(os.Stdout, opts)
		},
	}
}

func runRepl(w io.Writer, opts *globalOptions) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	r := &repl{w: w, rec: pae.Record{}, opts: opts.parserOptions()}
	for {
		line, err := ln.Prompt("pae> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(w)
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if !r.eval(line) {
			return nil
		}
	}
}

type repl struct {
	w          io.Writer
	rec        pae.Record
	opts       []pae.Option
	showTokens bool
}

// eval handles one input line and reports whether to continue.
func (r *repl) eval(line string) bool {
	switch {
	case line == ":quit":
		return false
	case line == ":tokens":
		r.showTokens = !r.showTokens
		fmt.Fprintf(r.w, "tokens %v\n", r.showTokens)
		return true
	case line == ":reset":
		r.rec = pae.Record{}
		return true
	case strings.HasPrefix(line, ":"):
		fmt.Fprintln(r.w, "unknown command. Type :quit to exit.")
		return true
	case pae.IsAtRecord(line):
		rec, err := pae.ParseRecord(line)
		if err != nil {
			fmt.Fprintln(r.w, err)
			return true
		}
		for k, v := range rec {
			r.rec[k] = v
		}
		return true
	}

	rec := pae.NewRecord(line)
	for k, v := range r.rec {
		if k != pae.KeyData {
			rec[k] = v
		}
	}
	p := pae.New(r.opts...)
	result, err := p.Parse(rec)
	if r.showTokens {
		fmt.Fprint(r.w, p.Resolved())
	}
	for _, d := range p.Diagnostics() {
		fmt.Fprintln(r.w, d)
	}
	if err != nil {
		fmt.Fprintln(r.w, err)
		return true
	}
	fmt.Fprint(r.w, format.Line(result.Doc.Score))
	return true
}

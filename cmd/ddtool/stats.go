// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"io"
	"os"

	"github.com/dalzilio/ddd"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// printStats writes the statistics of m in w. Titles are printed in color when
// force is set or when w is a terminal.
func printStats(w io.Writer, m *ddd.Manager, force bool) {
	title := color.New(color.Bold, color.FgCyan)
	alert := color.New(color.FgRed)
	if force || isTerminal(w) {
		title.EnableColor()
		alert.EnableColor()
	} else {
		title.DisableColor()
		alert.DisableColor()
	}
	st := m.Statistics()
	title.Fprintln(w, "statistics")
	st.Fprint(w)
	if st.Errors > 0 {
		alert.Fprintf(w, "%d errors, first one: %s\n", st.Errors, m.Error())
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

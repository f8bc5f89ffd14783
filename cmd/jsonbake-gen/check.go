package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/jsonbake/bake/codegen"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: check takes no arguments, got %v", cli.ErrUsage, args)
	}
	context := cfg.Context
	if context <= 0 {
		context = 3
	}
	g, log, err := cfg.generator()
	if err != nil {
		return err
	}
	results, err := g.Run()
	if err != nil {
		return err
	}
	colors := newDiffColors(isTerminal(cc.Out))
	failed := false
	for _, res := range results {
		if !reportErrors(log, res) {
			failed = true
		}
		d, err := res.Check()
		if err != nil {
			return err
		}
		if !d.Stale() {
			log.Debug("up to date", "file", d.Path)
			continue
		}
		failed = true
		renderDrift(cc.Out, d, context, colors)
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type diffColors struct {
	header, del, ins, elided *color.Color
}

func newDiffColors(enabled bool) *diffColors {
	c := &diffColors{
		header: color.New(color.Bold),
		del:    color.New(color.FgRed),
		ins:    color.New(color.FgGreen),
		elided: color.New(color.FgCyan),
	}
	for _, col := range []*color.Color{c.header, c.del, c.ins, c.elided} {
		if enabled {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// renderDrift prints d as a unified-style diff from the file on disk to the
// generated code.
func renderDrift(w io.Writer, d *codegen.Drift, context int, colors *diffColors) {
	colors.header.Fprintf(w, "--- %s\n", d.Path)
	colors.header.Fprintf(w, "+++ %s (generated)\n", d.Path)
	for _, l := range d.Lines(context) {
		switch {
		case l.Elided > 0:
			colors.elided.Fprintf(w, "@@ %d unchanged lines @@\n", l.Elided)
		case l.Op == diffpatch.DiffDelete:
			colors.del.Fprintf(w, "-%s\n", l.Text)
		case l.Op == diffpatch.DiffInsert:
			colors.ins.Fprintf(w, "+%s\n", l.Text)
		default:
			fmt.Fprintf(w, " %s\n", l.Text)
		}
	}
}

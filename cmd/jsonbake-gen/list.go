package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsonbake/bake/codegen"
	"github.com/signadot/jsonbake/bake/schema"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: list takes no arguments, got %v", cli.ErrUsage, args)
	}
	g, log, err := cfg.generator()
	if err != nil {
		return err
	}
	results, err := g.Run()
	if err != nil {
		return err
	}
	for _, res := range results {
		reportErrors(log, res)
		listPackage(cc.Out, res.Package)
	}
	return nil
}

func listPackage(w io.Writer, ps *codegen.PackageSchemas) {
	for _, ts := range ps.Types {
		fmt.Fprintf(w, "%s.%s\t%s\n", ps.Path, ts.Name, ts.Pos)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, m := range ts.Members {
			fmt.Fprintf(tw, "  %s\t%q\t%s\t%s\n", m.MemberName, m.WireName, m.Kind, handling(m))
		}
		tw.Flush()
	}
}

func handling(m *schema.MemberSchema) string {
	s := fmt.Sprintf("null=%s default=%s", m.NullHandling, m.DefaultHandling)
	if m.DefaultValue != "" {
		s += " value=" + m.DefaultValue
	}
	if m.Nested != nil {
		s += " converter=" + m.Nested.Obj().Name()
	}
	return s
}

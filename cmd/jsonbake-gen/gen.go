package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsonbake/bake/codegen"
)

func gen(cfg *GenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Gen.Parse(cc, args)
	if err != nil {
		cfg.Gen.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: gen takes no arguments, got %v", cli.ErrUsage, args)
	}
	g, log, err := cfg.generator()
	if err != nil {
		return err
	}
	results, err := g.Run()
	if err != nil {
		return err
	}
	failed := false
	for _, res := range results {
		if !writeResult(cc.Out, log, res) {
			failed = true
		}
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// writeResult writes the generated file of res and reports its
// configuration errors. It returns false if anything went wrong.
func writeResult(w io.Writer, log *slog.Logger, res *codegen.Result) bool {
	ok := reportErrors(log, res)
	if res.Code == nil {
		log.Debug("no marked types", "package", res.Package.Path)
		return ok
	}
	if err := res.Write(); err != nil {
		log.Error("write failed", "package", res.Package.Path, "error", err)
		return false
	}
	fmt.Fprintf(w, "%s: %d types\n", res.Output, len(res.Package.Types))
	return ok
}

func reportErrors(log *slog.Logger, res *codegen.Result) bool {
	if res.Err == nil {
		return true
	}
	for _, err := range splitErrors(res.Err) {
		log.Error("type skipped", "package", res.Package.Path, "error", err)
	}
	return false
}

func splitErrors(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range j.Unwrap() {
			out = append(out, splitErrors(e)...)
		}
		return out
	}
	return []error{err}
}

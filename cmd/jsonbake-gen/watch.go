package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/scott-cotton/cli"
	"github.com/signadot/jsonbake/bake/codegen"
)

func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		cfg.Watch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: watch takes no arguments, got %v", cli.ErrUsage, args)
	}
	g, log, err := cfg.generator()
	if err != nil {
		return err
	}
	pkgs, err := g.Packages()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	for _, pkg := range pkgs {
		if err := watcher.Add(pkg.Dir); err != nil {
			return fmt.Errorf("watch %s: %w", pkg.Dir, err)
		}
		regenerate(g, log, cc.Out, pkg.Dir)
	}
	log.Info("watching", "packages", len(pkgs))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	w := &watchLoop{
		gen:    g,
		log:    log,
		out:    cc.Out,
		settle: cfg.Settle,
	}
	return w.run(ctx, watcher.Events, watcher.Errors)
}

// watchLoop regenerates the packages whose sources change, once the changes
// have settled.
type watchLoop struct {
	gen    *codegen.Generator
	log    *slog.Logger
	out    io.Writer
	settle time.Duration
}

func (w *watchLoop) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	pending := map[string]bool{}
	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !isSourceEvent(event, w.gen.Config().Output) {
				continue
			}
			w.log.Debug("source changed", "file", event.Name, "op", event.Op.String())
			pending[filepath.Dir(event.Name)] = true
			timer.Reset(w.settle)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.log.Error("watch error", "error", err)
		case <-timer.C:
			w.gen.Reset()
			for dir := range pending {
				regenerate(w.gen, w.log, w.out, dir)
				delete(pending, dir)
			}
		}
	}
}

// isSourceEvent reports whether event writes or creates a Go source file
// other than a test or the generated output.
func isSourceEvent(event fsnotify.Event, output string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if !strings.HasSuffix(base, ".go") || strings.HasSuffix(base, "_test.go") {
		return false
	}
	return base != output
}

func regenerate(g *codegen.Generator, log *slog.Logger, out io.Writer, dir string) {
	res, err := g.Package(dir)
	if err != nil {
		log.Error("generate failed", "dir", dir, "error", err)
		return
	}
	writeResult(out, log, res)
}

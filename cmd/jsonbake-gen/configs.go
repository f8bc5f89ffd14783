package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsonbake/bake/codegen"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='generator config file (default: jsonbake.yaml in the scanned directory)'"`
	Dir        string `cli:"name=dir desc='directory to scan (default: current directory)'"`
	Recursive  bool   `cli:"name=recursive desc='scan subdirectories recursively'"`
	Output     string `cli:"name=o desc='name of the generated file in each package (default: jsonbake_gen.go)'"`
	Filter     string `cli:"name=filter desc='expr expression over Name, Package, Path and Fields selecting types'"`
	Verbose    bool   `cli:"name=v desc='log debug messages'"`

	Main *cli.Command
}

// genConfig loads the config file, if any, and applies the flags over it.
func (cfg *MainConfig) genConfig() (*codegen.Config, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	path := cfg.ConfigFile
	if path == "" {
		path, _ = codegen.FindConfig(dir)
	}
	gc := codegen.DefaultConfig()
	if path != "" {
		var err error
		gc, err = codegen.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Dir != "" {
		gc.Dir = cfg.Dir
	}
	if cfg.Recursive {
		gc.Recursive = true
	}
	if cfg.Output != "" {
		gc.Output = cfg.Output
	}
	if cfg.Filter != "" {
		gc.Filter = cfg.Filter
	}
	return gc, nil
}

func (cfg *MainConfig) generator() (*codegen.Generator, *slog.Logger, error) {
	gc, err := cfg.genConfig()
	if err != nil {
		return nil, nil, err
	}
	log := newLog(cfg.Verbose)
	g, err := codegen.NewGenerator(gc, log)
	if err != nil {
		return nil, nil, err
	}
	return g, log, nil
}

type GenConfig struct {
	*MainConfig

	Gen *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Context int `cli:"name=context desc='unchanged lines shown around each change (default 3)'"`

	Check *cli.Command
}

type ListConfig struct {
	*MainConfig

	List *cli.Command
}

type WatchConfig struct {
	*MainConfig
	Settle time.Duration

	Watch *cli.Command
}

func (cfg *WatchConfig) mkSettle() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Settle = d
		return d, nil
	})
}

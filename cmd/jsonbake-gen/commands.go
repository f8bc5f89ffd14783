package main

import (
	"time"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jsonbake-gen").
		WithSynopsis("jsonbake-gen [opts] command [opts]").
		WithDescription("jsonbake-gen generates JSON converters for structs marked with //jsonbake:generate.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bakeMain(cfg, cc, args)
		}).
		WithSubs(
			GenCommand(cfg),
			CheckCommand(cfg),
			ListCommand(cfg),
			WatchCommand(cfg))
}

func GenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GenConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("gen").
		WithAliases("g").
		WithSynopsis("gen").
		WithDescription("generate converters and write them next to the scanned packages").
		WithRun(func(cc *cli.Context, args []string) error {
			return gen(cfg, cc, args)
		})
	cfg.Gen = cmd
	return cmd
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("check").
		WithAliases("c").
		WithSynopsis("check [-context n]").
		WithDescription("report generated files that are missing or out of date, exiting 1 if any are").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("list").
		WithAliases("l", "ls").
		WithSynopsis("list").
		WithDescription("list marked types with their members and wire names").
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
	cfg.List = cmd
	return cmd
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg, Settle: 200 * time.Millisecond}
	settleOpt := &cli.Opt{
		Name:        "settle",
		Description: "quiet period after a change before regenerating",
		Type:        cli.NamedFuncOpt(cfg.mkSettle(), "(duration)"),
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, settleOpt)
	cmd := cli.NewCommand("watch").
		WithAliases("w").
		WithSynopsis("watch [-settle duration]").
		WithDescription("generate, then regenerate packages as their sources change").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
	cfg.Watch = cmd
	return cmd
}

// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "ddtool").
		WithSynopsis("ddtool [opts] command [opts]").
		WithDescription("ddtool computes state spaces with decision diagrams.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ddMain(cfg, cc, args)
		}).
		WithSubs(
			ReachCommand(cfg),
			HanoiCommand(cfg))
}

func ReachCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReachConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Reach, "reach").
		WithAliases("r").
		WithSynopsis("reach [-p n] -f model.yaml").
		WithDescription("compute the reachable states of a model").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return reach(cfg, cc, args)
		})
}

func HanoiCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HanoiConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Hanoi, "hanoi").
		WithAliases("h").
		WithSynopsis("hanoi [-rings n] [-poles n] [-sdd]").
		WithDescription("compute the configurations of the Towers of Hanoi").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return hanoi(cfg, cc, args)
		})
}

func ddMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Verbose < 0 {
		return fmt.Errorf("%w: verbosity must be positive", cli.ErrUsage)
	}
	log, sync, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer sync()
	cfg.log = log
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"

	"github.com/dalzilio/ddd"
	"github.com/dalzilio/ddd/model"
	"github.com/scott-cotton/cli"
)

func reach(cfg *ReachConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Reach.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.File == "" && len(args) == 1 {
		cfg.File = args[0]
	}
	if cfg.File == "" {
		return fmt.Errorf("%w: missing model file", cli.ErrUsage)
	}
	mdl, err := model.Load(cfg.File)
	if err != nil {
		return fmt.Errorf("could not load %q: %w", cfg.File, err)
	}
	m := ddd.New(ddd.Logger(cfg.log))
	sys, err := model.Compile(m, mdl)
	if err != nil {
		return err
	}
	defer sys.Release()
	res, err := sys.Reach()
	if err != nil {
		return fmt.Errorf("error computing the state space of %s: %w", mdl.Name, err)
	}
	fmt.Fprintf(cc.Out, "%s: %s states, %d nodes\n", mdl.Name, res.NbStates(), res.NodeCount())
	if cfg.Print > 0 {
		if err := res.Fprint(cc.Out, cfg.Print); err != nil {
			return err
		}
	}
	if cfg.Stats {
		printStats(cc.Out, m, cfg.Color)
	}
	return nil
}

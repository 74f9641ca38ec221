// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"github.com/go-logr/logr"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Verbose int  `cli:"name=v desc='log verbosity, 0 to disable logs'"`
	Stats   bool `cli:"name=stats desc='print the statistics of the manager'"`
	Color   bool `cli:"name=color desc='print statistics with colors'"`

	log logr.Logger

	Main *cli.Command
}

type ReachConfig struct {
	*MainConfig

	File  string `cli:"name=f aliases=file desc='model file'"`
	Print int    `cli:"name=p aliases=print desc='print at most this number of states'"`

	Reach *cli.Command
}

type HanoiConfig struct {
	*MainConfig

	Rings int  `cli:"name=rings desc='number of rings (default 4)'"`
	Poles int  `cli:"name=poles desc='number of poles (default 3)'"`
	SDD   bool `cli:"name=sdd desc='use hierarchical decision diagrams'"`

	Hanoi *cli.Command
}

// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command ddtool computes state spaces with decision diagrams. The reach
// command explores a model given in YAML (see package model) and the hanoi
// command solves the Towers of Hanoi puzzle, with DDD or SDD.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

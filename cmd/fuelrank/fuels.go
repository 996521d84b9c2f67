package main

import (
	"fmt"

	"github.com/rubiojr/fuelrank/pkg/api"
	"github.com/urfave/cli/v2"
)

func fuelsCommand() *cli.Command {
	return &cli.Command{
		Name:   "fuels",
		Usage:  "List the supported fuel types",
		Action: fuelsAction,
	}
}

func fuelsAction(c *cli.Context) error {
	for _, f := range api.FuelTypes() {
		fmt.Fprintf(c.App.Writer, "%d\t%s\n", f.ID(), f)
	}
	return nil
}

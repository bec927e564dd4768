package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hinwise/smarttanken/internal/config"
	"github.com/hinwise/smarttanken/internal/engine"
)

func lookupCommand() *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Resolve a postal code against the bundled table (offline)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "plz",
				Usage:    "German postal code to resolve",
				Required: true,
			},
		},
		Action: lookupAction,
	}
}

func lookupAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	table, err := loadTable(cfg)
	if err != nil {
		return fmt.Errorf("error loading postal table: %w", err)
	}

	loc, err := engine.ResolveLocation(table, engine.LocationQuery{PLZ: c.String("plz")})
	if err != nil {
		return err
	}

	entry, _ := table.Lookup(loc.PLZ)
	fmt.Printf("%s %s\n", entry.Code, entry.City)
	fmt.Printf("   Coordinates: %.4f, %.4f\n", entry.Lat, entry.Lng)

	return nil
}

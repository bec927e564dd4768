package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hinwise/smarttanken/internal/config"
	"github.com/hinwise/smarttanken/internal/engine"
)

func dieselIndexCommand() *cli.Command {
	flags := append(locationFlags(),
		&cli.Float64Flag{
			Name:    "radius",
			Aliases: []string{"r"},
			Usage:   "Search radius in kilometers",
			Value:   engine.DefaultIndexRadiusKm,
		},
	)

	return &cli.Command{
		Name:   "diesel-index",
		Usage:  "Compute the regional diesel benchmark and suggested surcharge",
		Flags:  flags,
		Action: dieselIndexAction,
	}
}

func dieselIndexAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	table, err := loadTable(cfg)
	if err != nil {
		return fmt.Errorf("error loading postal table: %w", err)
	}

	loc, err := resolveFlags(table, c)
	if err != nil {
		return err
	}
	radius := c.Float64("radius")
	if err := engine.ValidateRadius(radius, engine.MaxRadiusKm); err != nil {
		return err
	}

	source := oneShotSource(cfg)
	observations, err := source.FetchObservations(c.Context, loc.Coordinate, radius, engine.FuelDiesel)
	if err != nil {
		return fmt.Errorf("error fetching prices: %w", err)
	}

	result, err := engine.ComputeDieselIndex(loc.Origin, observations, nowInMarket(cfg))
	if err != nil {
		if errors.Is(err, engine.ErrInsufficientData) {
			fmt.Printf("No open diesel prices within %g km of %s\n", radius, loc.Origin)
			return nil
		}
		return err
	}

	fmt.Printf("Diesel index for %s (%g km radius, %d stations)\n\n", result.Region, radius, result.SampleSize)
	fmt.Printf("   Average: %s €\n", result.AveragePrice.StringFixed(3))
	fmt.Printf("   Low:     %s €\n", result.LowestPrice.StringFixed(3))
	fmt.Printf("   High:    %s €\n", result.HighestPrice.StringFixed(3))
	fmt.Printf("   Suggested surcharge: %s%%\n", result.SurchargePct.StringFixed(2))
	fmt.Printf("   Trend: %s, %s (%s)\n", result.Trend.Direction, result.Trend.Window, engine.TrendMethod)

	return nil
}

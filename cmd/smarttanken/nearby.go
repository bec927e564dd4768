package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hinwise/smarttanken/internal/config"
	"github.com/hinwise/smarttanken/internal/engine"
)

func nearbyCommand() *cli.Command {
	flags := append(locationFlags(),
		&cli.StringFlag{
			Name:  "fuel",
			Usage: "Fuel type (e5, e10 or diesel)",
			Value: string(engine.FuelE5),
		},
		&cli.Float64Flag{
			Name:    "radius",
			Aliases: []string{"r"},
			Usage:   "Search radius in kilometers",
			Value:   engine.DefaultConsumerRadiusKm,
		},
	)

	return &cli.Command{
		Name:   "nearby",
		Usage:  "Find the cheapest nearby stations and whether the detour is worth it",
		Flags:  flags,
		Action: nearbyAction,
	}
}

func nearbyAction(c *cli.Context) error {
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
	fuel, err := engine.ParseFuelType(c.String("fuel"))
	if err != nil {
		return err
	}

	source := oneShotSource(cfg)
	observations, err := source.FetchObservations(c.Context, loc.Coordinate, radius, fuel)
	if err != nil {
		return fmt.Errorf("error fetching prices: %w", err)
	}

	ranked := engine.Rank(observations, fuel, engine.ConsumerResultLimit)
	verdicts := engine.BuildVerdicts(ranked, engine.DefaultTankSizeLiters)
	if len(verdicts) == 0 {
		fmt.Printf("No open stations with %s prices within %g km of %s\n", fuel, radius, loc.Origin)
		return nil
	}

	trend := engine.EstimateTrend(nowInMarket(cfg))
	fmt.Printf("Best %s deals near %s (%g km radius)\n", fuel, loc.Origin, radius)
	fmt.Printf("Trend: %s, %s (%s)\n\n", trend.Direction, trend.Window, engine.TrendMethod)

	for i, v := range verdicts {
		fmt.Printf("%d. %s (%s)\n", i+1, v.Station.StationName, v.Station.Brand)
		fmt.Printf("   Price: %s €\n", v.Station.Price.StringFixed(3))
		fmt.Printf("   Distance: %.2f km\n", v.Station.DistanceKm)
		fmt.Printf("   Savings on a fill-up: %s € (%s%%)\n", v.SavingsAmount.StringFixed(2), v.SavingsPct.StringFixed(1))
		fmt.Printf("   Verdict: %s (hassle score %.2f)\n\n", v.Verdict, v.HassleScore)
	}

	return nil
}

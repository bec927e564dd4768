package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v2"

	"github.com/hinwise/smarttanken/internal/config"
	"github.com/hinwise/smarttanken/internal/engine"
	"github.com/hinwise/smarttanken/internal/gateway"
	"github.com/hinwise/smarttanken/internal/observability"
	"github.com/hinwise/smarttanken/internal/plz"
	"github.com/hinwise/smarttanken/pkg/tankerkoenig"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	app := &cli.App{
		Name:  "smarttanken",
		Usage: "German fuel price intelligence for drivers and small fleets",
		Commands: []*cli.Command{
			serveCommand(),
			nearbyCommand(),
			dieselIndexCommand(),
			lookupCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadTable(cfg *config.Config) (*plz.Table, error) {
	if cfg.PLZTablePath != "" {
		return plz.LoadFile(cfg.PLZTablePath)
	}
	return plz.Load()
}

func resolveFlags(table *plz.Table, c *cli.Context) (engine.ResolvedLocation, error) {
	q := engine.LocationQuery{PLZ: c.String("plz")}
	if c.IsSet("lat") {
		lat := c.Float64("lat")
		q.Lat = &lat
	}
	if c.IsSet("lng") {
		lng := c.Float64("lng")
		q.Lng = &lng
	}
	return engine.ResolveLocation(table, q)
}

func newSource(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *gateway.Gateway {
	client := tankerkoenig.NewWithBaseURL(cfg.APIKey, cfg.BaseURL, cfg.ProviderTimeout)
	return gateway.New(client, cfg.ProviderCacheTTL, clockwork.NewRealClock(), metrics, logger)
}

// oneShotSource builds the gateway for terminal commands, which have no use
// for request logs or scraped metrics.
func oneShotSource(cfg *config.Config) *gateway.Gateway {
	return newSource(cfg, observability.NewMetrics(), slog.New(slog.DiscardHandler))
}

// nowInMarket is the wall clock in the market's timezone, which the trend
// heuristic reads hours in.
func nowInMarket(cfg *config.Config) time.Time {
	return time.Now().In(cfg.Market)
}

// locationFlags are the shared location selectors of the price commands:
// a postal code or a coordinate pair, never both.
func locationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "plz",
			Usage: "German postal code to search around",
		},
		&cli.Float64Flag{
			Name:  "lat",
			Usage: "Latitude of the location",
		},
		&cli.Float64Flag{
			Name:  "lng",
			Usage: "Longitude of the location",
		},
	}
}

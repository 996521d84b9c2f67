package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rubiojr/fuelrank/internal/config"
	"github.com/rubiojr/fuelrank/internal/geocode"
	"github.com/rubiojr/fuelrank/internal/output"
	"github.com/rubiojr/fuelrank/internal/search"
	"github.com/rubiojr/fuelrank/internal/xmlstream"
	"github.com/rubiojr/fuelrank/pkg/api"
	"github.com/urfave/cli/v2"
)

const dateLayout = "2006-01-02"

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Return the cheapest stations around a location",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "latitude",
				Usage: "Your current latitude",
			},
			&cli.StringFlag{
				Name:  "longitude",
				Usage: "Your current longitude",
			},
			&cli.StringFlag{
				Name:  "location",
				Usage: "Place name to search around, instead of latitude and longitude",
			},
			&cli.Float64Flag{
				Name:     "radius",
				Aliases:  []string{"r"},
				Usage:    "Search radius in meters",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "date",
				Usage:    "Price date (YYYY-MM-DD)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "fuel",
				Aliases:  []string{"gaz-type"},
				Usage:    "Fuel type: " + strings.Join(api.FuelLabels(), ", "),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "Price data file (.xml, .xml.gz or .zip)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: " + strings.Join(output.Formats(), ", "),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Action: searchAction,
	}
}

func searchAction(c *cli.Context) error {
	ctx := c.Context

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, cfg)

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	fuel, err := api.ParseFuelType(c.String("fuel"))
	if err != nil {
		return err
	}

	date, err := time.Parse(dateLayout, c.String("date"))
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	lat, lng, err := resolvePosition(c, cfg, logger)
	if err != nil {
		return err
	}

	query := api.NewQuery(lat, lng, c.Float64("radius"), date, fuel)
	if err := query.Validate(); err != nil {
		return err
	}

	writer, err := output.New(cfg.Format, logger)
	if err != nil {
		return err
	}

	data, err := xmlstream.Open(cfg.DataPath)
	if err != nil {
		return err
	}
	defer data.Close()

	logger.Debug("Searching stations",
		"data", cfg.DataPath,
		"latitude", lat,
		"longitude", lng,
		"radius_km", query.RadiusKm(),
		"date", query.Date().Format(dateLayout),
		"fuel", fuel)

	result, err := search.Run(ctx, xmlstream.NewReader(data), query, logger)
	if err != nil {
		return err
	}

	if err := writer.Write(ctx, cfg.OutputPath, result); err != nil {
		return err
	}
	logger.Info("Result written", "path", cfg.OutputPath, "format", cfg.Format, "stations", len(result.Stations))

	return nil
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("data") {
		cfg.DataPath = c.String("data")
	}
	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

func resolvePosition(c *cli.Context, cfg *config.Config, logger *slog.Logger) (lat, lng float64, err error) {
	if loc := c.String("location"); loc != "" {
		place, err := geocode.New(cfg.NominatimServer, logger).Resolve(c.Context, loc)
		if err != nil {
			return 0, 0, err
		}
		logger.Info("Location found", "name", place.Name)
		return place.Latitude, place.Longitude, nil
	}

	if !c.IsSet("latitude") || !c.IsSet("longitude") {
		return 0, 0, errors.New("location or latitude and longitude are required")
	}
	if lat, err = api.ParseValue("latitude", c.String("latitude")); err != nil {
		return 0, 0, err
	}
	if lng, err = api.ParseValue("longitude", c.String("longitude")); err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

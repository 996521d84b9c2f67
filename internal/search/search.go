package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/rubiojr/fuelrank/internal/xmlstream"
	"github.com/rubiojr/fuelrank/pkg/api"
)

// offsetReporter is implemented by event sources that track how many input
// bytes they consumed, such as *xmlstream.Reader.
type offsetReporter interface {
	InputOffset() int64
}

// Run extracts stations from events and returns the formatted ranking for q.
func Run(ctx context.Context, events xmlstream.EventSource, q api.Query, log *slog.Logger) (api.Result, error) {
	start := time.Now()
	retained, err := Extract(ctx, events, q, log)
	if err != nil {
		return api.Result{}, err
	}
	log.Info("Data loaded",
		"elapsed", time.Since(start),
		"stations", retained.Stats.Stations,
		"malformed_locations", retained.Stats.MalformedLocations,
		"prices_matched", retained.Stats.PricesMatched,
		"retained", retained.Len())
	if r, ok := events.(offsetReporter); ok {
		log.Debug("Input consumed", "bytes", r.InputOffset())
	}

	start = time.Now()
	ranked := FindStations(q, retained)
	log.Info("Search completed", "elapsed", time.Since(start), "results", len(ranked))

	return FormatResult(q.Fuel(), ranked), nil
}

package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rubiojr/fuelrank/internal/xmlstream"
	"github.com/rubiojr/fuelrank/pkg/api"
)

// Extract consumes events in a single pass and returns every station that
// had both a position and a matching price at some point of the stream.
//
// A <pdv> open replaces the current station, a <prix> open may price it, and
// the current station is retained after any event once it is complete. A
// retained station is never removed: prices are only ever set.
func Extract(ctx context.Context, events xmlstream.EventSource, q api.Query, log *slog.Logger) (*Retained, error) {
	retained := NewRetained()
	var current *api.Station

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ev, err := events.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading price data: %w", err)
		}

		if ev.Kind == xmlstream.Start {
			switch ev.Element.Tag {
			case StationTag:
				current, err = BuildStation(q, ev.Element, log)
				if err != nil {
					return nil, fmt.Errorf("error building station: %w", err)
				}
				retained.Stats.Stations++
				if current.Location == nil {
					retained.Stats.MalformedLocations++
				}
			case PriceTag:
				if current == nil {
					log.Debug("Skipping price outside of a station")
					break
				}
				previous := current.Price
				if _, err := ApplyPrice(ev.Element, current, q); err != nil {
					return nil, fmt.Errorf("error reading price of station %d: %w", current.ID, err)
				}
				if current.Price != previous {
					retained.Stats.PricesMatched++
				}
			}
		}

		if current.Complete() {
			retained.Put(current)
		}
	}

	return retained, nil
}

package output

import (
	"context"
	"fmt"

	"github.com/rubiojr/fuelrank/pkg/api"
	"github.com/tkrajina/gpxgo/gpx"
)

const gpxVersion = "1.1"

// GPXWriter writes one waypoint per ranked station, so results can be opened
// in mapping and navigation tools.
type GPXWriter struct{}

func (w *GPXWriter) Write(ctx context.Context, path string, result api.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := toGPX(result).ToXml(gpx.ToXmlParams{Version: gpxVersion, Indent: true})
	if err != nil {
		return fmt.Errorf("error encoding gpx: %w", err)
	}
	return writeFile(path, data)
}

func toGPX(result api.Result) *gpx.GPX {
	g := &gpx.GPX{
		Version: gpxVersion,
		Creator: "fuelrank",
		Name:    fmt.Sprintf("Cheapest %s stations", result.Name),
	}

	for _, s := range result.Stations {
		g.Waypoints = append(g.Waypoints, gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  s.Latitude,
				Longitude: s.Longitude,
			},
			Name:        fmt.Sprintf("#%d %s %.3f", s.Rank, result.Name, s.Price),
			Description: fmt.Sprintf("%.2f km", s.Distance),
			Type:        result.Name,
		})
	}

	return g
}

package search

import (
	"strconv"

	"github.com/rubiojr/fuelrank/pkg/api"
)

const distancePrecision = 2

// FormatResult builds the result record for ranked stations. Ranks follow the
// order of the input.
func FormatResult(fuel api.FuelType, ranked []*api.Station) api.Result {
	result := api.Result{
		Name:     fuel.String(),
		Stations: make([]api.RankedStation, 0, len(ranked)),
	}

	for i, s := range ranked {
		result.Stations = append(result.Stations, api.RankedStation{
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
			Price:     *s.Price,
			Distance:  round(s.Location.DistanceKm, distancePrecision),
			Rank:      i + 1,
		})
	}

	return result
}

// round rounds the exact binary value of v to decimalPlaces, ties to even.
func round(v float64, decimalPlaces int) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimalPlaces, 64), 64)
	return r
}

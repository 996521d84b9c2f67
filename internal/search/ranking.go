package search

import (
	"sort"

	"github.com/rubiojr/fuelrank/pkg/api"
)

// TopN is the number of stations returned by FindStations.
const TopN = 10

// FilterEligible keeps the located stations whose distance to the query is
// within its radius, boundary included.
func FilterEligible(q api.Query, stations []*api.Station) []*api.Station {
	var eligible []*api.Station
	for _, s := range stations {
		if s.Location != nil && s.Location.DistanceKm <= q.RadiusKm() {
			eligible = append(eligible, s)
		}
	}
	return eligible
}

// SortByPriceThenDistance sorts stations in place, cheapest first and closest
// first on equal prices. Stations equal on both keep their relative order.
func SortByPriceThenDistance(stations []*api.Station) {
	sort.SliceStable(stations, func(i, j int) bool {
		pi, pj := *stations[i].Price, *stations[j].Price
		if pi != pj {
			return pi < pj
		}
		return stations[i].Location.DistanceKm < stations[j].Location.DistanceKm
	})
}

// TakeTopN returns the first n stations. A negative n returns none.
func TakeTopN(n int, stations []*api.Station) []*api.Station {
	n = max(n, 0)
	if n < len(stations) {
		return stations[:n]
	}
	return stations
}

// FindStations returns the TopN cheapest retained stations within the query radius.
func FindStations(q api.Query, retained *Retained) []*api.Station {
	eligible := FilterEligible(q, retained.Stations())
	SortByPriceThenDistance(eligible)
	return TakeTopN(TopN, eligible)
}

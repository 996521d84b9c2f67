package search

import "github.com/rubiojr/fuelrank/pkg/api"

// Stats counts what an extraction saw.
type Stats struct {
	Stations           int
	MalformedLocations int
	PricesMatched      int
}

// Retained holds complete stations keyed by id, in the order they were
// first retained.
type Retained struct {
	byID  map[int]*api.Station
	order []int
	Stats Stats
}

func NewRetained() *Retained {
	return &Retained{byID: make(map[int]*api.Station)}
}

// Put inserts or replaces the station with the same id. A replaced station
// keeps its original position.
func (r *Retained) Put(station *api.Station) {
	if _, ok := r.byID[station.ID]; !ok {
		r.order = append(r.order, station.ID)
	}
	r.byID[station.ID] = station
}

func (r *Retained) Get(id int) (*api.Station, bool) {
	s, ok := r.byID[id]
	return s, ok
}

func (r *Retained) Len() int {
	return len(r.order)
}

// Each calls fn for every station in insertion order.
func (r *Retained) Each(fn func(*api.Station)) {
	for _, id := range r.order {
		fn(r.byID[id])
	}
}

// Stations returns the retained stations in insertion order.
func (r *Retained) Stations() []*api.Station {
	stations := make([]*api.Station, 0, len(r.order))
	r.Each(func(s *api.Station) {
		stations = append(stations, s)
	})
	return stations
}

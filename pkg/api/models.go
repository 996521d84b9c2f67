package api

// State describes how much of a station has been resolved while streaming.
type State int

const (
	// StatePartial is a station known only by its id.
	StatePartial State = iota
	// StateLocated has a position and a distance to the query, but no matching price.
	StateLocated
	// StatePriced has a matching price but its coordinates were malformed.
	StatePriced
	// StateComplete has both a position and a matching price.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StatePartial:
		return "partial"
	case StateLocated:
		return "located"
	case StatePriced:
		return "priced"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Location is the resolved position of a station and its distance to the query point.
// The three values are always set together.
type Location struct {
	Latitude   float64
	Longitude  float64
	DistanceKm float64
}

// Station represents a single fuel station extracted from the price data.
type Station struct {
	ID       int
	Location *Location
	Price    *float64
}

// NewStation returns a station known only by its id.
func NewStation(id int) *Station {
	return &Station{ID: id}
}

// Locate sets the station position and distance.
func (s *Station) Locate(lat, lng, distanceKm float64) {
	s.Location = &Location{Latitude: lat, Longitude: lng, DistanceKm: distanceKm}
}

// SetPrice records the price of the requested fuel.
func (s *Station) SetPrice(price float64) {
	s.Price = &price
}

func (s *Station) State() State {
	switch {
	case s.Location != nil && s.Price != nil:
		return StateComplete
	case s.Location != nil:
		return StateLocated
	case s.Price != nil:
		return StatePriced
	}
	return StatePartial
}

// Complete reports whether the station can be ranked.
func (s *Station) Complete() bool {
	return s != nil && s.State() == StateComplete
}

// Result is the record produced for a search.
type Result struct {
	Name     string          `json:"name"`
	Stations []RankedStation `json:"stations"`
}

// RankedStation is a station entry in a Result. Rank is 1-based.
type RankedStation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Price     float64 `json:"price"`
	Distance  float64 `json:"distance"`
	Rank      int     `json:"rank"`
}

// Package geocode resolves place names to coordinates using Nominatim.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/muesli/gominatim"
)

const DefaultServer = "https://nominatim.openstreetmap.org/"

var ErrNoResults = errors.New("no results found for location")

// Place is a resolved location.
type Place struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// LookupFunc returns the candidate places for a free form query, best match first.
type LookupFunc func(query string) ([]gominatim.SearchResult, error)

type Geocoder struct {
	lookup LookupFunc
	log    *slog.Logger
}

// New returns a Geocoder querying the given Nominatim server.
func New(server string, logger *slog.Logger) *Geocoder {
	if server == "" {
		server = DefaultServer
	}
	gominatim.SetServer(server)
	return NewWithLookup(nominatimLookup, logger)
}

// NewWithLookup returns a Geocoder backed by lookup.
func NewWithLookup(lookup LookupFunc, logger *slog.Logger) *Geocoder {
	return &Geocoder{
		lookup: lookup,
		log:    logger,
	}
}

// Resolve returns the best match for name.
func (g *Geocoder) Resolve(ctx context.Context, name string) (*Place, error) {
	name = strings.TrimSpace(name)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results, err := g.lookup(name)
	if err != nil {
		return nil, fmt.Errorf("geocoding error: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoResults, name)
	}

	place, err := toPlace(results[0])
	if err != nil {
		return nil, err
	}
	g.log.Debug("Location found", "name", place.Name, "latitude", place.Latitude, "longitude", place.Longitude)

	return place, nil
}

func nominatimLookup(query string) ([]gominatim.SearchResult, error) {
	qry := gominatim.SearchQuery{
		Q: url.QueryEscape(query),
	}
	return qry.Get()
}

func toPlace(result gominatim.SearchResult) (*Place, error) {
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("error parsing latitude: %w", err)
	}

	lng, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("error parsing longitude: %w", err)
	}

	return &Place{Name: result.DisplayName, Latitude: lat, Longitude: lng}, nil
}

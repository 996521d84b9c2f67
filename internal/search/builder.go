// Package search extracts fuel stations from a price data stream and ranks
// them for a query.
package search

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rubiojr/fuelrank/internal/geo"
	"github.com/rubiojr/fuelrank/internal/xmlstream"
	"github.com/rubiojr/fuelrank/pkg/api"
)

// Tags and attributes of the price data.
const (
	StationTag = "pdv"
	PriceTag   = "prix"

	attrID        = "id"
	attrLatitude  = "latitude"
	attrLongitude = "longitude"
	attrPrice     = "valeur"
	attrUpdated   = "maj"
)

// DateLayout is the layout of the maj attribute of price elements.
const DateLayout = "2006-01-02T15:04:05"

var dateLayouts = []string{
	DateLayout,
	DateLayout + "Z",
	"2006-01-02 15:04:05",
}

// BuildStation creates a station from a <pdv> element. When both coordinates
// are well formed the station is located and its distance to the query
// computed; otherwise a warning is logged and only the id is kept.
func BuildStation(q api.Query, el xmlstream.Element, log *slog.Logger) (*api.Station, error) {
	id, err := intAttr(el, attrID)
	if err != nil {
		return nil, err
	}
	station := api.NewStation(id)

	lat, _ := el.Attr(attrLatitude)
	lng, _ := el.Attr(attrLongitude)
	if !api.ValidateCoordinate(lat) || !api.ValidateCoordinate(lng) {
		log.Warn("Malformed station coordinates", "station_id", id, "latitude", lat, "longitude", lng)
		return station, nil
	}

	stationLat := api.NormalizeCoordinate(lat)
	stationLng := api.NormalizeCoordinate(lng)
	userLat, userLng := q.Position()
	station.Locate(stationLat, stationLng, geo.Distance(userLat, userLng, stationLat, stationLng))

	return station, nil
}

// ApplyPrice sets the station price from a <prix> element when the element
// was updated on the query date and is for the requested fuel. Any other
// element leaves the station untouched.
func ApplyPrice(el xmlstream.Element, station *api.Station, q api.Query) (*api.Station, error) {
	updated, ok := el.Attr(attrUpdated)
	if !ok || updated == "" {
		return station, nil
	}

	date, err := parseDate(updated)
	if err != nil {
		return nil, &ParseError{Element: el.Tag, Attr: attrUpdated, Value: updated, Err: err}
	}

	fuelID, err := intAttr(el, attrID)
	if err != nil {
		return nil, err
	}

	if !date.Equal(q.Date()) || fuelID != q.Fuel().ID() {
		return station, nil
	}

	raw, _ := el.Attr(attrPrice)
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, &ParseError{Element: el.Tag, Attr: attrPrice, Value: raw, Err: err}
	}
	station.SetPrice(price)

	return station, nil
}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return api.TruncateDay(t), nil
		}
	}
	return time.Time{}, err
}

func intAttr(el xmlstream.Element, name string) (int, error) {
	raw, ok := el.Attr(name)
	if !ok {
		return 0, &ParseError{Element: el.Tag, Attr: name}
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ParseError{Element: el.Tag, Attr: name, Value: raw, Err: err}
	}
	return v, nil
}

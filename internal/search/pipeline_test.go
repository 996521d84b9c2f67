package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/fuelrank/internal/xmlstream"
)

const priceData = `<?xml version="1.0" encoding="UTF-8"?>
<pdv_liste>
  <pdv id="1" latitude="1300100" longitude="-8909876" cp="01000" pop="R">
    <adresse>1 RUE DU CENTRE</adresse>
    <prix nom="Gazole" id="1" maj="2024-01-21T07:00:00" valeur="1.789"/>
    <prix nom="SP98" id="6" maj="2024-01-21T08:12:00" valeur="1.949"/>
  </pdv>
  <pdv id="2" latitude="" longitude="-8909876">
    <prix nom="SP98" id="6" maj="2024-01-21T08:12:00" valeur="1.799"/>
  </pdv>
  <pdv id="3" latitude="1300500" longitude="-8909000">
    <prix nom="SP98" id="6" maj="2024-01-20T08:12:00" valeur="1.699"/>
    <services><service>Lavage</service></services>
    <prix nom="SP98" id="6" maj="2024-01-21T10:00:00" valeur="1.909"/>
    <rupture id="6" nom="SP98" debut="2024-01-22T00:00:00" fin=""/>
  </pdv>
  <pdv id="4" latitude="1288888" longitude="-8909888">
    <prix nom="SP98" id="6" maj="2024-01-21T08:00:00" valeur="1.599"/>
  </pdv>
  <pdv id="5" latitude="1300000" longitude="-8909870">
    <prix nom="E10" id="5" maj="2024-01-21T08:00:00" valeur="1.659"/>
  </pdv>
</pdv_liste>`

func extract(t *testing.T, doc string) *Retained {
	t.Helper()
	retained, err := Extract(context.Background(), xmlstream.NewReader(strings.NewReader(doc)), testQuery(), discard)
	require.NoError(t, err)
	return retained
}

func TestExtract(t *testing.T) {
	retained := extract(t, priceData)

	assert.Equal(t, []int{1, 3, 4}, ids(retained.Stations()))
	assert.Equal(t, 5, retained.Stats.Stations)
	assert.Equal(t, 1, retained.Stats.MalformedLocations)
	assert.Equal(t, 4, retained.Stats.PricesMatched)

	s, ok := retained.Get(3)
	require.True(t, ok)
	assert.Equal(t, 1.909, *s.Price)
	assert.True(t, s.Complete())

	_, ok = retained.Get(2)
	assert.False(t, ok, "station without coordinates must not be retained")
	_, ok = retained.Get(5)
	assert.False(t, ok, "station without a matching price must not be retained")
}

func TestExtractKeepsCompletedStation(t *testing.T) {
	doc := `<pdv_liste>
  <pdv id="10" latitude="1300000" longitude="-8909870">
    <prix id="6" maj="2024-01-21T08:00:00" valeur="1.5"/>
    <prix id="6" maj="2024-01-19T08:00:00" valeur="1.2"/>
    <prix id="1" maj="2024-01-21T08:00:00" valeur="1.1"/>
  </pdv>
</pdv_liste>`

	retained := extract(t, doc)
	s, ok := retained.Get(10)
	require.True(t, ok)
	assert.Equal(t, 1.5, *s.Price)
}

func TestExtractLastMatchingPriceWins(t *testing.T) {
	doc := `<pdv_liste>
  <pdv id="10" latitude="1300000" longitude="-8909870">
    <prix id="6" maj="2024-01-21T08:00:00" valeur="1.5"/>
    <prix id="6" maj="2024-01-21T18:00:00" valeur="1.55"/>
  </pdv>
</pdv_liste>`

	retained := extract(t, doc)
	assert.Equal(t, 1, retained.Len())
	s, _ := retained.Get(10)
	assert.Equal(t, 1.55, *s.Price)
}

func TestExtractRepeatedStationID(t *testing.T) {
	doc := `<pdv_liste>
  <pdv id="10" latitude="1300000" longitude="-8909870">
    <prix id="6" maj="2024-01-21T08:00:00" valeur="1.5"/>
  </pdv>
  <pdv id="11" latitude="1300000" longitude="-8909870">
    <prix id="6" maj="2024-01-21T08:00:00" valeur="1.6"/>
  </pdv>
  <pdv id="10" latitude="1300010" longitude="-8909870">
    <prix id="6" maj="2024-01-21T08:00:00" valeur="1.4"/>
  </pdv>
</pdv_liste>`

	retained := extract(t, doc)
	assert.Equal(t, []int{10, 11}, ids(retained.Stations()))
	s, _ := retained.Get(10)
	assert.Equal(t, 1.4, *s.Price)
	assert.Equal(t, 13.0001, s.Location.Latitude)
}

func TestExtractPriceBeforeStation(t *testing.T) {
	doc := `<pdv_liste>
  <prix id="6" maj="2024-01-21T08:00:00" valeur="1.5"/>
  <pdv id="10" latitude="1300000" longitude="-8909870"/>
</pdv_liste>`

	retained := extract(t, doc)
	assert.Equal(t, 0, retained.Len())
	assert.Equal(t, 0, retained.Stats.PricesMatched)
}

func TestExtractStructuralError(t *testing.T) {
	doc := `<pdv_liste><pdv id="abc" latitude="1300000" longitude="-8909870"/></pdv_liste>`

	_, err := Extract(context.Background(), xmlstream.NewReader(strings.NewReader(doc)), testQuery(), discard)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "abc", perr.Value)
}

func TestExtractMalformedXML(t *testing.T) {
	doc := `<pdv_liste><pdv id="1" latitude="1300000" longitude="-8909870"></pdv_liste>`

	_, err := Extract(context.Background(), xmlstream.NewReader(strings.NewReader(doc)), testQuery(), discard)
	assert.Error(t, err)
}

func TestExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Extract(ctx, xmlstream.NewReader(strings.NewReader(priceData)), testQuery(), discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEndToEnd(t *testing.T) {
	retained := extract(t, priceData)
	result := FormatResult(testQuery().Fuel(), FindStations(testQuery(), retained))

	assert.Equal(t, "SP98", result.Name)
	require.Len(t, result.Stations, 2)
	assert.Equal(t, 1, result.Stations[0].Rank)
	assert.Equal(t, 1.909, result.Stations[0].Price)
	assert.Equal(t, 2, result.Stations[1].Rank)
	assert.Equal(t, 1.949, result.Stations[1].Price)
}

func TestEndToEndSingleStation(t *testing.T) {
	doc := `<pdv_liste>
  <pdv id="42" latitude="1300000" longitude="-8909000">
    <prix id="6" maj="2024-01-21T08:00:00" valeur="1.879"/>
  </pdv>
</pdv_liste>`

	retained := extract(t, doc)
	result := FormatResult(testQuery().Fuel(), FindStations(testQuery(), retained))

	require.Len(t, result.Stations, 1)
	st := result.Stations[0]
	assert.Equal(t, 1, st.Rank)
	assert.Equal(t, 13.0, st.Latitude)
	assert.Equal(t, -89.09, st.Longitude)
	assert.Equal(t, 1.879, st.Price)
	assert.Equal(t, st.Distance, round(st.Distance, 2))
}

func TestEndToEndIdempotent(t *testing.T) {
	run := func() []byte {
		retained := extract(t, priceData)
		data, err := json.Marshal(FormatResult(testQuery().Fuel(), FindStations(testQuery(), retained)))
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, run(), run())
}

func TestRun(t *testing.T) {
	result, err := Run(context.Background(), xmlstream.NewReader(strings.NewReader(priceData)), testQuery(), discard)
	require.NoError(t, err)
	assert.Equal(t, "SP98", result.Name)
	assert.Len(t, result.Stations, 2)

	_, err = Run(context.Background(), xmlstream.NewReader(strings.NewReader(`<pdv id=""/>`)), testQuery(), discard)
	assert.Error(t, err)
}

func TestRunLogsInputConsumed(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Run(context.Background(), xmlstream.NewReader(strings.NewReader(priceData)), testQuery(), logger)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `msg="Input consumed"`)
	assert.Contains(t, buf.String(), fmt.Sprintf("bytes=%d", len(priceData)))
}

package api

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const metersPerKm = 1000.0

var validate = newValidator()

// fieldRanges holds the accepted range of every validated query field, used
// to build user facing messages.
var fieldRanges = map[string][2]float64{
	"latitude":  {-90, 90},
	"longitude": {-180, 180},
	"radius_km": {0, math.Inf(1)},
}

// Query holds the parameters of a station search. It is immutable once built.
type Query struct {
	lat      float64
	lng      float64
	radiusKm float64
	date     time.Time
	fuel     FuelType
}

// queryParams mirrors Query with validation rules.
type queryParams struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	RadiusKm  float64 `json:"radius_km" validate:"gte=0"`
}

// NewQuery builds a query. The radius is given in meters and stored in
// kilometers, the date is truncated to its calendar day.
func NewQuery(lat, lng, radiusMeters float64, date time.Time, fuel FuelType) Query {
	return Query{
		lat:      lat,
		lng:      lng,
		radiusKm: radiusMeters / metersPerKm,
		date:     TruncateDay(date),
		fuel:     fuel,
	}
}

func (q Query) Latitude() float64  { return q.lat }
func (q Query) Longitude() float64 { return q.lng }
func (q Query) RadiusKm() float64  { return q.radiusKm }
func (q Query) Date() time.Time    { return q.date }
func (q Query) Fuel() FuelType     { return q.fuel }

// Position returns the query coordinates.
func (q Query) Position() (lat, lng float64) {
	return q.lat, q.lng
}

// Validate checks coordinate ranges, the radius and the fuel type.
// Range failures are reported as *QueryError.
func (q Query) Validate() error {
	err := validate.Struct(queryParams{Latitude: q.lat, Longitude: q.lng, RadiusKm: q.radiusKm})
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return fmt.Errorf("error validating query: %w", err)
		}
		return newQueryError(verrs[0])
	}

	if !q.fuel.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownFuelType, int(q.fuel))
	}
	return nil
}

// QueryError reports a query value outside its accepted range. Raw holds
// the input when it was not a number.
type QueryError struct {
	Field string
	Min   float64
	Max   float64
	Value float64
	Raw   string
}

func (e *QueryError) Error() string {
	got := strconv.FormatFloat(e.Value, 'g', -1, 64)
	if e.Raw != "" {
		got = strconv.Quote(e.Raw)
	}
	if math.IsInf(e.Max, 1) {
		return fmt.Sprintf("%s must be at least %g, got %s", e.Field, e.Min, got)
	}
	return fmt.Sprintf("%s must be between %g and %g, got %s", e.Field, e.Min, e.Max, got)
}

// ParseValue parses a user supplied query value for field, one of
// "latitude", "longitude" or "radius_km". Input that is not a number is
// reported as *QueryError; ranges are checked by Validate.
func ParseValue(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		qe := &QueryError{Field: field, Value: math.NaN(), Raw: raw}
		if r, ok := fieldRanges[field]; ok {
			qe.Min, qe.Max = r[0], r[1]
		}
		return 0, qe
	}
	return v, nil
}

func newQueryError(fe validator.FieldError) *QueryError {
	qe := &QueryError{Field: fe.Field(), Value: math.NaN()}
	if r, ok := fieldRanges[fe.Field()]; ok {
		qe.Min, qe.Max = r[0], r[1]
	}
	if v, ok := fe.Value().(float64); ok {
		qe.Value = v
	}
	return qe
}

// TruncateDay drops the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

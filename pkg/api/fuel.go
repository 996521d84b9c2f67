package api

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownFuelType = errors.New("unknown fuel type")

// FuelType identifies a fuel product. The value is the numeric id used by
// <prix> elements in the price data.
type FuelType int

const (
	Gazole FuelType = iota + 1
	SP95
	E85
	GPLc
	E10
	SP98
)

var fuelLabels = [...]string{
	Gazole: "Gazole",
	SP95:   "SP95",
	E85:    "E85",
	GPLc:   "GPLc",
	E10:    "E10",
	SP98:   "SP98",
}

// FuelTypes returns every known fuel type ordered by id.
func FuelTypes() []FuelType {
	return []FuelType{Gazole, SP95, E85, GPLc, E10, SP98}
}

// ID returns the numeric id matched against price records.
func (f FuelType) ID() int {
	return int(f)
}

func (f FuelType) Valid() bool {
	return f >= Gazole && f <= SP98
}

func (f FuelType) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FuelType(%d)", int(f))
	}
	return fuelLabels[f]
}

// ParseFuelType maps a label such as "SP98" to its FuelType. Labels are matched
// exactly first, then case-insensitively.
func ParseFuelType(label string) (FuelType, error) {
	for _, f := range FuelTypes() {
		if fuelLabels[f] == label {
			return f, nil
		}
	}
	for _, f := range FuelTypes() {
		if strings.EqualFold(fuelLabels[f], label) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFuelType, label)
}

// FuelLabels returns the labels of every known fuel type ordered by id.
func FuelLabels() []string {
	labels := make([]string, 0, len(fuelLabels)-1)
	for _, f := range FuelTypes() {
		labels = append(labels, f.String())
	}
	return labels
}

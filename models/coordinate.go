package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var coordinateValidate = validator.New()

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Latitude, c.Longitude)
}

// Place is the result of a reverse-geocoding lookup. Nil fields mean unknown.
type Place struct {
	City  *string `json:"city"`
	State *string `json:"state"`
}

// Valid reports whether c lies within the WGS84 latitude/longitude ranges.
func (c Coordinate) Valid() bool {
	return coordinateValidate.Struct(c) == nil
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinate_Valid(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"hyderabad", Coordinate{Latitude: 17.385, Longitude: 78.4867}, true},
		{"origin", Coordinate{}, true},
		{"poles and antimeridian", Coordinate{Latitude: -90, Longitude: 180}, true},
		{"latitude too high", Coordinate{Latitude: 90.01, Longitude: 0}, false},
		{"latitude too low", Coordinate{Latitude: -91, Longitude: 0}, false},
		{"longitude out of range", Coordinate{Latitude: 0, Longitude: -180.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Valid())
		})
	}
}

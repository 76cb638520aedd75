package occult

import (
	"fmt"
	"math"
	"strings"
)

// SurfaceFromString returns the catalog surface of that name. The returned
// value is a copy, so callers may tweak it freely.
func SurfaceFromString(name string) (Surface, error) {
	switch strings.ToLower(name) {
	case "lambertian":
		return Lambertian, nil
	case "sunlike":
		return Sunlike, nil
	case "spotted", "spottedstar":
		return SpottedStar, nil
	case "hotjupiter":
		return HotJupiter, nil
	default:
		return Surface{}, fmt.Errorf("undefined surface '%s'", name)
	}
}

func mustMap(v []float64) *Harmonics {
	y, err := NewHarmonicsFromDense(v)
	if err != nil {
		panic(err)
	}
	return y
}

/* Definitions */

// Lambertian is featureless, what you see is what you get.
var Lambertian = Surface{Amplitude: 1, Inc: math.Pi / 2}

// Sunlike is our closest star as a transit host, with its quadratic limb
// darkening in visible light.
var Sunlike = Surface{U: []float64{0.393, 0.262}, Amplitude: 1, Inc: math.Pi / 2, Period: 24.47}

// SpottedStar wears a dark spot on its leading hemisphere.
var SpottedStar = Surface{
	Map:       mustMap([]float64{1, 0, 0, 0.25, 0, 0, -0.1, 0.15, 0.05}),
	U:         []float64{0.4, 0.26},
	Amplitude: 1,
	Inc:       math.Pi / 2,
	Period:    18.3,
}

// HotJupiter runs hottest just east of high noon.
var HotJupiter = Surface{
	Map:       mustMap([]float64{1, 0.1, 0, 0.35}),
	Amplitude: 1e-3,
	Inc:       math.Pi / 2,
	Period:    2.2,
}

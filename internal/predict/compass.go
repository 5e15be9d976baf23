package predict

import (
	"fmt"
	"math"
)

var compassLabels = map[int][]string{
	4: {"N", "E", "S", "W"},
	8: {"N", "NE", "E", "SE", "S", "SW", "W", "NW"},
	16: {
		"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
	},
}

// Cardinal converts an azimuth in degrees (0 = North, clockwise) to the
// nearest compass label at the given resolution. Any real azimuth is
// accepted; negative and >360 values wrap, so -1 and 359 map identically.
// Buckets are centered on each label, and a value exactly on a bucket
// boundary rounds to the clockwise-next label.
func Cardinal(azDeg float64, points int) (string, error) {
	labels, ok := compassLabels[points]
	if !ok {
		return "", fmt.Errorf("%w: got %d", ErrBadCompassPoints, points)
	}

	normalized := math.Mod(azDeg, 360.0)
	if normalized < 0 {
		normalized += 360.0
	}

	bucket := 360.0 / float64(points)
	idx := int(math.Floor((normalized+bucket/2.0)/bucket)) % points
	return labels[idx], nil
}

// cardinal16 is Cardinal at the 16-point resolution used for window records.
// The resolution is a constant, so the error path cannot trigger.
func cardinal16(azDeg float64) string {
	label, _ := Cardinal(azDeg, 16)
	return label
}

package predict

import (
	"fmt"
	"time"
)

// SampleSeries holds the per-timestamp geometry of a single satellite pass
// as parallel arrays: satellite elevation and azimuth, solar elevation, and
// whether the satellite itself is in sunlight. All slices must share the
// same length.
type SampleSeries struct {
	Times     []time.Time
	ElevDeg   []float64
	AzDeg     []float64
	SunAltDeg []float64
	Sunlit    []bool
}

// Len returns the number of samples in the series.
func (s SampleSeries) Len() int { return len(s.Times) }

// validate fails fast when the parallel arrays disagree on length.
func (s SampleSeries) validate() error {
	n := len(s.Times)
	if len(s.ElevDeg) != n || len(s.AzDeg) != n || len(s.SunAltDeg) != n || len(s.Sunlit) != n {
		return fmt.Errorf("%w: times=%d elev=%d az=%d sun=%d sunlit=%d",
			ErrSizeMismatch, n, len(s.ElevDeg), len(s.AzDeg), len(s.SunAltDeg), len(s.Sunlit))
	}
	return nil
}

// VisibleMask evaluates the visibility predicate for every sample: the
// satellite must be at or above minElevDeg, the sky must be dark enough
// (solar elevation at or below twilightDeg, typically a negative value),
// and the satellite must be sunlit so it reflects light toward the
// observer. All three must hold at once.
func VisibleMask(elevDeg, sunAltDeg []float64, sunlit []bool, minElevDeg, twilightDeg float64) ([]bool, error) {
	n := len(elevDeg)
	if len(sunAltDeg) != n || len(sunlit) != n {
		return nil, fmt.Errorf("%w: elev=%d sun=%d sunlit=%d",
			ErrSizeMismatch, n, len(sunAltDeg), len(sunlit))
	}

	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		mask[i] = elevDeg[i] >= minElevDeg && sunAltDeg[i] <= twilightDeg && sunlit[i]
	}
	return mask, nil
}

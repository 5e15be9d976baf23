package predict

import "time"

// Window is one actually-observable segment of a satellite pass: the
// satellite is above the minimum elevation, the observer's sky is dark, and
// the satellite is sunlit for the whole interval. All timestamps are in the
// observer's timezone. Windows are immutable once assembled.
type Window struct {
	Start time.Time
	End   time.Time
	Peak  time.Time

	Duration time.Duration

	PeakElevDeg float64

	StartAzDeg float64
	PeakAzDeg  float64
	EndAzDeg   float64

	StartDirection string
	PeakDirection  string
	EndDirection   string

	// Stars is the 1..5 qualitative visibility rating.
	Stars int
}

// VisibilityStars rates a window 1..5 from its peak elevation and duration.
// The score starts at 1, gains a point at each of 20, 40, and 65 degrees of
// peak elevation, gains a point for lasting at least two minutes, and is
// clamped to [1, 5]. The thresholds are deliberately fixed so the same
// geometry always produces the same rating.
func VisibilityStars(peakElevDeg float64, duration time.Duration) int {
	score := 1

	if peakElevDeg >= 20 {
		score++
	}
	if peakElevDeg >= 40 {
		score++
	}
	if peakElevDeg >= 65 {
		score++
	}
	if duration >= 2*time.Minute {
		score++
	}

	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	return score
}

// windowsFromSamples turns the visible spans of a sampled pass into window
// records. Spans shorter than minWindow are dropped: a momentary flash is
// not worth reporting. The peak index is the first sample achieving the
// maximum elevation within the span; the tie-break must stay first-index so
// output is reproducible.
func windowsFromSamples(obs Observer, series SampleSeries, minElevDeg, twilightDeg float64, minWindow time.Duration) ([]Window, error) {
	if err := series.validate(); err != nil {
		return nil, err
	}
	if series.Len() == 0 {
		return nil, nil
	}

	mask, err := VisibleMask(series.ElevDeg, series.SunAltDeg, series.Sunlit, minElevDeg, twilightDeg)
	if err != nil {
		return nil, err
	}

	var windows []Window
	for _, span := range ContiguousTrueSpans(mask) {
		startUTC := series.Times[span.Start]
		endUTC := series.Times[span.End]
		duration := endUTC.Sub(startUTC)
		if duration < minWindow {
			continue
		}

		peak := span.Start
		for i := span.Start + 1; i <= span.End; i++ {
			if series.ElevDeg[i] > series.ElevDeg[peak] {
				peak = i
			}
		}

		windows = append(windows, Window{
			Start:          startUTC.In(obs.TZ),
			End:            endUTC.In(obs.TZ),
			Peak:           series.Times[peak].In(obs.TZ),
			Duration:       duration,
			PeakElevDeg:    series.ElevDeg[peak],
			StartAzDeg:     series.AzDeg[span.Start],
			PeakAzDeg:      series.AzDeg[peak],
			EndAzDeg:       series.AzDeg[span.End],
			StartDirection: cardinal16(series.AzDeg[span.Start]),
			PeakDirection:  cardinal16(series.AzDeg[peak]),
			EndDirection:   cardinal16(series.AzDeg[span.End]),
			Stars:          VisibilityStars(series.ElevDeg[peak], duration),
		})
	}

	return windows, nil
}

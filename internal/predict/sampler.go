package predict

import "time"

// SampleTimes discretizes the interval between a pass rise and set into
// fixed-step timestamps. The sequence starts at rise, advances by step, and
// never exceeds set; set itself is appended as the final element when the
// last step does not land on it exactly. step must be positive. A degenerate
// rise == set pass yields a single sample, which the window assembler later
// discards as too short to observe.
func SampleTimes(rise, set time.Time, step time.Duration) []time.Time {
	var samples []time.Time
	for cursor := rise; !cursor.After(set); cursor = cursor.Add(step) {
		samples = append(samples, cursor)
	}
	if !samples[len(samples)-1].Equal(set) {
		samples = append(samples, set)
	}
	return samples
}

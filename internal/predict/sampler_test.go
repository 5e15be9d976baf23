package predict

import (
	"testing"
	"time"
)

func TestSampleTimes_StepAndEndpoint(t *testing.T) {
	rise := time.Date(2026, 3, 1, 5, 0, 0, 0, time.UTC)
	set := rise.Add(35 * time.Second)

	times := SampleTimes(rise, set, 10*time.Second)

	// 0s, 10s, 20s, 30s, then the set time appended.
	if len(times) != 5 {
		t.Fatalf("got %d samples, want 5", len(times))
	}
	if !times[0].Equal(rise) {
		t.Errorf("first sample = %s, want rise %s", times[0], rise)
	}
	if !times[len(times)-1].Equal(set) {
		t.Errorf("last sample = %s, want set %s", times[len(times)-1], set)
	}
	for i := 1; i < 4; i++ {
		if d := times[i].Sub(times[i-1]); d != 10*time.Second {
			t.Errorf("step %d = %s, want 10s", i, d)
		}
	}
}

func TestSampleTimes_ExactMultiple(t *testing.T) {
	// When the range divides evenly the set time is not duplicated.
	rise := time.Date(2026, 3, 1, 5, 0, 0, 0, time.UTC)
	set := rise.Add(30 * time.Second)

	times := SampleTimes(rise, set, 10*time.Second)
	if len(times) != 4 {
		t.Fatalf("got %d samples, want 4", len(times))
	}
	if !times[3].Equal(set) {
		t.Errorf("last sample = %s, want %s", times[3], set)
	}
}

func TestSampleTimes_DegeneratePass(t *testing.T) {
	rise := time.Date(2026, 3, 1, 5, 0, 0, 0, time.UTC)

	times := SampleTimes(rise, rise, 10*time.Second)
	if len(times) != 1 {
		t.Fatalf("got %d samples, want 1", len(times))
	}
	if !times[0].Equal(rise) {
		t.Errorf("sample = %s, want %s", times[0], rise)
	}
}

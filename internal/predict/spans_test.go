package predict

import (
	"reflect"
	"testing"
)

func TestContiguousTrueSpans(t *testing.T) {
	cases := []struct {
		name string
		mask []bool
		want []Span
	}{
		{"empty", nil, nil},
		{"all false", []bool{false, false, false}, nil},
		{"all true", []bool{true, true, true}, []Span{{0, 2}}},
		{"interior run", []bool{false, true, true, false}, []Span{{1, 2}}},
		{"two runs", []bool{false, true, true, false, true}, []Span{{1, 2}, {4, 4}}},
		{"single true", []bool{true}, []Span{{0, 0}}},
		{"run at end", []bool{false, false, true}, []Span{{2, 2}}},
		{"run at start", []bool{true, false, true, true}, []Span{{0, 0}, {2, 3}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ContiguousTrueSpans(tc.mask)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ContiguousTrueSpans(%v) = %v, want %v", tc.mask, got, tc.want)
			}
		})
	}
}

func TestContiguousTrueSpans_InclusiveBounds(t *testing.T) {
	// Span bounds are inclusive sample indices, so a span covering samples
	// 1..2 of a four-sample mask has Start=1, End=2.
	spans := ContiguousTrueSpans([]bool{false, true, true, false})
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Start != 1 || spans[0].End != 2 {
		t.Errorf("span = %+v, want {1 2}", spans[0])
	}
}

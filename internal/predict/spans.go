package predict

// Span is an inclusive index range [Start, End] into a sample series.
type Span struct {
	Start int
	End   int
}

// ContiguousTrueSpans returns the maximal runs of true values in mask as
// inclusive index spans, in ascending order. Runs separated by any number of
// false values are never merged. A run still open at the end of the mask is
// closed at the final index.
//
// Example: [false, true, true, false, true] -> [{1,2}, {4,4}].
func ContiguousTrueSpans(mask []bool) []Span {
	var spans []Span
	start := -1

	for i, v := range mask {
		if v && start < 0 {
			start = i
		} else if !v && start >= 0 {
			spans = append(spans, Span{Start: start, End: i - 1})
			start = -1
		}
	}

	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(mask) - 1})
	}

	return spans
}

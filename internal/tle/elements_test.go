package tle

import (
	"errors"
	"testing"
)

const sampleDoc = `NOAA 15
1 25338U 98030A   26059.51782528 -.00002182  00000-0 -11606-4 0  2927
2 25338  98.7200 247.4627 0006703 130.5360 325.0288 14.25940889 56353

ISS (ZARYA)
1 25544U 98067A   26059.54791667  .00016717  00000-0  10270-3 0  9006
2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.49560000 56353
`

func TestParse_FindsNamedSatellite(t *testing.T) {
	elems, err := Parse("ISS (ZARYA)", sampleDoc, "http://example.test/stations.txt")
	if err != nil {
		t.Fatal(err)
	}
	if elems.Name != "ISS (ZARYA)" {
		t.Errorf("name = %q", elems.Name)
	}
	if elems.Line1[:8] != "1 25544U" {
		t.Errorf("line1 = %q, want the ISS record", elems.Line1)
	}
	if elems.Line2[:7] != "2 25544" {
		t.Errorf("line2 = %q, want the ISS record", elems.Line2)
	}
}

func TestParse_CaseInsensitiveName(t *testing.T) {
	elems, err := Parse("iss (zarya)", sampleDoc, "test")
	if err != nil {
		t.Fatal(err)
	}
	if elems.Line1[:8] != "1 25544U" {
		t.Errorf("case-insensitive lookup returned %q", elems.Line1)
	}
}

func TestParse_MissingSatellite(t *testing.T) {
	_, err := Parse("HUBBLE", sampleDoc, "test")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestParse_RejectsMalformedRecord(t *testing.T) {
	// The name matches but the following lines lack the "1 "/"2 " markers.
	doc := "ISS (ZARYA)\nnot an element line\nstill not one\n"
	_, err := Parse("ISS (ZARYA)", doc, "test")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestParse_SkipsBlankLines(t *testing.T) {
	doc := "\n\nISS (ZARYA)\n\n1 25544U 98067A   26059.54791667  .00016717  00000-0  10270-3 0  9006\n\n2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.49560000 56353\n"
	if _, err := Parse("ISS (ZARYA)", doc, "test"); err != nil {
		t.Errorf("blank lines broke parsing: %v", err)
	}
}

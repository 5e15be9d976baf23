package predict

import (
	"fmt"
	"time"
)

// Observer is a resolved ground location: coordinates, a display name, and
// the IANA timezone all window timestamps are reported in. It is built once
// and never mutated.
type Observer struct {
	Latitude  float64 // degrees North
	Longitude float64 // degrees East
	Name      string
	TZName    string
	TZ        *time.Location
}

// NewObserver builds an Observer, loading the IANA timezone by name.
func NewObserver(lat, lon float64, name, tzName string) (Observer, error) {
	if lat < -90 || lat > 90 {
		return Observer{}, fmt.Errorf("latitude %.4f out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return Observer{}, fmt.Errorf("longitude %.4f out of range [-180, 180]", lon)
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return Observer{}, fmt.Errorf("load timezone %q: %w", tzName, err)
	}
	return Observer{
		Latitude:  lat,
		Longitude: lon,
		Name:      name,
		TZName:    tzName,
		TZ:        tz,
	}, nil
}

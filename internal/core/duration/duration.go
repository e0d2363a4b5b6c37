// Package duration computes net worked time for a single shift.
package duration

import (
	"worktime.service/internal/core/timeparse"
)

// Net is the outcome of a single shift computation. Clamped is set when
// either the shift or the lunch interval came out negative and was forced to
// zero; the numbers stay compatible with what callers always saw, the flag
// exists so aggregation layers can surface a data-quality diagnostic.
type Net struct {
	Minutes float64
	Clamped bool
}

// Hours returns the net worked time in fractional hours.
func (n Net) Hours() float64 {
	return n.Minutes / 60
}

// NetMinutes computes worked minutes between start and end, minus the lunch
// interval when both lunch bounds are present. Inputs may be in any shape
// timeparse accepts. The boolean is false when start or end is unknown; the
// caller must treat that as "duration unknown", not zero.
//
// End before start is not interpreted as an overnight shift: the result
// clamps to zero. Same for a lunch interval longer than the shift.
func NetMinutes(start, end, lunchStart, lunchEnd string) (Net, bool) {
	startMin, ok := timeparse.Minutes(start)
	if !ok {
		return Net{}, false
	}
	endMin, ok := timeparse.Minutes(end)
	if !ok {
		return Net{}, false
	}

	net := Net{Minutes: float64(endMin - startMin)}

	lunchStartMin, lsOK := timeparse.Minutes(lunchStart)
	lunchEndMin, leOK := timeparse.Minutes(lunchEnd)
	if lsOK && leOK {
		lunch := float64(lunchEndMin - lunchStartMin)
		if lunch < 0 {
			lunch = 0
			net.Clamped = true
		}
		net.Minutes -= lunch
	}

	if net.Minutes < 0 {
		net.Minutes = 0
		net.Clamped = true
	}
	return net, true
}

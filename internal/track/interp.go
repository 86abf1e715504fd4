package track

import "math"

// Evaluate computes the track value at a fractional row, along with the
// time elapsed (in rows) since the governing key. It is pure: identical
// inputs always produce identical outputs.
//
// Outside the keyed range the value clamps to the nearest key; elapsed
// may be negative before the first key. An empty track evaluates to 0
// with elapsed measured from row 0.
func (t *Track) Evaluate(row float64) (value, elapsed float64) {
	if len(t.keys) == 0 {
		return 0, row
	}

	i, found := t.Locate(int32(math.Floor(row)))
	if !found {
		// Resolve to the key immediately preceding the insertion point.
		i--
	}

	if i < 0 {
		first := t.keys[0]
		return float64(first.Value), row - float64(first.Row)
	}
	if i >= len(t.keys)-1 {
		last := t.keys[len(t.keys)-1]
		return float64(last.Value), row - float64(last.Row)
	}

	left, right := t.keys[i], t.keys[i+1]
	u := (row - float64(left.Row)) / (float64(right.Row) - float64(left.Row))
	u = left.Curve.shape(u)
	value = float64(left.Value) + (float64(right.Value)-float64(left.Value))*u
	return value, row - float64(left.Row)
}

func (c CurveType) shape(u float64) float64 {
	switch c {
	case Step:
		return 0
	case Smooth:
		return u * u * (3 - 2*u)
	case Ramp:
		return u * u
	}
	return u
}

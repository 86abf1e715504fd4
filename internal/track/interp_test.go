package track

import "testing"

func TestEvaluateEmptyTrack(t *testing.T) {
	tr := New("empty")
	v, elapsed := tr.Evaluate(12.5)
	if v != 0 || elapsed != 12.5 {
		t.Fatalf("empty track: got (%v,%v) want (0,12.5)", v, elapsed)
	}
}

func TestEvaluateClampAndMidpoint(t *testing.T) {
	tr := New("clamp")
	tr.Upsert(Key{Row: 0, Value: 0, Curve: Linear})
	tr.Upsert(Key{Row: 10, Value: 1, Curve: Step})

	if v, _ := tr.Evaluate(5); v != 0.5 {
		t.Fatalf("linear midpoint: got %v want 0.5", v)
	}
	v, elapsed := tr.Evaluate(-5)
	if v != 0 || elapsed != -5 {
		t.Fatalf("clamp before first: got (%v,%v) want (0,-5)", v, elapsed)
	}
	v, elapsed = tr.Evaluate(15)
	if v != 1 || elapsed != 5 {
		t.Fatalf("clamp after last: got (%v,%v) want (1,5)", v, elapsed)
	}
}

func TestEvaluateCurveShapes(t *testing.T) {
	cases := []struct {
		curve CurveType
		row   float64
		want  float64
	}{
		{Step, 5, 0},
		{Step, 9.9, 0},
		{Linear, 2.5, 0.25},
		{Smooth, 5, 0.5},
		{Ramp, 5, 0.25},
	}
	for _, tc := range cases {
		tr := New("shape")
		tr.Upsert(Key{Row: 0, Value: 0, Curve: tc.curve})
		tr.Upsert(Key{Row: 10, Value: 1, Curve: Linear})
		if v, _ := tr.Evaluate(tc.row); v != tc.want {
			t.Fatalf("%s at row %v: got %v want %v", tc.curve, tc.row, v, tc.want)
		}
	}
}

func TestEvaluateUsesLeftCurveOnly(t *testing.T) {
	// The right key's curve must not affect the segment.
	tr := New("left")
	tr.Upsert(Key{Row: 0, Value: 0, Curve: Ramp})
	tr.Upsert(Key{Row: 10, Value: 1, Curve: Smooth})
	if v, _ := tr.Evaluate(5); v != 0.25 {
		t.Fatalf("left-curve segment: got %v want 0.25", v)
	}
}

func TestEvaluateElapsedWithinSegment(t *testing.T) {
	tr := New("elapsed")
	tr.Upsert(Key{Row: 4, Value: 1, Curve: Linear})
	tr.Upsert(Key{Row: 20, Value: 3, Curve: Linear})
	_, elapsed := tr.Evaluate(6.5)
	if elapsed != 2.5 {
		t.Fatalf("elapsed: got %v want 2.5", elapsed)
	}
}

func TestEvaluateExactKeyRow(t *testing.T) {
	tr := New("exact")
	tr.Upsert(Key{Row: 0, Value: 2, Curve: Linear})
	tr.Upsert(Key{Row: 10, Value: 4, Curve: Linear})
	if v, elapsed := tr.Evaluate(0); v != 2 || elapsed != 0 {
		t.Fatalf("at first key: got (%v,%v) want (2,0)", v, elapsed)
	}
	if v, _ := tr.Evaluate(10); v != 4 {
		t.Fatalf("at last key: got %v want 4", v)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	tr := New("det")
	tr.Upsert(Key{Row: -3, Value: 0.125, Curve: Smooth})
	tr.Upsert(Key{Row: 7, Value: 0.875, Curve: Ramp})
	tr.Upsert(Key{Row: 31, Value: -2.5, Curve: Linear})
	for _, row := range []float64{-10, -3, 0.33, 6.999, 7, 18.5, 31, 100} {
		v1, e1 := tr.Evaluate(row)
		v2, e2 := tr.Evaluate(row)
		if v1 != v2 || e1 != e2 {
			t.Fatalf("non-deterministic at %v: (%v,%v) vs (%v,%v)", row, v1, e1, v2, e2)
		}
	}
}

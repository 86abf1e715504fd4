package track

import (
	"errors"
	"fmt"
	"sort"
)

var ErrKeyNotFound = errors.New("track: key not found")

// CurveType selects the interpolation shape used when leaving a key
// toward its successor.
type CurveType uint8

const (
	Step CurveType = iota
	Linear
	Smooth
	Ramp

	curveCount
)

func (c CurveType) Valid() bool {
	return c < curveCount
}

func (c CurveType) String() string {
	switch c {
	case Step:
		return "step"
	case Linear:
		return "linear"
	case Smooth:
		return "smooth"
	case Ramp:
		return "ramp"
	}
	return fmt.Sprintf("curve(%d)", uint8(c))
}

// Key is one keyframe anchor on a track.
type Key struct {
	Row   int32
	Value float32
	Curve CurveType
}

// Track is a named, ordered keyframe sequence for one time-varying
// parameter. Keys are strictly ascending and unique by row.
type Track struct {
	Name string
	keys []Key
}

func New(name string) *Track {
	return &Track{Name: name}
}

// Locate binary-searches for row. On an exact match it returns
// (index, true); otherwise it returns (insertion index, false).
func (t *Track) Locate(row int32) (int, bool) {
	i := sort.Search(len(t.keys), func(i int) bool {
		return t.keys[i].Row >= row
	})
	if i < len(t.keys) && t.keys[i].Row == row {
		return i, true
	}
	return i, false
}

// Upsert overwrites the key at key.Row in place when one exists,
// otherwise splices the key in at its sorted position. Unrelated keys
// are never reordered.
func (t *Track) Upsert(key Key) {
	i, found := t.Locate(key.Row)
	if found {
		t.keys[i] = key
		return
	}
	t.keys = append(t.keys, Key{})
	copy(t.keys[i+1:], t.keys[i:])
	t.keys[i] = key
}

// Remove deletes the key at row. The track is left unchanged when no
// key exists at that row.
func (t *Track) Remove(row int32) error {
	i, found := t.Locate(row)
	if !found {
		return fmt.Errorf("%w: row %d on %q", ErrKeyNotFound, row, t.Name)
	}
	t.keys = append(t.keys[:i], t.keys[i+1:]...)
	return nil
}

// Keys returns the ordered keyframe sequence. The returned slice is a
// copy; mutations go through Upsert/Remove.
func (t *Track) Keys() []Key {
	out := make([]Key, len(t.keys))
	copy(out, t.keys)
	return out
}

func (t *Track) Len() int {
	return len(t.keys)
}

// Clear drops every key. Used on reconnect resync and before a file
// load replaces the sequence.
func (t *Track) Clear() {
	t.keys = t.keys[:0]
}

// Replace swaps in a complete key sequence, validating the strictly
// ascending row invariant.
func (t *Track) Replace(keys []Key) error {
	for i := 1; i < len(keys); i++ {
		if keys[i].Row <= keys[i-1].Row {
			return fmt.Errorf("track: keys out of order at %d (row %d after %d)",
				i, keys[i].Row, keys[i-1].Row)
		}
	}
	t.keys = append(t.keys[:0], keys...)
	return nil
}

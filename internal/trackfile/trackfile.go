// Package trackfile persists one track's keyframes to a binary stream.
//
// File layout: int32 key count, then count records of
// (int32 row, float32 bits, uint8 curve), big-endian, no padding.
package trackfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/soundtoys/tracksync/internal/track"
)

var (
	ErrTruncated = errors.New("trackfile: truncated data")
	ErrBadCount  = errors.New("trackfile: invalid key count")
	ErrBadCurve  = errors.New("trackfile: invalid curve type")
)

const recordSize = 4 + 4 + 1

// Opener is the byte-stream capability supplied by the host. The core
// never inspects paths beyond composing them with Path.
type Opener interface {
	OpenRead(name string) (io.ReadCloser, error)
	OpenWrite(name string) (io.WriteCloser, error)
}

// Dir is the os-backed Opener rooted at a directory. Dir("") resolves
// names relative to the working directory.
type Dir string

func (d Dir) OpenRead(name string) (io.ReadCloser, error) {
	return os.Open(d.join(name))
}

func (d Dir) OpenWrite(name string) (io.WriteCloser, error) {
	return os.Create(d.join(name))
}

func (d Dir) join(name string) string {
	if d == "" {
		return name
	}
	return string(d) + string(os.PathSeparator) + name
}

// Path composes the persistence name for one track.
func Path(base, trackName string) string {
	return base + "_" + trackName + ".track"
}

// Write dumps keys to w in the track file layout.
func Write(w io.Writer, keys []track.Key) error {
	buf := make([]byte, 0, 4+len(keys)*recordSize)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(keys)))
	for _, k := range keys {
		buf = binary.BigEndian.AppendUint32(buf, uint32(k.Row))
		buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(k.Value))
		buf = append(buf, byte(k.Curve))
	}
	_, err := w.Write(buf)
	return err
}

// Read parses a complete track file from r.
func Read(r io.Reader) ([]track.Key, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, ErrTruncated
	}
	count := int32(binary.BigEndian.Uint32(head[:]))
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCount, count)
	}

	keys := make([]track.Key, 0, count)
	rec := make([]byte, recordSize)
	for i := int32(0); i < count; i++ {
		if _, err := io.ReadFull(r, rec); err != nil {
			return nil, ErrTruncated
		}
		curve := track.CurveType(rec[8])
		if !curve.Valid() {
			return nil, fmt.Errorf("%w: %d at record %d", ErrBadCurve, rec[8], i)
		}
		keys = append(keys, track.Key{
			Row:   int32(binary.BigEndian.Uint32(rec[0:4])),
			Value: math.Float32frombits(binary.BigEndian.Uint32(rec[4:8])),
			Curve: curve,
		})
	}
	return keys, nil
}

// Save writes t's keyframes to its persistence destination under base.
func Save(op Opener, base string, t *track.Track) error {
	w, err := op.OpenWrite(Path(base, t.Name))
	if err != nil {
		return fmt.Errorf("trackfile: open %q for write: %w", t.Name, err)
	}
	if err := Write(w, t.Keys()); err != nil {
		_ = w.Close()
		return fmt.Errorf("trackfile: write %q: %w", t.Name, err)
	}
	return w.Close()
}

// Load fully replaces t's keyframe sequence from its persistence
// destination under base. Files produced by Save always satisfy the
// track's ordering invariant; anything else is rejected.
func Load(op Opener, base string, t *track.Track) error {
	r, err := op.OpenRead(Path(base, t.Name))
	if err != nil {
		return fmt.Errorf("trackfile: open %q for read: %w", t.Name, err)
	}
	defer r.Close()

	keys, err := Read(r)
	if err != nil {
		return fmt.Errorf("trackfile: read %q: %w", t.Name, err)
	}
	if err := t.Replace(keys); err != nil {
		return fmt.Errorf("trackfile: load %q: %w", t.Name, err)
	}
	return nil
}

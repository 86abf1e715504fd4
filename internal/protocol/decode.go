package protocol

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/soundtoys/tracksync/internal/track"
)

// Decoders parse server->client payloads. Payloads are fixed-layout;
// the caller reads exactly PayloadSize(cmd) bytes before calling.

// SetKey is a decoded set_key payload.
type SetKey struct {
	Track int32
	Key   track.Key
}

func DecodeSetKey(payload []byte) (SetKey, error) {
	if len(payload) != 13 {
		return SetKey{}, fmt.Errorf("%w: set_key wants 13 bytes, got %d", ErrShortPayload, len(payload))
	}
	curve := track.CurveType(payload[12])
	if !curve.Valid() {
		return SetKey{}, fmt.Errorf("%w: %d", ErrBadCurve, payload[12])
	}
	return SetKey{
		Track: int32(binary.BigEndian.Uint32(payload[0:4])),
		Key: track.Key{
			Row:   int32(binary.BigEndian.Uint32(payload[4:8])),
			Value: math.Float32frombits(binary.BigEndian.Uint32(payload[8:12])),
			Curve: curve,
		},
	}, nil
}

// DeleteKey is a decoded delete_key payload.
type DeleteKey struct {
	Track int32
	Row   int32
}

func DecodeDeleteKey(payload []byte) (DeleteKey, error) {
	if len(payload) != 8 {
		return DeleteKey{}, fmt.Errorf("%w: delete_key wants 8 bytes, got %d", ErrShortPayload, len(payload))
	}
	return DeleteKey{
		Track: int32(binary.BigEndian.Uint32(payload[0:4])),
		Row:   int32(binary.BigEndian.Uint32(payload[4:8])),
	}, nil
}

func DecodeSetRow(payload []byte) (int32, error) {
	if len(payload) != 4 {
		return 0, fmt.Errorf("%w: set_row wants 4 bytes, got %d", ErrShortPayload, len(payload))
	}
	return int32(binary.BigEndian.Uint32(payload)), nil
}

func DecodePause(payload []byte) (bool, error) {
	if len(payload) != 1 {
		return false, fmt.Errorf("%w: pause wants 1 byte, got %d", ErrShortPayload, len(payload))
	}
	return payload[0] != 0, nil
}

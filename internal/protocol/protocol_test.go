package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/soundtoys/tracksync/internal/track"
)

func TestPayloadSizes(t *testing.T) {
	cases := []struct {
		cmd  Command
		want int
	}{
		{CmdSetKey, 13},
		{CmdDeleteKey, 8},
		{CmdSetRow, 4},
		{CmdPause, 1},
		{CmdSaveTracks, 0},
	}
	for _, tc := range cases {
		n, ok := PayloadSize(tc.cmd)
		if !ok || n != tc.want {
			t.Fatalf("%s: got (%d,%v) want (%d,true)", tc.cmd, n, ok, tc.want)
		}
	}
	if _, ok := PayloadSize(Command(6)); ok {
		t.Fatalf("command 6 must be unknown")
	}
	if _, ok := PayloadSize(Command(0xff)); ok {
		t.Fatalf("command 0xff must be unknown")
	}
}

func TestDecodeSetKey(t *testing.T) {
	// track 0, row 4, value 2.5, linear
	var payload []byte
	payload = binary.BigEndian.AppendUint32(payload, 0)
	payload = binary.BigEndian.AppendUint32(payload, 4)
	payload = binary.BigEndian.AppendUint32(payload, math.Float32bits(2.5))
	payload = append(payload, byte(track.Linear))

	sk, err := DecodeSetKey(payload)
	if err != nil {
		t.Fatalf("decode set_key: %v", err)
	}
	if sk.Track != 0 || sk.Key.Row != 4 || sk.Key.Value != 2.5 || sk.Key.Curve != track.Linear {
		t.Fatalf("set_key mismatch: %+v", sk)
	}
}

func TestDecodeSetKeyNegativeRow(t *testing.T) {
	var payload []byte
	row := int32(-16)
	payload = binary.BigEndian.AppendUint32(payload, 2)
	payload = binary.BigEndian.AppendUint32(payload, uint32(row))
	payload = binary.BigEndian.AppendUint32(payload, math.Float32bits(-0.5))
	payload = append(payload, byte(track.Smooth))

	sk, err := DecodeSetKey(payload)
	if err != nil {
		t.Fatalf("decode set_key: %v", err)
	}
	if sk.Track != 2 || sk.Key.Row != -16 || sk.Key.Value != -0.5 {
		t.Fatalf("set_key mismatch: %+v", sk)
	}
}

func TestDecodeSetKeyRejectsBadCurve(t *testing.T) {
	payload := make([]byte, 13)
	payload[12] = 9
	if _, err := DecodeSetKey(payload); !errors.Is(err, ErrBadCurve) {
		t.Fatalf("expected ErrBadCurve, got %v", err)
	}
}

func TestDecodeDeleteKey(t *testing.T) {
	var payload []byte
	row := int32(-3)
	payload = binary.BigEndian.AppendUint32(payload, 7)
	payload = binary.BigEndian.AppendUint32(payload, uint32(row))
	dk, err := DecodeDeleteKey(payload)
	if err != nil {
		t.Fatalf("decode delete_key: %v", err)
	}
	if dk.Track != 7 || dk.Row != -3 {
		t.Fatalf("delete_key mismatch: %+v", dk)
	}
}

func TestDecodeShortPayloads(t *testing.T) {
	if _, err := DecodeSetKey([]byte{1, 2}); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("set_key short: %v", err)
	}
	if _, err := DecodeDeleteKey([]byte{1}); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("delete_key short: %v", err)
	}
	if _, err := DecodeSetRow(nil); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("set_row short: %v", err)
	}
	if _, err := DecodePause(nil); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("pause short: %v", err)
	}
}

func TestAppendSetRow(t *testing.T) {
	buf := AppendSetRow(nil, 0x01020304)
	want := []byte{byte(CmdSetRow), 1, 2, 3, 4}
	if !bytes.Equal(buf, want) {
		t.Fatalf("set_row frame: got % x want % x", buf, want)
	}

	// Negative rows carry their two's-complement bit pattern.
	buf = AppendSetRow(nil, -1)
	want = []byte{byte(CmdSetRow), 0xff, 0xff, 0xff, 0xff}
	if !bytes.Equal(buf, want) {
		t.Fatalf("set_row -1: got % x want % x", buf, want)
	}
}

func TestAppendGetTrack(t *testing.T) {
	buf, err := AppendGetTrack(nil, "cam.fov")
	if err != nil {
		t.Fatalf("get_track: %v", err)
	}
	want := append([]byte{byte(CmdGetTrack), 0, 0, 0, 7}, "cam.fov"...)
	if !bytes.Equal(buf, want) {
		t.Fatalf("get_track frame: got % x want % x", buf, want)
	}
}

func TestAppendReusesScratch(t *testing.T) {
	scratch := make([]byte, 0, 64)
	buf := AppendSetRow(scratch, 10)
	if &buf[0] != &scratch[:1][0] {
		t.Fatalf("scratch buffer not reused")
	}
}

func TestDecodePause(t *testing.T) {
	for _, tc := range []struct {
		b    byte
		want bool
	}{{0, false}, {1, true}, {0x7f, true}} {
		got, err := DecodePause([]byte{tc.b})
		if err != nil || got != tc.want {
			t.Fatalf("pause %d: got (%v,%v) want %v", tc.b, got, err, tc.want)
		}
	}
}

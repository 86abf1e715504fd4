package protocol

import (
	"encoding/binary"
	"math"
)

// Encoders append client->server frames to a caller-owned scratch
// buffer, so a session can reuse one allocation across ticks.

// AppendSetRow appends a set_row frame reporting the playback row.
func AppendSetRow(buf []byte, row int32) []byte {
	buf = append(buf, byte(CmdSetRow))
	return binary.BigEndian.AppendUint32(buf, uint32(row))
}

// AppendGetTrack appends a get_track frame registering interest in a
// track name. The server answers with set_key/delete_key frames.
func AppendGetTrack(buf []byte, name string) ([]byte, error) {
	if len(name) > math.MaxInt32 {
		return nil, ErrNameTooLong
	}
	buf = append(buf, byte(CmdGetTrack))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(name)))
	return append(buf, name...), nil
}

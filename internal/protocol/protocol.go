package protocol

// Command is the one-byte frame id.
type Command byte

const (
	CmdSetKey     Command = 0 // server->client: int32 track, int32 row, u32 value bits, u8 curve
	CmdDeleteKey  Command = 1 // server->client: int32 track, int32 row
	CmdGetTrack   Command = 2 // client->server: int32 name length, ASCII name
	CmdSetRow     Command = 3 // both: int32 row
	CmdPause      Command = 4 // server->client: u8 flag
	CmdSaveTracks Command = 5 // server->client: no payload
)

// Handshake literals. The client speaks first; the server's reply is a
// different fixed literal of known length.
const (
	ClientGreet = "hello, synctracker!"
	ServerGreet = "hello, demo!"
)

// DefaultPort is the editor's TCP listen port.
const DefaultPort = 1338

func (c Command) String() string {
	switch c {
	case CmdSetKey:
		return "set_key"
	case CmdDeleteKey:
		return "delete_key"
	case CmdGetTrack:
		return "get_track"
	case CmdSetRow:
		return "set_row"
	case CmdPause:
		return "pause"
	case CmdSaveTracks:
		return "save_tracks"
	}
	return "unknown"
}

// PayloadSize reports the fixed payload length for cmd, in bytes after
// the command id. The second result is false for ids outside the
// contract; such frames cannot be skipped and the stream is dead.
func PayloadSize(cmd Command) (int, bool) {
	switch cmd {
	case CmdSetKey:
		return 13, true
	case CmdDeleteKey:
		return 8, true
	case CmdSetRow:
		return 4, true
	case CmdPause:
		return 1, true
	case CmdSaveTracks:
		return 0, true
	}
	return 0, false
}

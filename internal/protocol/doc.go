// Package protocol owns the editor wire contract and parsing primitives.
//
// Ownership boundary:
// - command ids, payload layouts, handshake literals
// - big-endian frame encode/decode primitives
//
// Every frame is one command-id byte followed by a fixed-size payload.
// There is no length prefix: the command id is the only framing anchor,
// so an unknown id makes the rest of the stream unparseable.
package protocol

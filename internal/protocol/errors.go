package protocol

import "errors"

var (
	ErrUnknownCommand    = errors.New("protocol: unknown command id")
	ErrUnexpectedCommand = errors.New("protocol: command not valid in this direction")
	ErrShortPayload      = errors.New("protocol: short payload")
	ErrBadHandshake      = errors.New("protocol: handshake mismatch")
	ErrBadCurve          = errors.New("protocol: invalid curve type")
	ErrNameTooLong       = errors.New("protocol: track name too long")
)

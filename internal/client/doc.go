// Package client owns the editor connection and the per-session track
// registry.
//
// Ownership boundary:
// - connect/handshake against resolved editor addresses
// - per-tick non-blocking receive and dispatch of command frames
// - outbound row reporting, at most one set_row per tick
// - track registration order, which is the wire's track index space
//
// The client is single-threaded and cooperative: the host's frame loop
// supplies all timing by calling Update once per rendered frame. No
// goroutines, locks or callbacks touch the connection.
package client

package client

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/soundtoys/tracksync/internal/observability"
	"github.com/soundtoys/tracksync/internal/protocol"
	"github.com/soundtoys/tracksync/internal/track"
	"github.com/soundtoys/tracksync/internal/trackfile"
)

var (
	ErrNotConnected  = errors.New("client: not connected")
	ErrConnectFailed = errors.New("client: no address completed the handshake")
	ErrOfflineMode   = errors.New("client: offline session cannot connect")
	ErrTrackIndex    = errors.New("client: track index out of range")
)

const defaultDialTimeout = 3 * time.Second

// Client drives a session's keyframe tracks, either live from an
// editor connection or offline from track files. Tracks are addressed
// on the wire by registration order, so the registry is append-only
// for the session's lifetime.
type Client struct {
	handler Handler

	conn        net.Conn
	lastSentRow int32
	rowSent     bool

	tracks []*track.Track
	byName map[string]int

	// scratch backs every outbound frame; reset per send, never
	// aliased across calls.
	scratch []byte
	inbuf   [13]byte

	dialTimeout time.Duration

	offline bool
	files   trackfile.Opener
	base    string
}

type Option func(*Client)

// WithTrackFiles supplies the byte-stream capability and base
// identifier used for save_tracks handling and explicit saves.
func WithTrackFiles(op trackfile.Opener, base string) Option {
	return func(c *Client) {
		c.files = op
		c.base = base
	}
}

func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.dialTimeout = d
	}
}

// New creates a live-mode session. handler may be nil.
func New(handler Handler, opts ...Option) *Client {
	if handler == nil {
		handler = nopHandler{}
	}
	c := &Client{
		handler:     handler,
		byName:      make(map[string]int),
		scratch:     make([]byte, 0, 64),
		dialTimeout: defaultDialTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewOffline creates a standalone session that populates tracks from
// files under base on first reference. handler may be nil.
func NewOffline(handler Handler, op trackfile.Opener, base string, opts ...Option) *Client {
	c := New(handler, opts...)
	c.offline = true
	c.files = op
	c.base = base
	return c
}

// Connect tears down any existing connection, then attempts the
// handshake against each address resolved for host, in resolution
// order, stopping at the first that completes. On success every
// registered track is cleared and re-requested: a new connection is a
// fresh session with no server-side memory.
func (c *Client) Connect(host string, port int) error {
	if c.offline {
		return ErrOfflineMode
	}
	c.Close()

	addrs, err := net.LookupHost(host)
	if err != nil {
		return fmt.Errorf("%w: resolve %q: %v", ErrConnectFailed, host, err)
	}

	var lastErr error
	for _, addr := range addrs {
		conn, err := c.tryAddress(net.JoinHostPort(addr, strconv.Itoa(port)))
		if err != nil {
			log.Warn().Str("addr", addr).Err(err).Msg("editor candidate failed")
			lastErr = err
			continue
		}
		c.conn = conn
		c.rowSent = false
		if err := c.resync(); err != nil {
			c.fail(err)
			return err
		}
		log.Info().Str("addr", conn.RemoteAddr().String()).Msg("editor connected")
		return nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: %q resolved to no addresses", ErrConnectFailed, host)
	}
	return fmt.Errorf("%w: %v", ErrConnectFailed, lastErr)
}

func (c *Client) tryAddress(addr string) (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", addr, c.dialTimeout)
	if err != nil {
		return nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(c.dialTimeout))
	if _, err := conn.Write([]byte(protocol.ClientGreet)); err != nil {
		_ = conn.Close()
		return nil, err
	}
	reply := make([]byte, len(protocol.ServerGreet))
	if _, err := io.ReadFull(conn, reply); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if string(reply) != protocol.ServerGreet {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: got %q", protocol.ErrBadHandshake, reply)
	}
	_ = conn.SetDeadline(time.Time{})
	return conn, nil
}

// resync re-requests every known track in registration order so the
// previously issued wire indices stay valid.
func (c *Client) resync() error {
	for _, tr := range c.tracks {
		tr.Clear()
		if err := c.sendGetTrack(tr.Name); err != nil {
			return err
		}
	}
	return nil
}

// Connected reports whether a usable connection is present.
func (c *Client) Connected() bool {
	return c.conn != nil
}

// Close drops the connection, discarding any partially-read frame
// state. In-memory tracks survive.
func (c *Client) Close() {
	if c.conn == nil {
		return
	}
	_ = c.conn.Close()
	c.conn = nil
	observability.RecordDisconnect()
}

// Track returns the named track, creating and registering it on first
// reference. Live sessions request the track's keys from the editor;
// offline sessions load them from the track file.
func (c *Client) Track(name string) *track.Track {
	if i, ok := c.byName[name]; ok {
		return c.tracks[i]
	}
	tr := track.New(name)
	c.byName[name] = len(c.tracks)
	c.tracks = append(c.tracks, tr)

	if c.offline {
		if err := trackfile.Load(c.files, c.base, tr); err != nil {
			log.Warn().Str("track", name).Err(err).Msg("track file load failed")
		}
		return tr
	}
	if c.conn != nil {
		if err := c.sendGetTrack(name); err != nil {
			c.fail(err)
		}
	}
	return tr
}

// Tracks returns the registry in registration order.
func (c *Client) Tracks() []*track.Track {
	out := make([]*track.Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// Update runs one cooperative tick: drain and dispatch every complete
// inbound frame without blocking, then report the playback row if it
// moved. Any transport or framing failure closes the connection and is
// returned; the caller decides whether to reconnect.
func (c *Client) Update(row int) error {
	if c.conn == nil {
		return ErrNotConnected
	}

	for {
		cmd, ok, err := c.pollCommand()
		if err != nil {
			return c.fail(err)
		}
		if !ok {
			break
		}
		if err := c.dispatch(cmd); err != nil {
			return c.fail(err)
		}
	}

	if c.handler.IsPlaying() && (!c.rowSent || int32(row) != c.lastSentRow) {
		c.scratch = protocol.AppendSetRow(c.scratch[:0], int32(row))
		if _, err := c.conn.Write(c.scratch); err != nil {
			return c.fail(err)
		}
		c.lastSentRow = int32(row)
		c.rowSent = true
		observability.RecordRowSent()
	}
	return nil
}

// pollCommand performs the zero-wait check for a command byte. A
// timeout means no data this tick; anything else is a transport
// failure.
func (c *Client) pollCommand() (protocol.Command, bool, error) {
	if err := c.conn.SetReadDeadline(time.Now()); err != nil {
		return 0, false, err
	}
	n, err := c.conn.Read(c.inbuf[:1])
	if derr := c.conn.SetReadDeadline(time.Time{}); derr != nil && err == nil {
		err = derr
	}
	if n == 1 {
		return protocol.Command(c.inbuf[0]), true, nil
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return 0, false, nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return 0, false, err
}

func (c *Client) dispatch(cmd protocol.Command) error {
	if cmd == protocol.CmdGetTrack {
		// Client->server only; a variable-length frame has no place
		// in the inbound fixed-layout stream.
		return fmt.Errorf("%w: %s", protocol.ErrUnexpectedCommand, cmd)
	}
	size, ok := protocol.PayloadSize(cmd)
	if !ok {
		// No length field on the wire: an unknown id cannot be
		// skipped, the stream is unrecoverable.
		return fmt.Errorf("%w: %d", protocol.ErrUnknownCommand, byte(cmd))
	}
	payload := c.inbuf[:size]
	if size > 0 {
		// A short read mid-frame is a transport failure; partial
		// frames are never buffered across ticks.
		if _, err := io.ReadFull(c.conn, payload); err != nil {
			return fmt.Errorf("client: read %s payload: %w", cmd, err)
		}
	}
	observability.RecordFrame(cmd.String())

	switch cmd {
	case protocol.CmdSetKey:
		sk, err := protocol.DecodeSetKey(payload)
		if err != nil {
			return err
		}
		tr, err := c.trackByIndex(sk.Track)
		if err != nil {
			return err
		}
		tr.Upsert(sk.Key)
		observability.RecordKeyApplied("upsert")
		log.Debug().Str("track", tr.Name).Int32("row", sk.Key.Row).Msg("key set")

	case protocol.CmdDeleteKey:
		dk, err := protocol.DecodeDeleteKey(payload)
		if err != nil {
			return err
		}
		tr, err := c.trackByIndex(dk.Track)
		if err != nil {
			return err
		}
		if err := tr.Remove(dk.Row); err != nil {
			// Local logic error, not a connection error.
			log.Warn().Str("track", tr.Name).Int32("row", dk.Row).Msg("delete of missing key")
		} else {
			observability.RecordKeyApplied("remove")
		}

	case protocol.CmdSetRow:
		row, err := protocol.DecodeSetRow(payload)
		if err != nil {
			return err
		}
		// Remember the editor's row so the next tick does not echo
		// it straight back.
		c.lastSentRow = row
		c.rowSent = true
		c.handler.SetRow(int(row))

	case protocol.CmdPause:
		paused, err := protocol.DecodePause(payload)
		if err != nil {
			return err
		}
		c.handler.Pause(paused)

	case protocol.CmdSaveTracks:
		if err := c.SaveAllTracks(); err != nil {
			// File trouble stays local; the connection is fine.
			log.Error().Err(err).Msg("save_tracks failed")
		}
	}
	return nil
}

// SaveAllTracks dumps every known track through the configured file
// capability. It is the same path a save_tracks command takes.
func (c *Client) SaveAllTracks() error {
	if c.files == nil {
		log.Info().Msg("save requested with no track file capability")
		return nil
	}
	var errs []error
	for _, tr := range c.tracks {
		if err := trackfile.Save(c.files, c.base, tr); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Client) trackByIndex(i int32) (*track.Track, error) {
	if i < 0 || int(i) >= len(c.tracks) {
		return nil, fmt.Errorf("%w: %d of %d", ErrTrackIndex, i, len(c.tracks))
	}
	return c.tracks[i], nil
}

func (c *Client) sendGetTrack(name string) error {
	buf, err := protocol.AppendGetTrack(c.scratch[:0], name)
	if err != nil {
		return err
	}
	c.scratch = buf
	if _, err := c.conn.Write(buf); err != nil {
		return fmt.Errorf("client: send get_track %q: %w", name, err)
	}
	return nil
}

func (c *Client) fail(err error) error {
	c.Close()
	return err
}

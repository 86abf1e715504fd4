// Package player is the demo playback host: it owns the row clock,
// implements the sync client's handler callbacks, and exposes a status
// snapshot for the HTTP surface.
package player

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/soundtoys/tracksync/internal/client"
	"github.com/soundtoys/tracksync/internal/config"
	"github.com/soundtoys/tracksync/internal/trackfile"
)

const tickInterval = 33 * time.Millisecond

// Player drives one sync session from a wall-clock row counter. All
// session access happens on the Run loop's goroutine; the HTTP surface
// reads only the mutex-guarded snapshot.
type Player struct {
	cfg     config.Player
	session *client.Client

	playing bool
	row     float64

	mu   sync.RWMutex
	snap Snapshot
}

// Snapshot is the status view published after every tick.
type Snapshot struct {
	Row       float64            `json:"row"`
	Playing   bool               `json:"playing"`
	Connected bool               `json:"connected"`
	Values    map[string]float64 `json:"values"`
}

func New(cfg config.Player) *Player {
	p := &Player{cfg: cfg}
	files := trackfile.Dir(cfg.TrackDir)
	if cfg.Mode == "offline" {
		p.session = client.NewOffline(p, files, cfg.TrackBase)
		// Offline playback free-runs from row zero.
		p.playing = true
	} else {
		p.session = client.New(p, client.WithTrackFiles(files, cfg.TrackBase))
	}
	for _, name := range cfg.Tracks {
		p.session.Track(name)
	}
	return p
}

// SetRow implements client.Handler: the editor seeks the player.
func (p *Player) SetRow(row int) {
	p.row = float64(row)
}

// Pause implements client.Handler.
func (p *Player) Pause(paused bool) {
	p.playing = !paused
}

// IsPlaying implements client.Handler.
func (p *Player) IsPlaying() bool {
	return p.playing
}

// RowForTime converts elapsed playback time to a fractional row.
func (p *Player) RowForTime(d time.Duration) float64 {
	return d.Seconds() * p.cfg.RowsPerSecond
}

// TimeForRow converts a row position back to playback time.
func (p *Player) TimeForRow(row float64) time.Duration {
	return time.Duration(row / p.cfg.RowsPerSecond * float64(time.Second))
}

// Connect establishes the live editor session. Callers decide whether
// to retry: there is no automatic reconnection.
func (p *Player) Connect() error {
	return p.session.Connect(p.cfg.EditorHost, p.cfg.EditorPort)
}

// Tick advances the row clock by dt and runs one cooperative update.
func (p *Player) Tick(dt time.Duration) error {
	if p.playing {
		p.row += dt.Seconds() * p.cfg.RowsPerSecond
	}
	var err error
	if p.cfg.Mode == "live" {
		err = p.session.Update(int(p.row))
	}
	p.publish()
	return err
}

// Run loops until ctx is done or the live session fails.
func (p *Player) Run(ctx context.Context) error {
	if p.cfg.Mode == "live" {
		if err := p.Connect(); err != nil {
			return err
		}
	}
	defer p.session.Close()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("player stopping")
			return nil
		case now := <-ticker.C:
			if err := p.Tick(now.Sub(last)); err != nil {
				log.Error().Err(err).Msg("sync session failed")
				return err
			}
			last = now
		}
	}
}

// Status returns the last published snapshot.
func (p *Player) Status() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// TrackValue evaluates one track at the snapshot row.
func (p *Player) TrackValue(name string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.snap.Values[name]
	return v, ok
}

func (p *Player) publish() {
	values := make(map[string]float64, len(p.cfg.Tracks))
	for _, tr := range p.session.Tracks() {
		v, _ := tr.Evaluate(p.row)
		values[tr.Name] = v
	}
	p.mu.Lock()
	p.snap = Snapshot{
		Row:       p.row,
		Playing:   p.playing,
		Connected: p.session.Connected(),
		Values:    values,
	}
	p.mu.Unlock()
}

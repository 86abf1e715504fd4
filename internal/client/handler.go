package client

// Handler receives playback notifications from the editor and answers
// the is-playing query that gates outbound row reports. A nil Handler
// is valid and behaves as a never-playing no-op.
type Handler interface {
	// SetRow is invoked when the editor seeks to a row.
	SetRow(row int)
	// Pause is invoked when the editor pauses or resumes playback.
	Pause(paused bool)
	// IsPlaying reports whether host playback is actively progressing.
	IsPlaying() bool
}

type nopHandler struct{}

func (nopHandler) SetRow(int)      {}
func (nopHandler) Pause(bool)      {}
func (nopHandler) IsPlaying() bool { return false }

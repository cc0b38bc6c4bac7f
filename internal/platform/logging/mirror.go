package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives a copy of every record written through a Logger.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirror atomic.Pointer[MirrorFunc]

// SetMirror installs fn as the process-wide mirror. A nil fn disables mirroring.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&fn)
}

func loadMirror() MirrorFunc {
	fn := mirror.Load()
	if fn == nil {
		return nil
	}
	return *fn
}

package crossdim

import "time"

// frameStats holds per-frame listener metrics. Only gathered when the scene
// is in debug mode.
type frameStats struct {
	frame     uint64
	listeners int
	tickTime  time.Duration
}

// debugLogEvery throttles frame stats to one line per second at 60 FPS.
const debugLogEvery = frameRate

// debugLog writes frame stats at debug level every debugLogEvery frames, and
// warns whenever listeners alone overrun a frame budget.
func (s *Scene) debugLog(stats frameStats) {
	if stats.tickTime > time.Second/frameRate {
		s.log.Warn().
			Uint64("frame", stats.frame).
			Dur("tick", stats.tickTime).
			Int("listeners", stats.listeners).
			Msg("tick listeners exceeded frame budget")
	}
	if stats.frame%debugLogEvery != 0 {
		return
	}
	s.log.Debug().
		Uint64("frame", stats.frame).
		Dur("tick", stats.tickTime).
		Int("listeners", stats.listeners).
		Msg("frame")
}

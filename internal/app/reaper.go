package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"parley/internal/core"
)

// Reaper deletes rooms that sat empty past a threshold. Synchronous
// teardown in Rooms.Leave is the primary cleanup; this sweep only
// catches rooms abandoned by crash paths that never reached it.
type Reaper struct {
	store      *core.RoomStore
	interval   time.Duration
	emptyAfter time.Duration
}

func NewReaper(store *core.RoomStore, interval, emptyAfter time.Duration) *Reaper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if emptyAfter <= 0 {
		emptyAfter = 24 * time.Hour
	}
	return &Reaper{store: store, interval: interval, emptyAfter: emptyAfter}
}

func (r *Reaper) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.reaper").Msg("reaper stopped")
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				log.Info().Str("module", "app.reaper").Int("reaped", n).Msg("swept idle rooms")
			}
		}
	}
}

// Sweep closes and forgets every idle empty room, returning the count.
func (r *Reaper) Sweep() int {
	n := 0
	for _, room := range r.store.List() {
		if room.CloseIfIdle(r.emptyAfter) {
			r.store.Delete(room.ID(), room)
			n++
		}
	}
	return n
}

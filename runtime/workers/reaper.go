package workers

import (
	"context"
	"log/slog"
	"time"

	"chatrooms/services"
)

// ReaperWorker periodically deletes chatrooms that have been empty and idle
// past the staleness threshold, then pushes the refreshed room list to all
// connections. It runs independently of request traffic, under the
// supervisor, and stops cleanly on context cancellation.
type ReaperWorker struct {
	rooms    services.IRoomService
	fanout   *services.Fanout
	log      *slog.Logger
	interval time.Duration
}

func NewReaperWorker(rooms services.IRoomService, fanout *services.Fanout, log *slog.Logger, interval time.Duration) *ReaperWorker {
	return &ReaperWorker{rooms: rooms, fanout: fanout, log: log, interval: interval}
}

func (w *ReaperWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping reaper")
			return ctx.Err()
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one reap cycle. Per-room failures are already isolated inside
// RemoveInactiveRooms; only a failed candidate scan aborts the cycle, and
// the next tick retries.
func (w *ReaperWorker) Sweep() {
	deleted, err := w.rooms.RemoveInactiveRooms(time.Now().UTC())
	if err != nil {
		w.log.Error("Reap cycle failed", "error", err)
		return
	}
	if len(deleted) == 0 {
		return
	}

	for _, roomID := range deleted {
		w.fanout.RoomDeleted(roomID)
	}
	w.fanout.RoomsChanged()
	w.log.Info("Reap cycle removed chatrooms", "count", len(deleted))
}

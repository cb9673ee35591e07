package storage

import (
	"github.com/charmbracelet/log"
)

// BestKeeper exposes one best-score key of a Store as a simple
// load/save pair. Storage errors are logged and otherwise ignored so a
// broken database never interrupts a run.
type BestKeeper struct {
	store  *Store
	key    string
	logger *log.Logger
}

// NewBestKeeper binds key in store. A nil store keeps nothing.
func NewBestKeeper(store *Store, key string, logger *log.Logger) *BestKeeper {
	if key == "" {
		key = DefaultBestKey
	}
	if logger == nil {
		logger = log.Default()
	}
	return &BestKeeper{store: store, key: key, logger: logger}
}

// LoadBest returns the stored best score, or 0 when it cannot be read.
func (b *BestKeeper) LoadBest() int {
	if b.store == nil {
		return 0
	}
	v, err := b.store.LoadBest(b.key)
	if err != nil {
		b.logger.Warn("cannot load best score", "key", b.key, "error", err)
		return 0
	}
	return v
}

// SaveBest persists score.
func (b *BestKeeper) SaveBest(score int) {
	if b.store == nil {
		return
	}
	if err := b.store.SaveBest(b.key, score); err != nil {
		b.logger.Warn("cannot save best score", "key", b.key, "error", err)
	}
}

// Package ledger implements the hierarchical ledger engine: a
// closure-table tree of accounts per section, double-entry (or
// order-line) transaction storage, reference rewriting for node merges,
// and the change notifications the view layer consumes.
//
// One Ledger serves one open section. The engine is single-threaded by
// design: callers issue operations sequentially, and only the bulk
// subtotal helper takes a lock. Structural writes run inside one SQL
// transaction and either fully persist or fully roll back.
package ledger

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/YtxCash/YtxModel/internal/event"
	"github.com/YtxCash/YtxModel/internal/model"
	"github.com/YtxCash/YtxModel/internal/pool"
	"github.com/YtxCash/YtxModel/internal/section"
	"github.com/YtxCash/YtxModel/pkg/db"
)

var (
	// ErrInvalidNode is returned for a nil node or the reserved root id.
	ErrInvalidNode = errors.New("invalid node")

	// ErrInvalidID is returned for non-positive node or transaction ids.
	ErrInvalidID = errors.New("invalid id")

	// ErrNotCached is returned when an operation needs a live cached
	// transaction that no open view holds.
	ErrNotCached = errors.New("transaction not cached")

	// ErrReplaceUnsupported is returned for node merges in the order
	// sections.
	ErrReplaceUnsupported = errors.New("section does not support node replacement")

	// ErrIncompleteTrans is returned when persisting a transaction whose
	// counter-party is still unassigned.
	ErrIncompleteTrans = errors.New("transaction counter-party is unassigned")
)

// readBatchSize bounds the id list of one batched read, staying under
// SQLite's default host-parameter limit.
const readBatchSize = 50

// Ledger is the engine for one section. It owns the canonical Trans
// cache: every open view's shadow points into it, and records return to
// the pool only after the removal notifications went out.
type Ledger struct {
	conn    *db.Connection
	info    section.Info
	d       dialect
	station *event.Station
	log     *logrus.Logger

	cache map[int]*model.Trans

	transPool  *pool.Pool[model.Trans]
	shadowPool *pool.Pool[model.TransShadow]

	// mu guards AccumulateSubtotal only; cache access follows the
	// caller-serialized model.
	mu sync.Mutex
}

// New creates the engine for one section. A nil logger falls back to
// the process-wide standard logger.
func New(conn *db.Connection, sec section.Section, station *event.Station, log *logrus.Logger) *Ledger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	info := section.InfoFor(sec)

	return &Ledger{
		conn:       conn,
		info:       info,
		d:          dialectFor(info),
		station:    station,
		log:        log,
		cache:      make(map[int]*model.Trans),
		transPool:  pool.New(func(t *model.Trans) { t.Reset() }),
		shadowPool: pool.New(func(s *model.TransShadow) { s.Reset() }),
	}
}

// Section returns the section this engine serves.
func (l *Ledger) Section() section.Section { return l.info.Section }

// Info returns the section's storage layout.
func (l *Ledger) Info() section.Info { return l.info }

// CachedTrans returns the live cached record for id, or nil.
func (l *Ledger) CachedTrans(id int) *model.Trans {
	return l.cache[id]
}

// recycle takes a transaction out of the cache and back to the pool.
func (l *Ledger) recycle(transID int) {
	if t, ok := l.cache[transID]; ok {
		delete(l.cache, transID)
		l.transPool.Put(t)
	}
}

// ReleaseShadow returns a shadow to the pool once its view closes. The
// underlying Trans stays cached for other shadows.
func (l *Ledger) ReleaseShadow(s *model.TransShadow) {
	l.shadowPool.Put(s)
}

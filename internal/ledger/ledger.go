// Package ledger keeps the user's savings balances consistent across the
// Vault and the savings circles. Every operation reads the whole state,
// mutates it in memory and writes it back in a single storage batch.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/yourname/savecircle/internal"
	"github.com/yourname/savecircle/internal/storage"
)

type Ledger struct {
	kv     storage.KV
	logger internal.Logger
	now    func() time.Time
	mu     sync.Mutex
}

type Option func(*Ledger)

// WithClock overrides the time source used for ids, timestamps and daily resets.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func New(kv storage.KV, logger internal.Logger, opts ...Option) *Ledger {
	l := &Ledger{kv: kv, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// readJSON decodes key into dst. A missing key and an undecodable value both
// report false; the latter is logged so the caller can fall back to defaults.
func (l *Ledger) readJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, ok, err := l.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("ledger: read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		l.logger.Warnf("ledger: discarding corrupt value under %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func putJSON(key string, v interface{}) (storage.Op, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return storage.Op{}, fmt.Errorf("ledger: encode %s: %w", key, err)
	}
	return storage.Put(key, raw), nil
}

// commit writes the given documents in one batch. A nil user or a nil
// circles slice is left untouched.
func (l *Ledger) commit(ctx context.Context, user *internal.User, circles []internal.Circle, extra ...storage.Op) error {
	var ops []storage.Op
	if user != nil {
		uops, err := userOps(user)
		if err != nil {
			return err
		}
		ops = append(ops, uops...)
	}
	if circles != nil {
		op, err := putJSON(keyCircles, circles)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	ops = append(ops, extra...)
	if len(ops) == 0 {
		return nil
	}
	if err := l.kv.Batch(ctx, ops); err != nil {
		return fmt.Errorf("ledger: write: %w", err)
	}
	return nil
}

// ResetAll removes every key the app owns.
func (l *Ledger) ResetAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys, err := l.kv.Keys(ctx, keyPrefix)
	if err != nil {
		return fmt.Errorf("ledger: list keys: %w", err)
	}
	ops := make([]storage.Op, 0, len(keys))
	for _, k := range keys {
		ops = append(ops, storage.Del(k))
	}
	if len(ops) == 0 {
		return nil
	}
	if err := l.kv.Batch(ctx, ops); err != nil {
		return fmt.Errorf("ledger: reset: %w", err)
	}
	l.logger.Infof("ledger: reset removed %d keys", len(ops))
	return nil
}

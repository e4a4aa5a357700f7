package ledger

import (
	"context"
	"fmt"

	"github.com/yourname/savecircle/internal"
	"github.com/yourname/savecircle/internal/storage"
)

// loadHearts returns the current hearts, refilled to the maximum when the
// stored reset date is not today. The bool reports whether a refill happened.
func (l *Ledger) loadHearts(ctx context.Context) (*internal.Hearts, bool, error) {
	h := &internal.Hearts{Count: maxHearts, Max: maxHearts}
	var count int
	found, err := l.readJSON(ctx, keyHearts, &count)
	if err != nil {
		return nil, false, err
	}
	if found {
		h.Count = count
	}
	if _, err := l.readJSON(ctx, keyHeartsReset, &h.ResetDate); err != nil {
		return nil, false, err
	}

	today := l.now().Format("2006-01-02")
	if h.ResetDate != today {
		h.Count = maxHearts
		h.ResetDate = today
		return h, true, nil
	}
	return h, false, nil
}

func heartsOps(h *internal.Hearts) ([]storage.Op, error) {
	countOp, err := putJSON(keyHearts, h.Count)
	if err != nil {
		return nil, err
	}
	dateOp, err := putJSON(keyHeartsReset, h.ResetDate)
	if err != nil {
		return nil, err
	}
	return []storage.Op{countOp, dateOp}, nil
}

func (l *Ledger) Hearts(ctx context.Context) (*internal.Hearts, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, reset, err := l.loadHearts(ctx)
	if err != nil {
		return nil, err
	}
	if reset {
		ops, err := heartsOps(h)
		if err != nil {
			return nil, err
		}
		if err := l.commit(ctx, nil, nil, ops...); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// LoseHeart takes one heart away, never going below zero.
func (l *Ledger) LoseHeart(ctx context.Context) (*internal.Hearts, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, _, err := l.loadHearts(ctx)
	if err != nil {
		return nil, err
	}
	if h.Count > 0 {
		h.Count--
	}
	ops, err := heartsOps(h)
	if err != nil {
		return nil, err
	}
	if err := l.commit(ctx, nil, nil, ops...); err != nil {
		return nil, err
	}
	return h, nil
}

// RefillHearts spends gemCost gems to restore all hearts.
func (l *Ledger) RefillHearts(ctx context.Context, gemCost int) (*internal.Hearts, error) {
	if gemCost < 0 {
		return nil, fmt.Errorf("ledger: refill hearts: %w", internal.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, err := l.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	if user.Gems < gemCost {
		return nil, fmt.Errorf("ledger: refill hearts for %d gems with %d: %w", gemCost, user.Gems, internal.ErrInsufficientBalance)
	}
	h, _, err := l.loadHearts(ctx)
	if err != nil {
		return nil, err
	}
	user.Gems -= gemCost
	h.Count = h.Max
	ops, err := heartsOps(h)
	if err != nil {
		return nil, err
	}
	if err := l.commit(ctx, user, nil, ops...); err != nil {
		return nil, err
	}
	l.logger.Infof("ledger: hearts refilled for %d gems", gemCost)
	return h, nil
}

package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourname/savecircle/internal"
	"github.com/yourname/savecircle/internal/storage"
)

// loadUser returns the stored user, seeding and persisting the default
// record on first use. Callers hold l.mu.
func (l *Ledger) loadUser(ctx context.Context) (*internal.User, error) {
	var u *internal.User
	ok, err := l.readJSON(ctx, keyUser, &u)
	if err != nil {
		return nil, err
	}
	if ok && u != nil {
		return u, nil
	}

	seed := defaultUser()
	var gems, xp int
	if found, err := l.readJSON(ctx, keyLegacyGems, &gems); err != nil {
		return nil, err
	} else if found {
		seed.Gems = gems
	}
	if found, err := l.readJSON(ctx, keyLegacyXP, &xp); err != nil {
		return nil, err
	} else if found {
		seed.XP = xp
	}
	var goal decimal.Decimal
	if found, err := l.readJSON(ctx, keyLegacyDailyGoal, &goal); err != nil {
		return nil, err
	} else if found {
		seed.DailyGoal = goal
	}

	if err := l.commit(ctx, seed, nil); err != nil {
		return nil, err
	}
	l.logger.Infof("ledger: seeded user record")
	return seed, nil
}

// userOps writes the user record plus the standalone legacy mirrors.
func userOps(u *internal.User) ([]storage.Op, error) {
	docs := []struct {
		key string
		v   interface{}
	}{
		{keyUser, u},
		{keyLegacyGems, u.Gems},
		{keyLegacyXP, u.XP},
		{keyLegacyDailyGoal, u.DailyGoal},
	}
	ops := make([]storage.Op, 0, len(docs))
	for _, d := range docs {
		op, err := putJSON(d.key, d.v)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (l *Ledger) GetUser(ctx context.Context) (*internal.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadUser(ctx)
}

// UpdateUser shallow-merges patch into the stored user.
func (l *Ledger) UpdateUser(ctx context.Context, patch UserPatch) (*internal.User, error) {
	if err := patch.validate(); err != nil {
		return nil, fmt.Errorf("ledger: update user: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	u, err := l.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	patch.apply(u)
	if err := l.commit(ctx, u, nil); err != nil {
		return nil, err
	}
	return u, nil
}

// AddSavings credits a completed deposit to the Vault and to the
// daily and monthly counters.
func (l *Ledger) AddSavings(ctx context.Context, amount decimal.Decimal) (*internal.User, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("ledger: add savings: %w", internal.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	u, err := l.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	u.TotalSaved = u.TotalSaved.Add(amount)
	u.SavedToday = u.SavedToday.Add(amount)
	u.SavedThisMonth = u.SavedThisMonth.Add(amount)
	if err := l.commit(ctx, u, nil); err != nil {
		return nil, err
	}
	l.logger.Infof("ledger: saved %s, vault now %s", amount, u.TotalSaved)
	return u, nil
}

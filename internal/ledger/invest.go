package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourname/savecircle/internal"
)

// InvestFunds moves amount from a circle's liquid pool into its invested
// amount under planID. For the Vault the liquid side is the user's
// totalSaved, and both documents are written in one batch.
func (l *Ledger) InvestFunds(ctx context.Context, id string, amount decimal.Decimal, planID string) (*internal.Circle, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("ledger: invest in %s: %w", id, internal.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, circles, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	if id == internal.VaultID {
		if user.TotalSaved.LessThan(amount) {
			return nil, fmt.Errorf("ledger: invest %s from vault holding %s: %w", amount, user.TotalSaved, internal.ErrInsufficientBalance)
		}
		i := vaultIndex(&circles, user)
		user.TotalSaved = user.TotalSaved.Sub(amount)
		v := &circles[i]
		v.InvestedAmount = v.InvestedAmount.Add(amount)
		v.InvestmentPlanID = planID
		v.PoolTotal = user.TotalSaved
		if err := l.commit(ctx, user, circles); err != nil {
			return nil, err
		}
		l.logger.Infof("ledger: invested %s from vault into %s", amount, planID)
		return view(user, circles, id)
	}

	i := indexOf(circles, id)
	if i < 0 {
		return nil, fmt.Errorf("ledger: invest in %s: %w", id, internal.ErrNotFound)
	}
	c := &circles[i]
	if c.PoolTotal.LessThan(amount) {
		return nil, fmt.Errorf("ledger: invest %s from circle %s holding %s: %w", amount, id, c.PoolTotal, internal.ErrInsufficientBalance)
	}
	c.PoolTotal = c.PoolTotal.Sub(amount)
	c.InvestedAmount = c.InvestedAmount.Add(amount)
	c.InvestmentPlanID = planID
	if err := l.commit(ctx, nil, circles); err != nil {
		return nil, err
	}
	l.logger.Infof("ledger: invested %s from circle %s into %s", amount, id, planID)
	return view(user, circles, id)
}

// WithdrawInvestment moves invested value back to the liquid side. A full
// withdrawal ignores amount, takes everything and clears the plan.
func (l *Ledger) WithdrawInvestment(ctx context.Context, id string, amount decimal.Decimal, full bool) (*internal.Circle, error) {
	if !full && !amount.IsPositive() {
		return nil, fmt.Errorf("ledger: withdraw investment from %s: %w", id, internal.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, circles, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	var i int
	if id == internal.VaultID {
		i = vaultIndex(&circles, user)
	} else if i = indexOf(circles, id); i < 0 {
		return nil, fmt.Errorf("ledger: withdraw investment from %s: %w", id, internal.ErrNotFound)
	}
	c := &circles[i]

	withdraw := amount
	if full {
		withdraw = c.InvestedAmount
	}
	if withdraw.GreaterThan(c.InvestedAmount) {
		return nil, fmt.Errorf("ledger: withdraw %s of %s invested in %s: %w", withdraw, c.InvestedAmount, id, internal.ErrInsufficientBalance)
	}

	c.InvestedAmount = c.InvestedAmount.Sub(withdraw)
	if full {
		c.InvestmentPlanID = ""
	}

	var u *internal.User
	if c.IsVault() {
		user.TotalSaved = user.TotalSaved.Add(withdraw)
		c.PoolTotal = user.TotalSaved
		u = user
	} else {
		c.PoolTotal = c.PoolTotal.Add(withdraw)
	}
	if err := l.commit(ctx, u, circles); err != nil {
		return nil, err
	}
	l.logger.Infof("ledger: withdrew %s of investment from %s", withdraw, id)
	return view(user, circles, id)
}

// WithdrawFromCircle takes amount out of a circle's liquid pool. Asking for
// more than the pool holds fails with ErrInsufficientBalance.
func (l *Ledger) WithdrawFromCircle(ctx context.Context, id string, amount decimal.Decimal) (*internal.Circle, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("ledger: withdraw from %s: %w", id, internal.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, circles, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	if id == internal.VaultID {
		if user.TotalSaved.LessThan(amount) {
			return nil, fmt.Errorf("ledger: withdraw %s from vault holding %s: %w", amount, user.TotalSaved, internal.ErrInsufficientBalance)
		}
		user.TotalSaved = user.TotalSaved.Sub(amount)
		if err := l.commit(ctx, user, nil); err != nil {
			return nil, err
		}
		l.logger.Infof("ledger: withdrew %s from vault", amount)
		return view(user, circles, id)
	}

	i := indexOf(circles, id)
	if i < 0 {
		return nil, fmt.Errorf("ledger: withdraw from %s: %w", id, internal.ErrNotFound)
	}
	c := &circles[i]
	if c.PoolTotal.LessThan(amount) {
		return nil, fmt.Errorf("ledger: withdraw %s from circle %s holding %s: %w", amount, id, c.PoolTotal, internal.ErrInsufficientBalance)
	}
	c.PoolTotal = c.PoolTotal.Sub(amount)
	if err := l.commit(ctx, nil, circles); err != nil {
		return nil, err
	}
	l.logger.Infof("ledger: withdrew %s from circle %s", amount, id)
	return view(user, circles, id)
}

// DepositToCircle moves amount from the Vault into a circle's pool and
// marks the user's contribution as paid.
func (l *Ledger) DepositToCircle(ctx context.Context, id string, amount decimal.Decimal) (*internal.Circle, error) {
	if id == internal.VaultID {
		return nil, fmt.Errorf("ledger: deposit: %w", internal.ErrReservedCircle)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("ledger: deposit to %s: %w", id, internal.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, circles, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(circles, id)
	if i < 0 {
		return nil, fmt.Errorf("ledger: deposit to %s: %w", id, internal.ErrNotFound)
	}
	if user.TotalSaved.LessThan(amount) {
		return nil, fmt.Errorf("ledger: deposit %s with vault holding %s: %w", amount, user.TotalSaved, internal.ErrInsufficientBalance)
	}

	now := l.now()
	user.TotalSaved = user.TotalSaved.Sub(amount)
	c := &circles[i]
	c.PoolTotal = c.PoolTotal.Add(amount)
	for j := range c.Members {
		if c.Members[j].ID == internal.SelfID {
			c.Members[j].HasPaid = boolPtr(true)
		}
	}
	amt := amount
	c.Activity = append([]internal.ActivityItem{{
		ID:        "act_" + messageID(now),
		UserID:    internal.SelfID,
		Action:    "added funds",
		Amount:    &amt,
		Timestamp: now.Format(time.RFC3339),
	}}, c.Activity...)

	if err := l.commit(ctx, user, circles); err != nil {
		return nil, err
	}
	l.logger.Infof("ledger: deposited %s into circle %s", amount, id)
	return view(user, circles, id)
}

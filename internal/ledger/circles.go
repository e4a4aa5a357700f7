package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourname/savecircle/internal"
)

func indexOf(circles []internal.Circle, id string) int {
	for i := range circles {
		if circles[i].ID == id {
			return i
		}
	}
	return -1
}

func normalize(c *internal.Circle) {
	if c.Members == nil {
		c.Members = []internal.CircleMember{}
	}
	if c.Activity == nil {
		c.Activity = []internal.ActivityItem{}
	}
	if c.Messages == nil {
		c.Messages = []internal.ChatMessage{}
	}
}

// loadCircles returns the stored circle list exactly as persisted. On first
// use the mock dataset is seeded, honouring legacy per-circle joined flags.
// Callers hold l.mu.
func (l *Ledger) loadCircles(ctx context.Context) ([]internal.Circle, error) {
	var circles []internal.Circle
	ok, err := l.readJSON(ctx, keyCircles, &circles)
	if err != nil {
		return nil, err
	}
	if ok && circles != nil {
		for i := range circles {
			normalize(&circles[i])
		}
		return circles, nil
	}

	circles = defaultCircles()
	for i := range circles {
		var joined bool
		found, err := l.readJSON(ctx, joinedKey(circles[i].ID), &joined)
		if err != nil {
			return nil, err
		}
		if found && joined {
			circles[i].IsUserMember = true
		}
	}
	if err := l.commit(ctx, nil, circles); err != nil {
		return nil, err
	}
	l.logger.Infof("ledger: seeded %d circles", len(circles))
	return circles, nil
}

// load returns the user and circle list together. Callers hold l.mu.
func (l *Ledger) load(ctx context.Context) (*internal.User, []internal.Circle, error) {
	user, err := l.loadUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	circles, err := l.loadCircles(ctx)
	if err != nil {
		return nil, nil, err
	}
	return user, circles, nil
}

// GetCircles returns every circle, with the Vault projected from the user record.
func (l *Ledger) GetCircles(ctx context.Context) ([]internal.Circle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, circles, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range circles {
		if circles[i].IsVault() {
			circles[i] = vaultView(user, &circles[i])
		}
	}
	return circles, nil
}

// GetCircle returns one circle. The Vault is always available.
func (l *Ledger) GetCircle(ctx context.Context, id string) (*internal.Circle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, circles, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return view(user, circles, id)
}

// view resolves id against circles, projecting the Vault.
func view(user *internal.User, circles []internal.Circle, id string) (*internal.Circle, error) {
	i := indexOf(circles, id)
	if id == internal.VaultID {
		var stored *internal.Circle
		if i >= 0 {
			stored = &circles[i]
		}
		v := vaultView(user, stored)
		return &v, nil
	}
	if i < 0 {
		return nil, fmt.Errorf("ledger: circle %s: %w", id, internal.ErrNotFound)
	}
	c := circles[i]
	return &c, nil
}

// UpdateCircle shallow-merges patch into an existing circle. It never
// creates one. The Vault's liquid pool is owned by the user record, so a
// poolTotal in a Vault patch is ignored.
func (l *Ledger) UpdateCircle(ctx context.Context, id string, patch CirclePatch) (*internal.Circle, error) {
	if err := patch.validate(); err != nil {
		return nil, fmt.Errorf("ledger: update circle %s: %w", id, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, circles, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	var i int
	if id == internal.VaultID {
		if patch.PoolTotal != nil {
			l.logger.Debugf("ledger: ignoring poolTotal in vault patch")
			patch.PoolTotal = nil
		}
		i = vaultIndex(&circles, user)
	} else if i = indexOf(circles, id); i < 0 {
		return nil, fmt.Errorf("ledger: update circle %s: %w", id, internal.ErrNotFound)
	}

	patch.apply(&circles[i])
	normalize(&circles[i])
	if err := l.commit(ctx, nil, circles); err != nil {
		return nil, err
	}
	return view(user, circles, id)
}

// AddCircle prepends a new circle.
func (l *Ledger) AddCircle(ctx context.Context, c internal.Circle) (*internal.Circle, error) {
	switch {
	case c.ID == "":
		return nil, fmt.Errorf("ledger: add circle: empty id: %w", internal.ErrInvalidInput)
	case c.IsVault():
		return nil, fmt.Errorf("ledger: add circle: %w", internal.ErrReservedCircle)
	case c.PoolTotal.IsNegative() || c.InvestedAmount.IsNegative():
		return nil, fmt.Errorf("ledger: add circle %s: %w", c.ID, internal.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	circles, err := l.loadCircles(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(circles, c.ID) >= 0 {
		return nil, fmt.Errorf("ledger: add circle %s: %w", c.ID, internal.ErrDuplicateCircle)
	}

	normalize(&c)
	circles = append([]internal.Circle{c}, circles...)
	if err := l.commit(ctx, nil, circles); err != nil {
		return nil, err
	}
	l.logger.Infof("ledger: added circle %s (%s)", c.ID, c.Name)
	return &c, nil
}

// DeleteCircle removes a circle and sweeps its pool and invested amount into
// the Vault in the same write. It returns the amount swept.
func (l *Ledger) DeleteCircle(ctx context.Context, id string) (decimal.Decimal, error) {
	if id == internal.VaultID {
		return decimal.Zero, fmt.Errorf("ledger: delete circle: %w", internal.ErrReservedCircle)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, circles, err := l.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	i := indexOf(circles, id)
	if i < 0 {
		return decimal.Zero, fmt.Errorf("ledger: delete circle %s: %w", id, internal.ErrNotFound)
	}

	swept := circles[i].TotalValue()
	circles = append(circles[:i], circles[i+1:]...)

	var u *internal.User
	if !swept.IsZero() {
		user.TotalSaved = user.TotalSaved.Add(swept)
		u = user
	}
	if err := l.commit(ctx, u, circles); err != nil {
		return decimal.Zero, err
	}
	l.logger.Infof("ledger: deleted circle %s, swept %s to vault", id, swept)
	return swept, nil
}

// JoinCircle makes the user a member of a circle. Joining twice is harmless.
func (l *Ledger) JoinCircle(ctx context.Context, id string) (*internal.Circle, error) {
	if id == internal.VaultID {
		return nil, fmt.Errorf("ledger: join circle: %w", internal.ErrReservedCircle)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, circles, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(circles, id)
	if i < 0 {
		return nil, fmt.Errorf("ledger: join circle %s: %w", id, internal.ErrNotFound)
	}
	c := &circles[i]
	if c.IsUserMember {
		out := *c
		return &out, nil
	}

	now := l.now()
	c.IsUserMember = true
	c.MembersCount++
	c.Members = append(c.Members, internal.CircleMember{
		ID:          internal.SelfID,
		Name:        user.Name,
		Avatar:      user.Avatar,
		Consistency: user.ConsistencyScore,
		HasPaid:     boolPtr(false),
	})
	c.Messages = append(c.Messages, internal.ChatMessage{
		ID:        messageID(now),
		UserID:    internal.SelfID,
		Text:      user.Name + " joined the circle",
		Timestamp: clockTime(now),
		Type:      internal.MessageTypeEvent,
	})
	if err := l.commit(ctx, nil, circles); err != nil {
		return nil, err
	}
	l.logger.Infof("ledger: joined circle %s", id)
	out := *c
	return &out, nil
}

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yourname/savecircle/internal"
	"github.com/yourname/savecircle/internal/storage"
)

const (
	maxHearts  = 5
	xpPerLevel = 1000
)

func (l *Ledger) loadCompleted(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := l.readJSON(ctx, keyCompletedLessons, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// CompletedLessons lists the ids of finished lessons in completion order.
func (l *Ledger) CompletedLessons(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadCompleted(ctx)
}

// CompleteLesson records lessonID and awards xp and gems the first time it
// is completed. The returned bool reports whether anything was awarded.
func (l *Ledger) CompleteLesson(ctx context.Context, lessonID string, xp, gems int) (*internal.User, bool, error) {
	if strings.TrimSpace(lessonID) == "" || xp < 0 || gems < 0 {
		return nil, false, fmt.Errorf("ledger: complete lesson %q: %w", lessonID, internal.ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, err := l.loadUser(ctx)
	if err != nil {
		return nil, false, err
	}
	done, err := l.loadCompleted(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, id := range done {
		if id == lessonID {
			return user, false, nil
		}
	}

	done = append(done, lessonID)
	user.XP += xp
	user.Gems += gems
	for user.NextLevelXP > 0 && user.XP >= user.NextLevelXP {
		user.Level++
		user.NextLevelXP += xpPerLevel
	}

	op, err := putJSON(keyCompletedLessons, done)
	if err != nil {
		return nil, false, err
	}
	if err := l.commit(ctx, user, nil, op); err != nil {
		return nil, false, err
	}
	l.logger.Infof("ledger: lesson %s complete, +%d xp +%d gems", lessonID, xp, gems)
	return user, true, nil
}

// CacheUnit stores generated lesson content for a unit.
func (l *Ledger) CacheUnit(ctx context.Context, unitID string, content json.RawMessage) error {
	if strings.TrimSpace(unitID) == "" || !json.Valid(content) {
		return fmt.Errorf("ledger: cache unit %q: %w", unitID, internal.ErrInvalidInput)
	}
	if err := l.kv.Batch(ctx, []storage.Op{storage.Put(lessonCacheKey(unitID), content)}); err != nil {
		return fmt.Errorf("ledger: cache unit %s: %w", unitID, err)
	}
	return nil
}

// CachedUnit returns previously cached content for a unit.
func (l *Ledger) CachedUnit(ctx context.Context, unitID string) (json.RawMessage, error) {
	raw, ok, err := l.kv.Get(ctx, lessonCacheKey(unitID))
	if err != nil {
		return nil, fmt.Errorf("ledger: read unit %s: %w", unitID, err)
	}
	if !ok {
		return nil, fmt.Errorf("ledger: unit %s: %w", unitID, internal.ErrNotFound)
	}
	return json.RawMessage(raw), nil
}

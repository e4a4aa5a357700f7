package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yourname/savecircle/internal"
)

func messageID(t time.Time) string { return strconv.FormatInt(t.UnixMilli(), 10) }

// clockTime is the short wall-clock label shown next to chat messages.
func clockTime(t time.Time) string { return t.Format("3:04 PM") }

// AddMessage appends a chat message from the user to a circle.
func (l *Ledger) AddMessage(ctx context.Context, id, text string) (*internal.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("ledger: add message to %s: empty text: %w", id, internal.ErrInvalidInput)
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
		return nil, fmt.Errorf("ledger: add message to %s: %w", id, internal.ErrNotFound)
	}

	now := l.now()
	msg := internal.ChatMessage{
		ID:        messageID(now),
		UserID:    internal.SelfID,
		Text:      text,
		Timestamp: clockTime(now),
		Type:      internal.MessageTypeMsg,
	}
	circles[i].Messages = append(circles[i].Messages, msg)
	if err := l.commit(ctx, nil, circles); err != nil {
		return nil, err
	}
	return &msg, nil
}

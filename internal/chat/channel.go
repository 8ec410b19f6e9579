// internal/chat/channel.go
package chat

import (
	"context"
	"fmt"

	"github.com/quadfall/quadfall/internal/models"
)

// MaxMessageLength is the stored length cap; longer posts are cut, not
// rejected.
const MaxMessageLength = 500

// DefaultWindow is how many trailing messages a read returns at most.
const DefaultWindow = 100

// Store persists chat messages in creation order.
type Store interface {
	// Append stores msg and assigns its id and timestamp.
	Append(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error)
	// Newest returns up to limit messages, newest first.
	Newest(ctx context.Context, limit int) ([]models.ChatMessage, error)
}

// Channel is the lobby-wide chat log.
type Channel struct {
	store Store
}

func NewChannel(store Store) *Channel {
	return &Channel{store: store}
}

// Post appends a message from author, silently truncating the text to
// MaxMessageLength characters.
func (c *Channel) Post(ctx context.Context, author models.Identity, text string) (models.ChatMessage, error) {
	if runes := []rune(text); len(runes) > MaxMessageLength {
		text = string(runes[:MaxMessageLength])
	}
	msg, err := c.store.Append(ctx, models.ChatMessage{
		AuthorID: author.ID,
		Username: author.Username,
		Message:  text,
	})
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("append chat message: %w", err)
	}
	return msg, nil
}

// Recent returns the last limit messages in ascending creation order, ready
// for display. A limit <= 0 falls back to DefaultWindow.
func (c *Channel) Recent(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultWindow
	}
	msgs, err := c.store.Newest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch chat messages: %w", err)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

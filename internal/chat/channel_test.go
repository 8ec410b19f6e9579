// internal/chat/channel_test.go
package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadfall/quadfall/internal/models"
)

func TestPostAssignsIDAndTimestamp(t *testing.T) {
	ch := NewChannel(NewMemoryStore())
	author := models.Identity{ID: uuid.New(), Username: "alice"}

	msg, err := ch.Post(context.Background(), author, "hello")
	require.NoError(t, err)

	assert.Equal(t, int64(1), msg.ID)
	assert.Equal(t, "alice", msg.Username)
	assert.Equal(t, "hello", msg.Message)
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestPostTruncatesSilently(t *testing.T) {
	ch := NewChannel(NewMemoryStore())
	author := models.Identity{ID: uuid.New(), Username: "alice"}

	long := strings.Repeat("x", 600)
	msg, err := ch.Post(context.Background(), author, long)
	require.NoError(t, err)
	assert.Equal(t, 500, len([]rune(msg.Message)))
	assert.Equal(t, long[:500], msg.Message)
}

func TestRecentReturnsTrailingWindowAscending(t *testing.T) {
	ch := NewChannel(NewMemoryStore())
	author := models.Identity{ID: uuid.New(), Username: "alice"}
	ctx := context.Background()

	for i := 1; i <= 150; i++ {
		_, err := ch.Post(ctx, author, fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}

	msgs, err := ch.Recent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, msgs, 100)

	// Oldest of the window first: m51 .. m150.
	assert.Equal(t, "m51", msgs[0].Message)
	assert.Equal(t, "m150", msgs[99].Message)
	for i := 1; i < len(msgs); i++ {
		assert.Greater(t, msgs[i].ID, msgs[i-1].ID)
	}
}

func TestRecentDefaultsWindow(t *testing.T) {
	ch := NewChannel(NewMemoryStore())
	author := models.Identity{ID: uuid.New(), Username: "alice"}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ch.Post(ctx, author, "hi")
		require.NoError(t, err)
	}

	msgs, err := ch.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
}

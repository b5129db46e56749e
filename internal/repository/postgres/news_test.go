package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/blogify/blog-service/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type newsState struct {
	newsType  string
	important bool
	pinned    bool
	sent      bool
}

// memNewsTx simulates the news and posts tables for the pinning transaction
// bodies. It dispatches on the exact statements the repo issues, so a changed
// guard clause surfaces as an unexpected-statement failure.
type memNewsTx struct {
	pgx.Tx
	posts map[int64]string
	news  map[int64]*newsState
}

func newMemNewsTx() *memNewsTx {
	return &memNewsTx{
		posts: make(map[int64]string),
		news:  make(map[int64]*newsState),
	}
}

func normalizeSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}

func (m *memNewsTx) unpin(keep int64) {
	for id, n := range m.news {
		if id != keep {
			n.pinned = false
		}
	}
}

func (m *memNewsTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	switch q := normalizeSQL(sql); {
	case strings.HasPrefix(q, "INSERT INTO news("):
		m.news[args[0].(int64)] = &newsState{
			newsType:  args[1].(string),
			important: args[2].(bool),
			pinned:    args[3].(bool),
		}
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case q == "UPDATE news SET pinned = false WHERE pinned AND post_id <> $1":
		m.unpin(args[0].(int64))
		return pgconn.NewCommandTag("UPDATE 1"), nil
	case q == "UPDATE news SET pinned = false WHERE pinned AND post_id <> $1 AND EXISTS (SELECT 1 FROM news WHERE post_id = $1 AND pinned)":
		keep := args[0].(int64)
		if n, ok := m.news[keep]; ok && n.pinned {
			m.unpin(keep)
		}
		return pgconn.NewCommandTag("UPDATE 1"), nil
	default:
		return pgconn.CommandTag{}, fmt.Errorf("unexpected statement: %s", q)
	}
}

func (m *memNewsTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	switch q := normalizeSQL(sql); {
	case q == "SELECT status FROM posts WHERE id = $1":
		postID := args[0].(int64)
		return scanFunc(func(dest ...any) error {
			status, ok := m.posts[postID]
			if !ok {
				return pgx.ErrNoRows
			}
			*dest[0].(*string) = status
			return nil
		})
	case strings.HasPrefix(q, "UPDATE news SET news_type = $1"):
		postID := args[3].(int64)
		return scanFunc(func(dest ...any) error {
			n, ok := m.news[postID]
			if !ok {
				return pgx.ErrNoRows
			}
			n.newsType = args[0].(string)
			n.important = args[1].(bool)
			n.pinned = args[2].(bool)
			*dest[0].(*bool) = n.sent
			return nil
		})
	default:
		return scanFunc(func(dest ...any) error {
			return fmt.Errorf("unexpected query: %s", q)
		})
	}
}

func TestNewsCreatePinnedUnpinsOthers(t *testing.T) {
	tx := newMemNewsTx()
	tx.posts[1] = model.StatusPublished
	tx.posts[2] = model.StatusPublished
	tx.news[2] = &newsState{newsType: model.NewsTypeUpdate, pinned: true}

	repo := &newsRepo{}
	created, err := repo.createTx(context.Background(), tx, model.News{
		PostID: 1,
		Type:   model.NewsTypeAnnouncement,
		Pinned: true,
	})

	require.NoError(t, err)
	assert.True(t, created.Pinned)
	assert.True(t, tx.news[1].pinned)
	assert.False(t, tx.news[2].pinned)
}

func TestNewsCreatePinnedDraftLeavesOthers(t *testing.T) {
	tx := newMemNewsTx()
	tx.posts[1] = model.StatusDraft
	tx.posts[2] = model.StatusPublished
	tx.news[2] = &newsState{newsType: model.NewsTypeUpdate, pinned: true}

	repo := &newsRepo{}
	_, err := repo.createTx(context.Background(), tx, model.News{
		PostID: 1,
		Type:   model.NewsTypeAnnouncement,
		Pinned: true,
	})

	require.NoError(t, err)
	// A pinned draft does not displace the published pinned item.
	assert.True(t, tx.news[2].pinned)
}

func TestNewsCreateUnpinnedLeavesOthers(t *testing.T) {
	tx := newMemNewsTx()
	tx.posts[1] = model.StatusPublished
	tx.posts[2] = model.StatusPublished
	tx.news[2] = &newsState{newsType: model.NewsTypeUpdate, pinned: true}

	repo := &newsRepo{}
	_, err := repo.createTx(context.Background(), tx, model.News{
		PostID: 1,
		Type:   model.NewsTypeEvent,
	})

	require.NoError(t, err)
	assert.True(t, tx.news[2].pinned)
}

func TestNewsUpdatePinUnpinsOthers(t *testing.T) {
	tx := newMemNewsTx()
	tx.posts[1] = model.StatusPublished
	tx.posts[2] = model.StatusPublished
	tx.news[1] = &newsState{newsType: model.NewsTypeUpdate, sent: true}
	tx.news[2] = &newsState{newsType: model.NewsTypeEvent, pinned: true}

	repo := &newsRepo{}
	updated, err := repo.updateTx(context.Background(), tx, model.News{
		PostID: 1,
		Type:   model.NewsTypeUpdate,
		Pinned: true,
	})

	require.NoError(t, err)
	assert.True(t, updated.NotificationSent)
	assert.True(t, tx.news[1].pinned)
	assert.False(t, tx.news[2].pinned)
}

func TestNewsUpdateUnpinnedLeavesOthers(t *testing.T) {
	tx := newMemNewsTx()
	tx.posts[1] = model.StatusPublished
	tx.news[1] = &newsState{newsType: model.NewsTypeUpdate}
	tx.news[2] = &newsState{newsType: model.NewsTypeEvent, pinned: true}

	repo := &newsRepo{}
	_, err := repo.updateTx(context.Background(), tx, model.News{
		PostID: 1,
		Type:   model.NewsTypeUpdate,
	})

	require.NoError(t, err)
	assert.True(t, tx.news[2].pinned)
}

func TestEnforceSinglePinned(t *testing.T) {
	tx := newMemNewsTx()
	tx.news[1] = &newsState{newsType: model.NewsTypeUpdate, pinned: true}
	tx.news[2] = &newsState{newsType: model.NewsTypeEvent, pinned: true}

	require.NoError(t, enforceSinglePinned(context.Background(), tx, 1))

	assert.True(t, tx.news[1].pinned)
	assert.False(t, tx.news[2].pinned)
}

func TestEnforceSinglePinnedNoopWhenKeepNotPinned(t *testing.T) {
	tx := newMemNewsTx()
	tx.news[2] = &newsState{newsType: model.NewsTypeEvent, pinned: true}

	// The guard only fires when the kept row is itself pinned.
	require.NoError(t, enforceSinglePinned(context.Background(), tx, 1))

	assert.True(t, tx.news[2].pinned)
}

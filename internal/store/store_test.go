package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestStore_Visits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, now := openTestStore(t)

	*now = now.Add(-10 * 24 * time.Hour)
	require.NoError(t, s.RecordVisit(ctx, "old", "curl", "/"))
	*now = now.Add(10 * 24 * time.Hour)
	require.NoError(t, s.RecordVisit(ctx, "aaaa", "firefox", "/"))
	require.NoError(t, s.RecordVisit(ctx, "aaaa", "firefox", "/particles/hero"))
	require.NoError(t, s.RecordVisit(ctx, "bbbb", "chrome", "/"))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalVisitors)
	assert.Equal(t, int64(3), stats.UniqueVisitors)
	assert.Equal(t, int64(3), stats.VisitorsToday)
	assert.Equal(t, int64(3), stats.VisitorsThisWeek)
	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, "bbbb", stats.RecentVisitors[0].HashedIP)
	assert.Equal(t, "old", stats.RecentVisitors[3].HashedIP)

	purged, err := s.PurgeVisitorsBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	visitors, err := s.Visitors(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, visitors, 3)
}

func TestStore_Messages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, now := openTestStore(t)

	first, err := s.SaveMessage(ctx, Message{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Body: "Hello"})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, *now, first.CreatedAt)

	*now = now.Add(time.Minute)
	second, err := s.SaveMessage(ctx, Message{Name: "Bob", Email: "bob@example.com", Subject: "Job", Body: "Offer"})
	require.NoError(t, err)

	require.NoError(t, s.MarkDelivered(ctx, first.ID))

	msgs, err := s.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, second.ID, msgs[0].ID)
	assert.False(t, msgs[0].Delivered)
	assert.True(t, msgs[1].Delivered)
	assert.Equal(t, "Hello", msgs[1].Body)

	require.NoError(t, s.DeleteMessage(ctx, first.ID))
	assert.ErrorIs(t, s.DeleteMessage(ctx, first.ID), ErrNotFound)
	assert.ErrorIs(t, s.MarkDelivered(ctx, 999), ErrNotFound)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalMessages)
	require.Len(t, stats.RecentMessages, 1)
	assert.Equal(t, "Bob", stats.RecentMessages[0].Name)
}

func TestStore_AppearanceEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := openTestStore(t)

	require.NoError(t, s.RecordAppearance(ctx, "dark"))
	require.NoError(t, s.RecordAppearance(ctx, "light"))
	require.NoError(t, s.RecordAppearance(ctx, "dark"))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"dark": 2, "light": 1}, stats.Toggles)
}

func TestOpen_Reopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.RecordVisit(ctx, "x", "ua", "/"))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	visitors, err := s.Visitors(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, visitors, 1)
}

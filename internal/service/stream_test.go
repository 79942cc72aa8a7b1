package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"CarnivalLive/internal/model"

	"github.com/stretchr/testify/require"
)

func newStreamFixture(t *testing.T) (*fixture, *StreamService) {
	t.Helper()
	f := newFixture(t)
	return f, NewStreamService(f.store, f.store.Matches(), f.store.Announcements(), testLogger())
}

func TestComposeLiveCounts(t *testing.T) {
	f, stream := newStreamFixture(t)
	ctx := context.Background()

	m1 := f.createSoccerMatch(t)
	f.createSoccerMatch(t)
	live := model.MatchLive
	_, err := f.admin.UpdateMatch(ctx, f.soccerAdm, m1.ID, &UpdateMatchInput{Status: &live})
	require.NoError(t, err)

	snapshot, err := stream.ComposeLive(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 1, snapshot.LiveCount)
	require.Equal(t, 1, snapshot.UpcomingCount)
	require.Len(t, snapshot.Matches, 2)
	// LIVE 在前（状态升序）
	require.Equal(t, model.MatchLive, snapshot.Matches[0].Status)
	require.NotEmpty(t, snapshot.Timestamp)
}

func TestComposeLiveExcludesCompleted(t *testing.T) {
	f, stream := newStreamFixture(t)
	ctx := context.Background()

	m := f.createSoccerMatch(t)
	completed := model.MatchCompleted
	_, err := f.admin.UpdateMatch(ctx, f.soccerAdm, m.ID, &UpdateMatchInput{Status: &completed})
	require.NoError(t, err)

	snapshot, err := stream.ComposeLive(ctx, "")
	require.NoError(t, err)
	require.Empty(t, snapshot.Matches)
	require.Equal(t, 0, snapshot.LiveCount)
	require.Equal(t, 0, snapshot.UpcomingCount)
}

func TestComposeLiveSportFilter(t *testing.T) {
	f, stream := newStreamFixture(t)
	ctx := context.Background()
	f.createSoccerMatch(t)
	_, err := f.admin.CreateMatch(ctx, f.basketAdm, &CreateMatchInput{
		SportSlug: "basketball", TeamA: "Green", TeamB: "Yellow",
	})
	require.NoError(t, err)

	snapshot, err := stream.ComposeLive(ctx, "soccer")
	require.NoError(t, err)
	require.Len(t, snapshot.Matches, 1)
	require.Equal(t, f.soccer.ID, snapshot.Matches[0].SportID)

	// 解析不到的 slug 不报错，不过滤
	snapshot, err = stream.ComposeLive(ctx, "cricket")
	require.NoError(t, err)
	require.Len(t, snapshot.Matches, 2)
}

func TestComposeLivePinnedAnnouncements(t *testing.T) {
	f, stream := newStreamFixture(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := f.admin.CreateAnnouncement(ctx, &CreateAnnouncementInput{
			Title: "pinned", Body: "b", Pinned: true,
		})
		require.NoError(t, err)
	}
	_, err := f.admin.CreateAnnouncement(ctx, &CreateAnnouncementInput{Title: "plain", Body: "b"})
	require.NoError(t, err)

	snapshot, err := stream.ComposeLive(ctx, "")
	require.NoError(t, err)
	// 非置顶不进快照，置顶最多3条
	require.Len(t, snapshot.Announcements, 3)
	for _, ann := range snapshot.Announcements {
		require.True(t, ann.Pinned)
	}
}

// 周期 k 存储故障 → 错误帧；周期 k+1 恢复 → 数据帧照常
func TestComposeLiveFailureThenRecovery(t *testing.T) {
	f, stream := newStreamFixture(t)
	ctx := context.Background()
	f.createSoccerMatch(t)

	f.store.SetReadErr(errors.New("connection refused"))
	_, err := stream.ComposeLive(ctx, "")
	require.Error(t, err)
	frame := NewStreamError(err)
	require.Equal(t, "connection refused", frame.Error)
	require.NotEmpty(t, frame.Timestamp)

	f.store.SetReadErr(nil)
	snapshot, err := stream.ComposeLive(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 1, snapshot.UpcomingCount)
}

func TestComposeMatch(t *testing.T) {
	f, stream := newStreamFixture(t)
	ctx := context.Background()
	match := f.createSoccerMatch(t)

	snapshot, err := stream.ComposeMatch(ctx, match.ID)
	require.NoError(t, err)
	require.False(t, snapshot.Final)
	require.Equal(t, match.ID, snapshot.Match.ID)

	completed := model.MatchCompleted
	_, err = f.admin.UpdateMatch(ctx, f.soccerAdm, match.ID, &UpdateMatchInput{Status: &completed})
	require.NoError(t, err)

	snapshot, err = stream.ComposeMatch(ctx, match.ID)
	require.NoError(t, err)
	require.True(t, snapshot.Final)
}

func TestComposeMatchNotFound(t *testing.T) {
	_, stream := newStreamFixture(t)

	_, err := stream.ComposeMatch(context.Background(), "missing")
	require.ErrorIs(t, err, ErrMatchNotFound)
}

func TestIntervalClamping(t *testing.T) {
	require.Equal(t, 5*time.Second, ClampLiveInterval(0))
	require.Equal(t, 2*time.Second, ClampLiveInterval(1))
	require.Equal(t, 30*time.Second, ClampLiveInterval(120))
	require.Equal(t, 7*time.Second, ClampLiveInterval(7))

	require.Equal(t, 3*time.Second, ClampMatchInterval(0))
	require.Equal(t, 1*time.Second, ClampMatchInterval(1))
	require.Equal(t, 15*time.Second, ClampMatchInterval(60))
}

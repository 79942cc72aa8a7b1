package service

import (
	"context"
	"io"
	"testing"

	"CarnivalLive/internal/model"
	"CarnivalLive/internal/repository/memory"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fixture 两个项目、两个对应的项目管理员和一个超级管理员
type fixture struct {
	store      *memory.Store
	admin      *AdminService
	soccer     *model.Sport
	basketball *model.Sport
	superAdmin *model.User
	soccerAdm  *model.User
	basketAdm  *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	soccer := &model.Sport{Slug: "soccer", Name: "Soccer"}
	basketball := &model.Sport{Slug: "basketball", Name: "Basketball"}
	require.NoError(t, store.Create(ctx, soccer))
	require.NoError(t, store.Create(ctx, basketball))

	f := &fixture{
		store:      store,
		admin:      NewAdminService(store, store.Matches(), store.Announcements(), testLogger()),
		soccer:     soccer,
		basketball: basketball,
		superAdmin: &model.User{ID: "su", Role: model.RoleSuperAdmin},
		soccerAdm:  &model.User{ID: "sa-soccer", Role: model.RoleSportAdmin, SportID: &soccer.ID},
		basketAdm:  &model.User{ID: "sa-basket", Role: model.RoleSportAdmin, SportID: &basketball.ID},
	}
	return f
}

func (f *fixture) createSoccerMatch(t *testing.T) *model.Match {
	t.Helper()
	match, err := f.admin.CreateMatch(context.Background(), f.soccerAdm, &CreateMatchInput{
		SportSlug: "soccer",
		TeamA:     "Red",
		TeamB:     "Blue",
	})
	require.NoError(t, err)
	return match
}

func TestCreateMatchBySportAdmin(t *testing.T) {
	f := newFixture(t)

	match := f.createSoccerMatch(t)
	require.Equal(t, f.soccer.ID, match.SportID)
	require.Equal(t, model.MatchUpcoming, match.Status) // 缺省状态
	require.NotEmpty(t, match.ID)
	require.NotNil(t, match.Sport)
}

func TestCreateMatchUnknownSport(t *testing.T) {
	f := newFixture(t)

	_, err := f.admin.CreateMatch(context.Background(), f.superAdmin, &CreateMatchInput{
		SportSlug: "cricket", TeamA: "A", TeamB: "B",
	})
	require.ErrorIs(t, err, ErrSportNotFound)
}

func TestCreateMatchWrongSportAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.admin.CreateMatch(context.Background(), f.basketAdm, &CreateMatchInput{
		SportSlug: "soccer", TeamA: "A", TeamB: "B",
	})
	require.True(t, IsForbidden(err))
}

// 归属矩阵：查/改/删在本项目管理员、他项目管理员、超级管理员下的放行情况
func TestOwnershipMatrix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	match := f.createSoccerMatch(t)

	_, err := f.admin.GetMatch(ctx, f.soccerAdm, match.ID)
	require.NoError(t, err)
	_, err = f.admin.GetMatch(ctx, f.basketAdm, match.ID)
	require.True(t, IsForbidden(err))
	_, err = f.admin.GetMatch(ctx, f.superAdmin, match.ID)
	require.NoError(t, err)

	status := model.MatchLive
	_, err = f.admin.UpdateMatch(ctx, f.basketAdm, match.ID, &UpdateMatchInput{Status: &status})
	require.True(t, IsForbidden(err))
	_, err = f.admin.UpdateMatch(ctx, f.soccerAdm, match.ID, &UpdateMatchInput{Status: &status})
	require.NoError(t, err)

	require.True(t, IsForbidden(f.admin.DeleteMatch(ctx, f.basketAdm, match.ID)))
	require.NoError(t, f.admin.DeleteMatch(ctx, f.superAdmin, match.ID))

	_, err = f.admin.GetMatch(ctx, f.superAdmin, match.ID)
	require.ErrorIs(t, err, ErrMatchNotFound)
}

func TestUpdateMatchPartialFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	match := f.createSoccerMatch(t)
	before := match.UpdatedAt

	status := model.MatchLive
	score := datatypes.JSON(`{"a":1,"b":0}`)
	updated, err := f.admin.UpdateMatch(ctx, f.soccerAdm, match.ID, &UpdateMatchInput{
		Status: &status,
		Score:  score,
	})
	require.NoError(t, err)

	// 只动请求里出现的字段，其余保持原值
	require.Equal(t, model.MatchLive, updated.Status)
	require.JSONEq(t, `{"a":1,"b":0}`, string(updated.Score))
	require.Equal(t, "Red", updated.TeamA)
	require.Equal(t, "Blue", updated.TeamB)
	require.Nil(t, updated.Venue)
	// updated_at 必须推进
	require.True(t, updated.UpdatedAt.After(before))
}

func TestUpdateMatchEmptyBody(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	match := f.createSoccerMatch(t)
	before := match.UpdatedAt

	// 空请求体不产生写入，updated_at 不变
	updated, err := f.admin.UpdateMatch(ctx, f.soccerAdm, match.ID, &UpdateMatchInput{})
	require.NoError(t, err)
	require.Equal(t, before, updated.UpdatedAt)
}

func TestUpdateMatchNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.admin.UpdateMatch(context.Background(), f.superAdmin, "missing", &UpdateMatchInput{})
	require.ErrorIs(t, err, ErrMatchNotFound)
}

// SPORT_ADMIN 的后台列表无视 sport_id 入参，强制过滤到自己的项目
func TestListMatchesScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createSoccerMatch(t)
	_, err := f.admin.CreateMatch(ctx, f.basketAdm, &CreateMatchInput{
		SportSlug: "basketball", TeamA: "Green", TeamB: "Yellow",
	})
	require.NoError(t, err)

	// 篮球管理员指定足球的 sport_id，仍只能看到篮球
	matches, err := f.admin.ListMatches(ctx, f.basketAdm, f.soccer.ID, "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, f.basketball.ID, matches[0].SportID)

	// 超级管理员可以按项目过滤，也可以看全部
	matches, err = f.admin.ListMatches(ctx, f.superAdmin, f.soccer.ID, "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, f.soccer.ID, matches[0].SportID)

	matches, err = f.admin.ListMatches(ctx, f.superAdmin, "", "")
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestListMatchesStatusFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	match := f.createSoccerMatch(t)
	status := model.MatchCompleted
	_, err := f.admin.UpdateMatch(ctx, f.soccerAdm, match.ID, &UpdateMatchInput{Status: &status})
	require.NoError(t, err)
	f.createSoccerMatch(t)

	matches, err := f.admin.ListMatches(ctx, f.soccerAdm, "", model.MatchCompleted)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, model.MatchCompleted, matches[0].Status)
}

func TestAnnouncementCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ann, err := f.admin.CreateAnnouncement(ctx, &CreateAnnouncementInput{
		Title: "Opening", Body: "Gates at 9am", Pinned: true,
	})
	require.NoError(t, err)
	require.True(t, ann.Pinned)

	pinned := false
	updated, err := f.admin.UpdateAnnouncement(ctx, ann.ID, &UpdateAnnouncementInput{Pinned: &pinned})
	require.NoError(t, err)
	require.False(t, updated.Pinned)
	require.Equal(t, "Opening", updated.Title)

	require.NoError(t, f.admin.DeleteAnnouncement(ctx, ann.ID))
	require.ErrorIs(t, f.admin.DeleteAnnouncement(ctx, ann.ID), ErrAnnouncementNotFound)
	_, err = f.admin.UpdateAnnouncement(ctx, ann.ID, &UpdateAnnouncementInput{})
	require.ErrorIs(t, err, ErrAnnouncementNotFound)
}

package service

import (
	"context"
	"testing"
	"time"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/database/dbtest"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	memberId    int64 = 1
	ownerId     int64 = 2
	moderatorId int64 = 3
	adminId     int64 = 4
)

func setup(t *testing.T) (*ModerationService, *gorm.DB, *mq.MemoryPublisher) {
	t.Helper()
	database := dbtest.New(t)
	dbtest.SeedUser(t, database, memberId, model.RoleMember)
	dbtest.SeedUser(t, database, ownerId, model.RoleMember)
	dbtest.SeedUser(t, database, moderatorId, model.RoleModerator)
	dbtest.SeedUser(t, database, adminId, model.RoleAdministrator)
	now := time.Now()
	dbtest.SeedVideo(t, database, 100, ownerId, model.VideoStatusActive, now)
	dbtest.SeedVideo(t, database, 101, ownerId, model.VideoStatusActive, now)
	dbtest.SeedVideo(t, database, 102, ownerId, model.VideoStatusPending, now)
	dbtest.SeedVideo(t, database, 200, memberId, model.VideoStatusActive, now)
	pub := &mq.MemoryPublisher{}
	return NewModerationService(database, pub), database, pub
}

func videoStatus(t *testing.T, database *gorm.DB, videoId int64) string {
	t.Helper()
	var video model.Video
	require.NoError(t, database.Where("video_id = ?", videoId).Take(&video).Error)
	return video.Status
}

func userStatus(t *testing.T, database *gorm.DB, userId int64) string {
	t.Helper()
	var user model.User
	require.NoError(t, database.Where("user_id = ?", userId).Take(&user).Error)
	return user.Status
}

func TestCreateReport(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := setup(t)

	report, err := svc.CreateReport(ctx, memberId, 100, "  spam  ")
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusOpen, report.Status)
	assert.Equal(t, "spam", report.Reason)

	_, err = svc.CreateReport(ctx, memberId, 100, "again")
	assert.ErrorIs(t, err, errno.ConflictErr)

	_, err = svc.CreateReport(ctx, memberId, 999, "spam")
	assert.ErrorIs(t, err, errno.NotFoundErr)

	_, err = svc.CreateReport(ctx, 999, 100, "spam")
	assert.ErrorIs(t, err, errno.NotFoundErr)

	_, err = svc.CreateReport(ctx, memberId, 101, "   ")
	assert.ErrorIs(t, err, errno.InvalidArgumentErr)

	events := pub.ModerationEvents()
	require.Len(t, events, 1)
	assert.Equal(t, mq.EventReportCreated, events[0].Type)
	assert.Equal(t, report.ReportId, events[0].ReportID)
}

func TestCreateReportAfterResolution(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	report, err := svc.CreateReport(ctx, memberId, 100, "spam")
	require.NoError(t, err)
	_, err = svc.ResolveReport(ctx, moderatorId, report.ReportId, "dismiss")
	require.NoError(t, err)

	_, err = svc.CreateReport(ctx, memberId, 100, "spam again")
	assert.ErrorIs(t, err, errno.ConflictErr)
}

func TestResolveReport(t *testing.T) {
	ctx := context.Background()

	t.Run("dismiss", func(t *testing.T) {
		svc, database, _ := setup(t)
		report, err := svc.CreateReport(ctx, memberId, 100, "spam")
		require.NoError(t, err)

		resolved, err := svc.ResolveReport(ctx, moderatorId, report.ReportId, "DISMISS")
		require.NoError(t, err)
		assert.Equal(t, model.ReportStatusDismissed, resolved.Status)
		assert.Equal(t, model.VideoStatusActive, videoStatus(t, database, 100))

		_, err = svc.ResolveReport(ctx, moderatorId, report.ReportId, "hide")
		assert.ErrorIs(t, err, errno.InvalidOperationErr)
	})

	t.Run("hide", func(t *testing.T) {
		svc, database, pub := setup(t)
		report, err := svc.CreateReport(ctx, memberId, 100, "spam")
		require.NoError(t, err)

		resolved, err := svc.ResolveReport(ctx, adminId, report.ReportId, "hide")
		require.NoError(t, err)
		assert.Equal(t, model.ReportStatusResolved, resolved.Status)
		assert.Equal(t, model.ReportActionHide, resolved.Action)
		assert.Equal(t, model.VideoStatusBanned, videoStatus(t, database, 100))
		assert.Equal(t, model.VideoStatusActive, videoStatus(t, database, 101))

		events := pub.ModerationEvents()
		require.Len(t, events, 2)
		assert.Equal(t, mq.EventReportResolved, events[1].Type)
		assert.Equal(t, model.ReportActionHide, events[1].Action)
	})

	t.Run("ban", func(t *testing.T) {
		svc, database, _ := setup(t)
		report, err := svc.CreateReport(ctx, memberId, 100, "abuse")
		require.NoError(t, err)

		_, err = svc.ResolveReport(ctx, moderatorId, report.ReportId, "ban")
		require.NoError(t, err)
		for _, id := range []int64{100, 101, 102} {
			assert.Equal(t, model.VideoStatusBanned, videoStatus(t, database, id))
		}
		assert.Equal(t, model.VideoStatusActive, videoStatus(t, database, 200))
		assert.Equal(t, model.UserStatusBanned, userStatus(t, database, ownerId))
	})

	t.Run("moderator cannot ban self through a report", func(t *testing.T) {
		svc, database, _ := setup(t)
		dbtest.SeedVideo(t, database, 300, moderatorId, model.VideoStatusActive, time.Now())
		report, err := svc.CreateReport(ctx, memberId, 300, "abuse")
		require.NoError(t, err)

		_, err = svc.ResolveReport(ctx, moderatorId, report.ReportId, "ban")
		assert.ErrorIs(t, err, errno.InvalidOperationErr)
		assert.Equal(t, model.UserStatusActive, userStatus(t, database, moderatorId))
		assert.Equal(t, model.VideoStatusActive, videoStatus(t, database, 300))

		var stored model.Report
		require.NoError(t, database.Where("report_id = ?", report.ReportId).Take(&stored).Error)
		assert.Equal(t, model.ReportStatusOpen, stored.Status)

		// 其他审核员可以处理
		_, err = svc.ResolveReport(ctx, adminId, report.ReportId, "ban")
		require.NoError(t, err)
		assert.Equal(t, model.UserStatusBanned, userStatus(t, database, moderatorId))
	})

	t.Run("invalid action leaves report open", func(t *testing.T) {
		svc, database, _ := setup(t)
		report, err := svc.CreateReport(ctx, memberId, 100, "spam")
		require.NoError(t, err)

		_, err = svc.ResolveReport(ctx, moderatorId, report.ReportId, "delete")
		assert.ErrorIs(t, err, errno.InvalidArgumentErr)

		var stored model.Report
		require.NoError(t, database.Where("report_id = ?", report.ReportId).Take(&stored).Error)
		assert.Equal(t, model.ReportStatusOpen, stored.Status)
	})

	t.Run("member cannot resolve", func(t *testing.T) {
		svc, _, _ := setup(t)
		report, err := svc.CreateReport(ctx, memberId, 100, "spam")
		require.NoError(t, err)

		_, err = svc.ResolveReport(ctx, memberId, report.ReportId, "hide")
		assert.ErrorIs(t, err, errno.ForbiddenErr)
	})

	t.Run("missing report", func(t *testing.T) {
		svc, _, _ := setup(t)
		_, err := svc.ResolveReport(ctx, moderatorId, 12345, "dismiss")
		assert.ErrorIs(t, err, errno.NotFoundErr)
	})
}

func TestHideAndUnhideVideo(t *testing.T) {
	ctx := context.Background()
	svc, database, _ := setup(t)

	require.NoError(t, svc.HideVideo(ctx, moderatorId, 100))
	assert.Equal(t, model.VideoStatusBanned, videoStatus(t, database, 100))
	require.NoError(t, svc.HideVideo(ctx, moderatorId, 100))

	require.NoError(t, svc.UnhideVideo(ctx, moderatorId, 100))
	assert.Equal(t, model.VideoStatusActive, videoStatus(t, database, 100))
	require.NoError(t, svc.UnhideVideo(ctx, moderatorId, 100))

	assert.ErrorIs(t, svc.UnhideVideo(ctx, moderatorId, 102), errno.InvalidOperationErr)
	assert.ErrorIs(t, svc.HideVideo(ctx, moderatorId, 999), errno.NotFoundErr)
	assert.ErrorIs(t, svc.HideVideo(ctx, memberId, 101), errno.ForbiddenErr)
}

func TestBanUser(t *testing.T) {
	ctx := context.Background()
	svc, database, pub := setup(t)

	_, err := svc.BanUser(ctx, memberId, ownerId)
	assert.ErrorIs(t, err, errno.ForbiddenErr)

	_, err = svc.BanUser(ctx, moderatorId, moderatorId)
	assert.ErrorIs(t, err, errno.InvalidOperationErr)

	_, err = svc.BanUser(ctx, moderatorId, 999)
	assert.ErrorIs(t, err, errno.NotFoundErr)

	affected, err := svc.BanUser(ctx, moderatorId, ownerId)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	assert.Equal(t, model.UserStatusBanned, userStatus(t, database, ownerId))

	events := pub.ModerationEvents()
	require.Len(t, events, 1)
	assert.Equal(t, mq.EventUserBanned, events[0].Type)
	assert.Equal(t, ownerId, events[0].UserID)
}

func TestListReports(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	first, err := svc.CreateReport(ctx, memberId, 100, "spam")
	require.NoError(t, err)
	_, err = svc.CreateReport(ctx, memberId, 101, "spam")
	require.NoError(t, err)
	_, err = svc.ResolveReport(ctx, moderatorId, first.ReportId, "dismiss")
	require.NoError(t, err)

	all, err := svc.ListReports(ctx, moderatorId, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	open, err := svc.ListReports(ctx, moderatorId, "open")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, int64(101), open[0].VideoId)

	_, err = svc.ListReports(ctx, moderatorId, "closed")
	assert.ErrorIs(t, err, errno.InvalidArgumentErr)

	_, err = svc.ListReports(ctx, memberId, "")
	assert.ErrorIs(t, err, errno.ForbiddenErr)
}

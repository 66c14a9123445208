package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/cmd/moderation/dal/db"
	userdb "ShortVideo.com/cmd/user/dal/db"
	videodb "ShortVideo.com/cmd/video/dal/db"
	"ShortVideo.com/pkg/errno"
	"ShortVideo.com/pkg/metrics"
	"ShortVideo.com/pkg/mq"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

const maxReasonLength = 500

// ModerationService 举报和审核动作 每个动作在一个事务中完成
type ModerationService struct {
	db        *gorm.DB
	publisher mq.EventPublisher
}

func NewModerationService(db *gorm.DB, publisher mq.EventPublisher) *ModerationService {
	return &ModerationService{db: db, publisher: publisher}
}

// CreateReport 同一用户对同一视频只能举报一次 与之前举报的处理结果无关
func (s *ModerationService) CreateReport(ctx context.Context, reporterId, videoId int64, reason string) (*model.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" || utf8.RuneCountInString(reason) > maxReasonLength {
		return nil, errno.InvalidArgumentErr.WithMessage("report reason must be between 1 and 500 characters")
	}

	report := &model.Report{
		ReportId:   utils.GenerateID(),
		ReporterId: reporterId,
		VideoId:    videoId,
		Reason:     reason,
		Status:     model.ReportStatusOpen,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := db.ReportExists(ctx, tx, reporterId, videoId)
		if err != nil {
			return err
		}
		if exists {
			return errno.ConflictErr.WithMessage("You have already reported this video")
		}
		if _, err = userdb.GetUser(ctx, tx, reporterId); err != nil {
			return err
		}
		if _, err = videodb.GetVideo(ctx, tx, videoId); err != nil {
			return err
		}
		created, err := db.CreateReport(ctx, tx, report)
		if err != nil {
			return err
		}
		if !created {
			return errno.ConflictErr.WithMessage("You have already reported this video")
		}
		return nil
	})
	if err != nil {
		s.logErr(ctx, "CreateReport", err)
		return nil, err
	}

	event := mq.NewModerationEvent(mq.EventReportCreated, reporterId)
	event.ReportID = report.ReportId
	event.VideoID = videoId
	s.publish(ctx, event)
	return report, nil
}

// ResolveReport action不区分大小写 dismiss hide ban
func (s *ModerationService) ResolveReport(ctx context.Context, actorId, reportId int64, action string) (*model.Report, error) {
	if err := s.checkModerator(ctx, actorId); err != nil {
		return nil, err
	}
	action = strings.ToLower(strings.TrimSpace(action))
	switch action {
	case model.ReportActionDismiss, model.ReportActionHide, model.ReportActionBan:
	default:
		return nil, errno.InvalidArgumentErr.WithMessage("Invalid action: " + action)
	}

	var (
		report   *model.Report
		ownerId  int64
		affected int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if report, err = db.GetReport(ctx, tx, reportId); err != nil {
			return err
		}
		if report.Status != model.ReportStatusOpen {
			return errno.InvalidOperationErr.WithMessage("report is already " + report.Status)
		}
		if action == model.ReportActionBan {
			video, err := videodb.GetVideo(ctx, tx, report.VideoId)
			if err != nil {
				return err
			}
			if video.UserId == actorId {
				return errno.InvalidOperationErr.WithMessage("cannot ban yourself")
			}
			ownerId = video.UserId
		}

		status := model.ReportStatusResolved
		if action == model.ReportActionDismiss {
			status = model.ReportStatusDismissed
		}
		closed, err := db.CloseReport(ctx, tx, reportId, actorId, status, action)
		if err != nil {
			return err
		}
		if !closed {
			return errno.InvalidOperationErr.WithMessage("report was resolved concurrently")
		}
		report.Status, report.Action, report.ResolvedBy = status, action, actorId

		switch action {
		case model.ReportActionHide:
			affected, err = hideVideo(ctx, tx, report.VideoId)
			return err
		case model.ReportActionBan:
			affected, err = banUser(ctx, tx, ownerId)
			return err
		}
		return nil
	})
	if err != nil {
		s.logErr(ctx, "ResolveReport", err)
		return nil, err
	}

	metrics.Moderation(action)
	event := mq.NewModerationEvent(mq.EventReportResolved, actorId)
	event.ReportID = reportId
	event.VideoID = report.VideoId
	event.UserID = ownerId
	event.Action = action
	event.AffectedVideos = affected
	s.publish(ctx, event)
	return report, nil
}

// HideVideo 已封禁的视频再次隐藏不报错
func (s *ModerationService) HideVideo(ctx context.Context, actorId, videoId int64) error {
	if err := s.checkModerator(ctx, actorId); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := hideVideo(ctx, tx, videoId)
		return err
	})
	if err != nil {
		s.logErr(ctx, "HideVideo", err)
		return err
	}
	metrics.Moderation(mq.EventVideoHidden)
	event := mq.NewModerationEvent(mq.EventVideoHidden, actorId)
	event.VideoID = videoId
	s.publish(ctx, event)
	return nil
}

// UnhideVideo 只允许banned到active 已经是active时不报错
func (s *ModerationService) UnhideVideo(ctx context.Context, actorId, videoId int64) error {
	if err := s.checkModerator(ctx, actorId); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		video, err := videodb.GetVideo(ctx, tx, videoId)
		if err != nil {
			return err
		}
		switch video.Status {
		case model.VideoStatusActive:
			return nil
		case model.VideoStatusBanned:
			_, err = videodb.UpdateVideoStatus(ctx, tx, videoId, []string{model.VideoStatusBanned}, model.VideoStatusActive)
			return err
		default:
			return errno.InvalidOperationErr.WithMessage("only banned videos can be unhidden")
		}
	})
	if err != nil {
		s.logErr(ctx, "UnhideVideo", err)
		return err
	}
	metrics.Moderation(mq.EventVideoUnhidden)
	event := mq.NewModerationEvent(mq.EventVideoUnhidden, actorId)
	event.VideoID = videoId
	s.publish(ctx, event)
	return nil
}

// BanUser 封禁账号及其全部视频 返回本次被封禁的视频数
func (s *ModerationService) BanUser(ctx context.Context, actorId, userId int64) (int64, error) {
	if err := s.checkModerator(ctx, actorId); err != nil {
		return 0, err
	}
	if actorId == userId {
		return 0, errno.InvalidOperationErr.WithMessage("cannot ban yourself")
	}
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := userdb.GetUser(ctx, tx, userId); err != nil {
			return err
		}
		var err error
		affected, err = banUser(ctx, tx, userId)
		return err
	})
	if err != nil {
		s.logErr(ctx, "BanUser", err)
		return 0, err
	}
	metrics.Moderation(mq.EventUserBanned)
	event := mq.NewModerationEvent(mq.EventUserBanned, actorId)
	event.UserID = userId
	event.AffectedVideos = affected
	s.publish(ctx, event)
	return affected, nil
}

// ListReports status为空时返回全部举报
func (s *ModerationService) ListReports(ctx context.Context, actorId int64, status string) ([]*model.Report, error) {
	if err := s.checkModerator(ctx, actorId); err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case "", model.ReportStatusOpen, model.ReportStatusDismissed, model.ReportStatusResolved:
	default:
		return nil, errno.InvalidArgumentErr.WithMessage("Invalid report status: " + status)
	}
	return db.ListReports(ctx, s.db, status)
}

func (s *ModerationService) checkModerator(ctx context.Context, actorId int64) error {
	actor, err := userdb.GetUser(ctx, s.db, actorId)
	if err != nil {
		if errno.IsErrNo(err) {
			return errno.ForbiddenErr.WithMessage("moderator role required")
		}
		return err
	}
	if !model.CanModerate(actor.Role) || actor.Status == model.UserStatusBanned {
		return errno.ForbiddenErr.WithMessage("moderator role required")
	}
	return nil
}

func hideVideo(ctx context.Context, tx *gorm.DB, videoId int64) (int64, error) {
	if _, err := videodb.GetVideo(ctx, tx, videoId); err != nil {
		return 0, err
	}
	return videodb.UpdateVideoStatus(ctx, tx, videoId,
		[]string{model.VideoStatusPending, model.VideoStatusActive}, model.VideoStatusBanned)
}

// banUser 一条UPDATE封禁全部视频 再把账号标记为banned
func banUser(ctx context.Context, tx *gorm.DB, userId int64) (int64, error) {
	affected, err := videodb.BanVideosByOwner(ctx, tx, userId)
	if err != nil {
		return 0, err
	}
	if err = userdb.BanUser(ctx, tx, userId); err != nil {
		return 0, err
	}
	return affected, nil
}

func (s *ModerationService) publish(ctx context.Context, event *mq.ModerationEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishModerationEvent(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish %s event failed: %v", event.Type, err)
	}
}

func (s *ModerationService) logErr(ctx context.Context, op string, err error) {
	if !errno.IsErrNo(err) {
		hlog.CtxErrorf(ctx, "%s failed: %v", op, err)
	}
}

package mq

import (
	"time"

	"github.com/google/uuid"
)

// 互动事件类型
const (
	EventLike          = "like"
	EventUnlike        = "unlike"
	EventFollow        = "follow"
	EventUnfollow      = "unfollow"
	EventView          = "view"
	EventShare         = "share"
	EventCommentAdd    = "comment_add"
	EventCommentDelete = "comment_delete"
)

// 审核事件类型
const (
	EventReportCreated  = "report_created"
	EventReportResolved = "report_resolved"
	EventVideoHidden    = "video_hidden"
	EventVideoUnhidden  = "video_unhidden"
	EventUserBanned     = "user_banned"
)

// EngagementEvent 互动事件 在事务提交后发布
type EngagementEvent struct {
	EventID       string `json:"event_id"`
	Type          string `json:"type"`
	UserID        int64  `json:"user_id"`
	VideoID       int64  `json:"video_id,omitempty"`
	TargetUserID  int64  `json:"target_user_id,omitempty"`
	CommentID     int64  `json:"comment_id,omitempty"`
	Delta         int64  `json:"delta,omitempty"`
	WatchDuration int64  `json:"watch_duration,omitempty"`
	Completed     bool   `json:"completed,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// ModerationEvent 审核事件
type ModerationEvent struct {
	EventID        string `json:"event_id"`
	Type           string `json:"type"`
	ActorID        int64  `json:"actor_id"`
	ReportID       int64  `json:"report_id,omitempty"`
	VideoID        int64  `json:"video_id,omitempty"`
	UserID         int64  `json:"user_id,omitempty"`
	Action         string `json:"action,omitempty"`
	AffectedVideos int64  `json:"affected_videos,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

func NewEngagementEvent(eventType string, userID, videoID int64) *EngagementEvent {
	return &EngagementEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		VideoID:   videoID,
		Timestamp: time.Now().UnixMilli(),
	}
}

func NewModerationEvent(eventType string, actorID int64) *ModerationEvent {
	return &ModerationEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now().UnixMilli(),
	}
}

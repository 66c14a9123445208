package model

import "time"

const (
	ReportStatusOpen      = "open"
	ReportStatusDismissed = "dismissed"
	ReportStatusResolved  = "resolved"

	ReportActionDismiss = "dismiss"
	ReportActionHide    = "hide"
	ReportActionBan     = "ban"
)

type Report struct {
	ReportId   int64     `json:"report_id" gorm:"primaryKey;autoIncrement:false"`
	ReporterId int64     `json:"reporter_id" gorm:"uniqueIndex:idx_reporter_video;not null"`
	VideoId    int64     `json:"video_id" gorm:"uniqueIndex:idx_reporter_video;index;not null"`
	Reason     string    `json:"reason" gorm:"size:500;not null"`
	Status     string    `json:"status" gorm:"size:20;index;not null;default:open"`
	Action     string    `json:"action" gorm:"size:20"`
	ResolvedBy int64     `json:"resolved_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

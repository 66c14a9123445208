package db

import (
	"context"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportExists 不区分状态 同一用户对同一视频只能举报一次
func ReportExists(ctx context.Context, tx *gorm.DB, reporterId, videoId int64) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Report{}).
		Where("reporter_id = ? AND video_id = ?", reporterId, videoId).
		Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "dao.ReportExists failed")
	}
	return count > 0, nil
}

// CreateReport 唯一索引冲突时返回false
func CreateReport(ctx context.Context, tx *gorm.DB, report *model.Report) (bool, error) {
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(report)
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "dao.CreateReport failed")
	}
	return res.RowsAffected > 0, nil
}

func GetReport(ctx context.Context, tx *gorm.DB, reportId int64) (*model.Report, error) {
	var report model.Report
	err := tx.WithContext(ctx).Model(&model.Report{}).Where("report_id = ?", reportId).Take(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("report not found")
	}
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetReport failed")
	}
	return &report, nil
}

// CloseReport 只关闭仍为open的举报 返回是否更新成功
func CloseReport(ctx context.Context, tx *gorm.DB, reportId, actorId int64, status, action string) (bool, error) {
	res := tx.WithContext(ctx).Model(&model.Report{}).
		Where("report_id = ? AND status = ?", reportId, model.ReportStatusOpen).
		Updates(map[string]interface{}{
			"status":      status,
			"action":      action,
			"resolved_by": actorId,
		})
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "dao.CloseReport failed")
	}
	return res.RowsAffected > 0, nil
}

// ListReports status为空时返回全部 按创建时间倒序
func ListReports(ctx context.Context, tx *gorm.DB, status string) ([]*model.Report, error) {
	var reports []*model.Report
	q := tx.WithContext(ctx).Model(&model.Report{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Order("report_id DESC").Find(&reports).Error; err != nil {
		return nil, errors.WithMessage(err, "dao.ListReports failed")
	}
	return reports, nil
}

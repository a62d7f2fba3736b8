package repository

import (
	"context"

	"gorm.io/gorm"

	"examseating/internal/model"
	pkgerrors "examseating/pkg/errors"
)

// SeatingRepository 座位表数据访问接口
type SeatingRepository interface {
	Create(ctx context.Context, arrangement *model.SeatingArrangement) error
	CreateAssignments(ctx context.Context, assignments []model.SeatAssignment) error
	GetByID(ctx context.Context, id string) (*model.SeatingArrangement, error)
	GetDetailByID(ctx context.Context, id string) (*model.SeatingArrangement, error)
	List(ctx context.Context, examSubjectID, status string, offset, limit int) ([]model.SeatingArrangement, int64, error)
	Update(ctx context.Context, arrangement *model.SeatingArrangement) error
	Delete(ctx context.Context, id string) error
	HasApprovedForSubject(ctx context.Context, examSubjectID, excludeID string) (bool, error)
	GetApprovedAssignment(ctx context.Context, examSubjectID, studentID string) (*model.SeatAssignment, error)
	ListAssignments(ctx context.Context, arrangementID string) ([]model.SeatAssignment, error)
}

type seatingRepo struct {
	db *gorm.DB
}

// NewSeatingRepo 创建 SeatingRepository 实例
func NewSeatingRepo(db *gorm.DB) SeatingRepository {
	return &seatingRepo{db: db}
}

func (r *seatingRepo) Create(ctx context.Context, arrangement *model.SeatingArrangement) error {
	return r.db.WithContext(ctx).Create(arrangement).Error
}

func (r *seatingRepo) CreateAssignments(ctx context.Context, assignments []model.SeatAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&assignments, 200).Error
}

func (r *seatingRepo) GetByID(ctx context.Context, id string) (*model.SeatingArrangement, error) {
	var arrangement model.SeatingArrangement
	err := r.db.WithContext(ctx).
		Preload("ExamSubject").
		Where("id = ?", id).
		First(&arrangement).Error
	if err != nil {
		return nil, err
	}
	return &arrangement, nil
}

// GetDetailByID 查询座位表详情，预载全部座位分配及考生、考场
func (r *seatingRepo) GetDetailByID(ctx context.Context, id string) (*model.SeatingArrangement, error) {
	var arrangement model.SeatingArrangement
	err := r.db.WithContext(ctx).
		Preload("ExamSubject").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("seat_code ASC")
		}).
		Preload("Assignments.Student").
		Preload("Assignments.Classroom").
		Where("id = ?", id).
		First(&arrangement).Error
	if err != nil {
		return nil, err
	}
	return &arrangement, nil
}

func (r *seatingRepo) List(ctx context.Context, examSubjectID, status string, offset, limit int) ([]model.SeatingArrangement, int64, error) {
	var (
		arrangements []model.SeatingArrangement
		total        int64
	)
	q := r.db.WithContext(ctx).Model(&model.SeatingArrangement{})
	if examSubjectID != "" {
		q = q.Where("exam_subject_id = ?", examSubjectID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("ExamSubject").
		Preload("Assignments").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&arrangements).Error
	return arrangements, total, err
}

// Update 乐观锁更新：version 不匹配时返回 ErrOptimisticLock
func (r *seatingRepo) Update(ctx context.Context, arrangement *model.SeatingArrangement) error {
	currentVersion := arrangement.Version
	result := r.db.WithContext(ctx).
		Model(&model.SeatingArrangement{}).
		Where("id = ? AND version = ?", arrangement.ID, currentVersion).
		Updates(map[string]interface{}{
			"status":           arrangement.Status,
			"approved_by":      arrangement.ApprovedBy,
			"approved_at":      arrangement.ApprovedAt,
			"rejection_reason": arrangement.RejectionReason,
			"version":          currentVersion + 1,
			"updated_at":       gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	arrangement.Version = currentVersion + 1
	return nil
}

func (r *seatingRepo) Delete(ctx context.Context, id string) error {
	// seat_assignments 由外键 ON DELETE CASCADE 一并删除
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.SeatingArrangement{}).Error
}

// HasApprovedForSubject 某场次是否已存在其他已批准座位表
func (r *seatingRepo) HasApprovedForSubject(ctx context.Context, examSubjectID, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&model.SeatingArrangement{}).
		Where("exam_subject_id = ? AND status = ?", examSubjectID, model.ArrangementApproved)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// GetApprovedAssignment 查询考生在某场次已批准座位表中的座位
func (r *seatingRepo) GetApprovedAssignment(ctx context.Context, examSubjectID, studentID string) (*model.SeatAssignment, error) {
	var assignment model.SeatAssignment
	err := r.db.WithContext(ctx).
		Joins("JOIN seating_arrangements ON seating_arrangements.id = seat_assignments.arrangement_id").
		Where("seating_arrangements.exam_subject_id = ? AND seating_arrangements.status = ? AND seat_assignments.student_id = ?",
			examSubjectID, model.ArrangementApproved, studentID).
		Preload("Student").
		Preload("Classroom").
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *seatingRepo) ListAssignments(ctx context.Context, arrangementID string) ([]model.SeatAssignment, error) {
	var assignments []model.SeatAssignment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Classroom").
		Where("arrangement_id = ?", arrangementID).
		Order("seat_code ASC").
		Find(&assignments).Error
	return assignments, err
}

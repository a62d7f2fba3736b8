package repository

import (
	"context"

	"gorm.io/gorm"

	"examseating/internal/model"
)

// ExamRepository 考试周期与科目场次数据访问接口
type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	GetByID(ctx context.Context, id string) (*model.Exam, error)
	List(ctx context.Context, offset, limit int) ([]model.Exam, int64, error)
	Update(ctx context.Context, exam *model.Exam) error
	Delete(ctx context.Context, id string) error

	CreateSubject(ctx context.Context, subject *model.ExamSubject) error
	GetSubjectByID(ctx context.Context, id string) (*model.ExamSubject, error)
	ListSubjects(ctx context.Context, examID string) ([]model.ExamSubject, error)
	UpdateSubject(ctx context.Context, subject *model.ExamSubject) error
	DeleteSubject(ctx context.Context, id string) error
}

type examRepo struct {
	db *gorm.DB
}

// NewExamRepo 创建 ExamRepository 实例
func NewExamRepo(db *gorm.DB) ExamRepository {
	return &examRepo{db: db}
}

func (r *examRepo) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepo) GetByID(ctx context.Context, id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.WithContext(ctx).
		Preload("Subjects").
		Where("id = ?", id).
		First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepo) List(ctx context.Context, offset, limit int) ([]model.Exam, int64, error) {
	var (
		exams []model.Exam
		total int64
	)
	q := r.db.WithContext(ctx).Model(&model.Exam{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("start_date DESC").
		Offset(offset).Limit(limit).
		Find(&exams).Error
	return exams, total, err
}

func (r *examRepo) Update(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Save(exam).Error
}

func (r *examRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Exam{}).Error
}

// ── 科目场次 ──

func (r *examRepo) CreateSubject(ctx context.Context, subject *model.ExamSubject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *examRepo) GetSubjectByID(ctx context.Context, id string) (*model.ExamSubject, error) {
	var subject model.ExamSubject
	err := r.db.WithContext(ctx).
		Preload("Exam").
		Where("id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *examRepo) ListSubjects(ctx context.Context, examID string) ([]model.ExamSubject, error) {
	var subjects []model.ExamSubject
	err := r.db.WithContext(ctx).
		Where("exam_id = ?", examID).
		Order("exam_date ASC, start_time ASC").
		Find(&subjects).Error
	return subjects, err
}

func (r *examRepo) UpdateSubject(ctx context.Context, subject *model.ExamSubject) error {
	return r.db.WithContext(ctx).Save(subject).Error
}

func (r *examRepo) DeleteSubject(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ExamSubject{}).Error
}

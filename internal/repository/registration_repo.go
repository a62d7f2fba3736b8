package repository

import (
	"context"

	"gorm.io/gorm"

	"examseating/internal/model"
)

// RegistrationRepository 考试报名数据访问接口
type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.ExamRegistration) error
	CreateBatch(ctx context.Context, regs []model.ExamRegistration) error
	GetByID(ctx context.Context, id string) (*model.ExamRegistration, error)
	GetBySubjectAndStudent(ctx context.Context, examSubjectID, studentID string) (*model.ExamRegistration, error)
	Exists(ctx context.Context, examSubjectID, studentID string) (bool, error)
	ListBySubject(ctx context.Context, examSubjectID string) ([]model.ExamRegistration, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.ExamRegistration, error)
	Delete(ctx context.Context, id string) error
}

type registrationRepo struct {
	db *gorm.DB
}

// NewRegistrationRepo 创建 RegistrationRepository 实例
func NewRegistrationRepo(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, reg *model.ExamRegistration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepo) CreateBatch(ctx context.Context, regs []model.ExamRegistration) error {
	if len(regs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&regs).Error
}

func (r *registrationRepo) GetByID(ctx context.Context, id string) (*model.ExamRegistration, error) {
	var reg model.ExamRegistration
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("ExamSubject").
		Where("id = ?", id).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) GetBySubjectAndStudent(ctx context.Context, examSubjectID, studentID string) (*model.ExamRegistration, error) {
	var reg model.ExamRegistration
	err := r.db.WithContext(ctx).
		Where("exam_subject_id = ? AND student_id = ?", examSubjectID, studentID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) Exists(ctx context.Context, examSubjectID, studentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ExamRegistration{}).
		Where("exam_subject_id = ? AND student_id = ?", examSubjectID, studentID).
		Count(&count).Error
	return count > 0, err
}

// ListBySubject 查询某场次的全部报名（预载考生，供排座引擎取花名册）。
// 按学号排序：批量报名共用同一时间戳，按报名时间排会让名单顺序不可复现
func (r *registrationRepo) ListBySubject(ctx context.Context, examSubjectID string) ([]model.ExamRegistration, error) {
	var regs []model.ExamRegistration
	err := r.db.WithContext(ctx).
		Preload("Student").
		Joins("JOIN students ON students.id = exam_registrations.student_id").
		Where("exam_registrations.exam_subject_id = ?", examSubjectID).
		Order("students.roll_number ASC").
		Find(&regs).Error
	return regs, err
}

func (r *registrationRepo) ListByStudent(ctx context.Context, studentID string) ([]model.ExamRegistration, error) {
	var regs []model.ExamRegistration
	err := r.db.WithContext(ctx).
		Preload("ExamSubject").
		Where("student_id = ?", studentID).
		Order("registered_at ASC").
		Find(&regs).Error
	return regs, err
}

func (r *registrationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ExamRegistration{}).Error
}

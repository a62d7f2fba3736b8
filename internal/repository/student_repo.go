package repository

import (
	"context"

	"gorm.io/gorm"

	"examseating/internal/model"
)

// StudentRepository 考生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (*model.Student, error)
	GetByUserID(ctx context.Context, userID string) (*model.Student, error)
	List(ctx context.Context, grade, keyword string, offset, limit int) ([]model.Student, int64, error)
	ListByGrade(ctx context.Context, grade string) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string) error
	CountAssignments(ctx context.Context, studentID string) (int64, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByRollNumber(ctx context.Context, rollNumber string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("roll_number = ?", rollNumber).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByUserID(ctx context.Context, userID string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context, grade, keyword string, offset, limit int) ([]model.Student, int64, error) {
	var (
		students []model.Student
		total    int64
	)
	q := r.db.WithContext(ctx).Model(&model.Student{})
	if grade != "" {
		q = q.Where("grade = ?", grade)
	}
	if keyword != "" {
		like := "%" + keyword + "%"
		q = q.Where("full_name ILIKE ? OR roll_number ILIKE ?", like, like)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("roll_number ASC").
		Offset(offset).Limit(limit).
		Find(&students).Error
	return students, total, err
}

func (r *studentRepo) ListByGrade(ctx context.Context, grade string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("grade = ?", grade).
		Order("roll_number ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Student{}).Error
}

// CountAssignments 统计考生被座位分配引用的次数（删除前守卫）
func (r *studentRepo) CountAssignments(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SeatAssignment{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"examseating/internal/model"
)

// ClassroomRepository 考场数据访问接口
type ClassroomRepository interface {
	Create(ctx context.Context, classroom *model.Classroom) error
	GetByID(ctx context.Context, id string) (*model.Classroom, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Classroom, error)
	GetByName(ctx context.Context, name string) (*model.Classroom, error)
	List(ctx context.Context) ([]model.Classroom, error)
	Update(ctx context.Context, classroom *model.Classroom) error
	Delete(ctx context.Context, id string) error
	CountAssignments(ctx context.Context, classroomID string) (int64, error)
}

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo 创建 ClassroomRepository 实例
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) Create(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *classroomRepo) GetByID(ctx context.Context, id string) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&classroom).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

// GetByIDs 批量查询考场，结果顺序与传入 ids 无关
func (r *classroomRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&classrooms).Error
	return classrooms, err
}

func (r *classroomRepo) GetByName(ctx context.Context, name string) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&classroom).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepo) List(ctx context.Context) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&classrooms).Error
	return classrooms, err
}

func (r *classroomRepo) Update(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Save(classroom).Error
}

func (r *classroomRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Classroom{}).Error
}

// CountAssignments 统计考场被座位分配引用的次数（删除前守卫）
func (r *classroomRepo) CountAssignments(ctx context.Context, classroomID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SeatAssignment{}).
		Where("classroom_id = ?", classroomID).
		Count(&count).Error
	return count, err
}

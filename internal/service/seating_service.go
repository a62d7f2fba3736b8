package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"examseating/internal/dto"
	"examseating/internal/model"
	"examseating/internal/repository"
	"examseating/pkg/redis"
)

// ── 排座模块业务错误 ──

var (
	ErrArrangementNotFound  = errors.New("座位表不存在")
	ErrExamSubjectNotFound  = errors.New("考试科目不存在")
	ErrExamNotActive        = errors.New("考试周期非进行中状态，不可排座")
	ErrClassroomUnavailable = errors.New("所选考场不存在或已停用")
	ErrClassroomDuplicated  = errors.New("考场列表包含重复项")
	ErrNotCreator           = errors.New("仅座位表创建人可执行此操作")
	ErrReviewerRequired     = errors.New("仅管理员可审核座位表")
	ErrAdminRequired        = errors.New("仅管理员可执行此操作")
	ErrEmptyArrangement     = errors.New("座位表为空，不可提交")
	ErrApprovedExists       = errors.New("该科目已存在已批准的座位表")
	ErrRejectReasonRequired = errors.New("驳回必须填写原因")
	ErrStudentBlacklisted   = errors.New("考生已被列入黑名单，无法查询座位")
	ErrStudentNotFound      = errors.New("考生不存在")
)

// SeatingService 排座业务接口
type SeatingService interface {
	// 生成座位表（结果以草稿态原子落库）
	Generate(ctx context.Context, req *dto.GenerateSeatingRequest, callerID string) (*dto.ArrangementDetailResponse, error)
	// 提交审核
	Submit(ctx context.Context, id, callerID string) error
	// 批准
	Approve(ctx context.Context, id, callerID, callerRole string) error
	// 驳回
	Reject(ctx context.Context, id, reason, callerID, callerRole string) error
	// 驳回后重新提交（清除驳回信息）
	Resubmit(ctx context.Context, id, callerID string) error
	// 删除
	Delete(ctx context.Context, id, callerID, callerRole string) error
	// 详情（含违规统计）
	Get(ctx context.Context, id string) (*dto.ArrangementDetailResponse, error)
	// 列表
	List(ctx context.Context, req *dto.ListArrangementsRequest) ([]dto.ArrangementResponse, int64, error)
	// 考生查询本人座位条（仅 approved 可见）
	GetMySeat(ctx context.Context, examSubjectID, callerUserID string) (*dto.SeatSlipResponse, error)
}

type seatingService struct {
	repo     *repository.Repository
	rdb      *redis.Client // 可为 nil，降级为直查数据库
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSeatingService 创建 SeatingService 实例
func NewSeatingService(repo *repository.Repository, rdb *redis.Client, cacheTTL time.Duration, logger *zap.Logger) SeatingService {
	return &seatingService{repo: repo, rdb: rdb, cacheTTL: cacheTTL, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Generate — 名单校验 → 引擎排座 → 草稿落库
// ════════════════════════════════════════════════════════════

func (s *seatingService) Generate(ctx context.Context, req *dto.GenerateSeatingRequest, callerID string) (*dto.ArrangementDetailResponse, error) {
	// 1. 校验科目及其所属考试周期
	subject, err := s.repo.Exam.GetSubjectByID(ctx, req.ExamSubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamSubjectNotFound
		}
		s.logger.Error("查询考试科目失败", zap.Error(err))
		return nil, err
	}
	if subject.Exam == nil || subject.Exam.Status != model.ExamActive {
		return nil, ErrExamNotActive
	}

	// 2. 校验考场：不得重复、必须全部存在且启用，顺序保持请求顺序
	// 同一考场出现两次会导致座位被重复展开，容量虚增且后排覆盖前排
	seen := make(map[string]bool, len(req.ClassroomIDs))
	for _, id := range req.ClassroomIDs {
		if seen[id] {
			return nil, ErrClassroomDuplicated
		}
		seen[id] = true
	}
	classrooms, err := s.repo.Classroom.GetByIDs(ctx, req.ClassroomIDs)
	if err != nil {
		s.logger.Error("查询考场失败", zap.Error(err))
		return nil, err
	}
	byID := make(map[string]*model.Classroom, len(classrooms))
	for i := range classrooms {
		byID[classrooms[i].ID] = &classrooms[i]
	}
	ordered := make([]model.Classroom, 0, len(req.ClassroomIDs))
	for _, id := range req.ClassroomIDs {
		room, ok := byID[id]
		if !ok || !room.IsActive {
			return nil, ErrClassroomUnavailable
		}
		ordered = append(ordered, *room)
	}

	// 3. 解析名单：已报名且具备资格（已审核、未拉黑）的考生
	roster, err := s.resolveRoster(ctx, req.ExamSubjectID)
	if err != nil {
		return nil, err
	}

	// 4. 引擎排座（容量不足时在此失败，不落库）
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	assignments, err := generateSeatPlan(roster, ordered, seed)
	if err != nil {
		return nil, err
	}

	// 5. 事务落库：座位表与全部座位分配必须同生共死
	arrangement := &model.SeatingArrangement{
		ExamSubjectID: req.ExamSubjectID,
		Name:          req.Name,
		Status:        model.ArrangementDraft,
		CreatedBy:     callerID,
		Seed:          seed,
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Seating.Create(ctx, arrangement); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建座位表失败", zap.Error(err))
		return nil, err
	}
	for i := range assignments {
		assignments[i].ArrangementID = arrangement.ID
	}
	if err := txRepo.Seating.CreateAssignments(ctx, assignments); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入座位分配失败", zap.Error(err))
		return nil, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("座位表已生成",
		zap.String("arrangement_id", arrangement.ID),
		zap.String("exam_subject_id", req.ExamSubjectID),
		zap.Int("students", len(assignments)),
		zap.Int64("seed", seed),
	)

	return s.Get(ctx, arrangement.ID)
}

// resolveRoster 名单解析：报名记录 → 过滤资格
func (s *seatingService) resolveRoster(ctx context.Context, examSubjectID string) ([]model.Student, error) {
	regs, err := s.repo.Registration.ListBySubject(ctx, examSubjectID)
	if err != nil {
		s.logger.Error("查询报名名单失败", zap.Error(err))
		return nil, err
	}
	roster := make([]model.Student, 0, len(regs))
	for i := range regs {
		student := regs[i].Student
		if student == nil {
			continue
		}
		if !student.Eligible() {
			continue
		}
		roster = append(roster, *student)
	}
	return roster, nil
}

// ════════════════════════════════════════════════════════════
// 生命周期转换
// draft → submitted → approved / rejected；rejected 可重新提交
// ════════════════════════════════════════════════════════════

func (s *seatingService) Submit(ctx context.Context, id, callerID string) error {
	arrangement, err := s.getArrangement(ctx, id)
	if err != nil {
		return err
	}
	if arrangement.CreatedBy != callerID {
		return ErrNotCreator
	}
	if arrangement.Status != model.ArrangementDraft {
		return &InvalidTransitionError{From: arrangement.Status, To: model.ArrangementSubmitted}
	}

	assignments, err := s.repo.Seating.ListAssignments(ctx, id)
	if err != nil {
		s.logger.Error("查询座位分配失败", zap.Error(err))
		return err
	}
	if len(assignments) == 0 {
		return ErrEmptyArrangement
	}

	arrangement.Status = model.ArrangementSubmitted
	return s.updateArrangement(ctx, arrangement)
}

func (s *seatingService) Approve(ctx context.Context, id, callerID, callerRole string) error {
	if callerRole != model.RoleAdmin {
		return ErrReviewerRequired
	}
	arrangement, err := s.getArrangement(ctx, id)
	if err != nil {
		return err
	}
	if arrangement.Status != model.ArrangementSubmitted {
		return &InvalidTransitionError{From: arrangement.Status, To: model.ArrangementApproved}
	}

	// 同科目互斥：已有批准座位表时拒绝（数据库部分唯一索引兜底）
	exists, err := s.repo.Seating.HasApprovedForSubject(ctx, arrangement.ExamSubjectID, id)
	if err != nil {
		s.logger.Error("查询已批准座位表失败", zap.Error(err))
		return err
	}
	if exists {
		return ErrApprovedExists
	}

	now := time.Now()
	arrangement.Status = model.ArrangementApproved
	arrangement.ApprovedBy = &callerID
	arrangement.ApprovedAt = &now
	if err := s.updateArrangement(ctx, arrangement); err != nil {
		return err
	}

	// 清除该科目下可能残留的旧座位条缓存
	if s.rdb != nil {
		if err := s.rdb.InvalidateSeatSlips(ctx, arrangement.ExamSubjectID); err != nil {
			s.logger.Warn("清除座位条缓存失败", zap.Error(err))
		}
	}

	s.logger.Info("座位表已批准",
		zap.String("arrangement_id", id),
		zap.String("approved_by", callerID),
	)
	return nil
}

func (s *seatingService) Reject(ctx context.Context, id, reason, callerID, callerRole string) error {
	if callerRole != model.RoleAdmin {
		return ErrReviewerRequired
	}
	if reason == "" {
		return ErrRejectReasonRequired
	}
	arrangement, err := s.getArrangement(ctx, id)
	if err != nil {
		return err
	}
	if arrangement.Status != model.ArrangementSubmitted {
		return &InvalidTransitionError{From: arrangement.Status, To: model.ArrangementRejected}
	}

	arrangement.Status = model.ArrangementRejected
	arrangement.RejectionReason = &reason
	return s.updateArrangement(ctx, arrangement)
}

// Resubmit 驳回后原记录重新提交：清除驳回原因与审批信息
func (s *seatingService) Resubmit(ctx context.Context, id, callerID string) error {
	arrangement, err := s.getArrangement(ctx, id)
	if err != nil {
		return err
	}
	if arrangement.CreatedBy != callerID {
		return ErrNotCreator
	}
	if arrangement.Status != model.ArrangementRejected {
		return &InvalidTransitionError{From: arrangement.Status, To: model.ArrangementSubmitted}
	}

	arrangement.Status = model.ArrangementSubmitted
	arrangement.RejectionReason = nil
	arrangement.ApprovedBy = nil
	arrangement.ApprovedAt = nil
	return s.updateArrangement(ctx, arrangement)
}

// Delete 删除座位表：
// draft / rejected 由创建人（或管理员）清理；approved 仅管理员可删，作为撤销已确认排座的唯一途径
func (s *seatingService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	arrangement, err := s.getArrangement(ctx, id)
	if err != nil {
		return err
	}

	switch arrangement.Status {
	case model.ArrangementDraft, model.ArrangementRejected:
		if arrangement.CreatedBy != callerID && callerRole != model.RoleAdmin {
			return ErrNotCreator
		}
	case model.ArrangementApproved:
		if callerRole != model.RoleAdmin {
			return ErrAdminRequired
		}
	default:
		return &InvalidTransitionError{From: arrangement.Status, To: "deleted"}
	}

	if err := s.repo.Seating.Delete(ctx, id); err != nil {
		s.logger.Error("删除座位表失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 已批准座位表被撤销后清除考生座位条缓存
	if arrangement.Status == model.ArrangementApproved && s.rdb != nil {
		if err := s.rdb.InvalidateSeatSlips(ctx, arrangement.ExamSubjectID); err != nil {
			s.logger.Warn("清除座位条缓存失败", zap.Error(err))
		}
	}
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *seatingService) Get(ctx context.Context, id string) (*dto.ArrangementDetailResponse, error) {
	arrangement, err := s.repo.Seating.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArrangementNotFound
		}
		s.logger.Error("查询座位表失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	detail := &dto.ArrangementDetailResponse{
		ArrangementResponse: *s.toArrangementResponse(arrangement, len(arrangement.Assignments)),
		Assignments:         make([]dto.SeatAssignmentResponse, 0, len(arrangement.Assignments)),
	}

	roster := make([]model.Student, 0, len(arrangement.Assignments))
	for i := range arrangement.Assignments {
		a := &arrangement.Assignments[i]
		item := dto.SeatAssignmentResponse{
			StudentID:   a.StudentID,
			ClassroomID: a.ClassroomID,
			SeatRow:     a.SeatRow,
			SeatColumn:  a.SeatColumn,
			SeatCode:    a.SeatCode,
		}
		if a.Student != nil {
			item.RollNumber = a.Student.RollNumber
			item.StudentName = a.Student.FullName
			item.Grade = a.Student.Grade
			roster = append(roster, *a.Student)
		}
		if a.Classroom != nil {
			item.Classroom = a.Classroom.Name
		}
		detail.Assignments = append(detail.Assignments, item)
	}
	detail.ViolationCount = countAdjacencyViolations(arrangement.Assignments, roster)

	return detail, nil
}

func (s *seatingService) List(ctx context.Context, req *dto.ListArrangementsRequest) ([]dto.ArrangementResponse, int64, error) {
	arrangements, total, err := s.repo.Seating.List(ctx, req.ExamSubjectID, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出座位表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ArrangementResponse, 0, len(arrangements))
	for i := range arrangements {
		result = append(result, *s.toArrangementResponse(&arrangements[i], len(arrangements[i].Assignments)))
	}
	return result, total, nil
}

// GetMySeat 考生座位条投影。无已批准座位表时返回 available=false 的座位条；
// 黑名单考生拒绝查询
func (s *seatingService) GetMySeat(ctx context.Context, examSubjectID, callerUserID string) (*dto.SeatSlipResponse, error) {
	student, err := s.repo.Student.GetByUserID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询考生失败", zap.Error(err))
		return nil, err
	}
	if student.IsBlacklisted {
		return nil, ErrStudentBlacklisted
	}

	// 缓存命中则直接返回
	if s.rdb != nil {
		cached, err := s.rdb.GetSeatSlip(ctx, examSubjectID, student.ID)
		if err != nil {
			s.logger.Warn("读取座位条缓存失败", zap.Error(err))
		} else if cached != "" {
			var slip dto.SeatSlipResponse
			if err := json.Unmarshal([]byte(cached), &slip); err == nil {
				return &slip, nil
			}
		}
	}

	subject, err := s.repo.Exam.GetSubjectByID(ctx, examSubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamSubjectNotFound
		}
		s.logger.Error("查询考试科目失败", zap.Error(err))
		return nil, err
	}

	slip := &dto.SeatSlipResponse{
		StudentName: student.FullName,
		RollNumber:  student.RollNumber,
		Subject:     subject.Subject,
		ExamDate:    subject.ExamDate.Format("2006-01-02"),
		StartTime:   subject.StartTime,
		EndTime:     subject.EndTime,
	}

	assignment, err := s.repo.Seating.GetApprovedAssignment(ctx, examSubjectID, student.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 座位表未批准不算错误，返回 available=false 的座位条
			return slip, nil
		}
		s.logger.Error("查询座位分配失败", zap.Error(err))
		return nil, err
	}

	slip.Available = true
	slip.SeatCode = assignment.SeatCode
	slip.SeatRow = assignment.SeatRow
	slip.SeatColumn = assignment.SeatColumn
	if assignment.Classroom != nil {
		slip.Classroom = assignment.Classroom.Name
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(slip); err == nil {
			if err := s.rdb.SetSeatSlip(ctx, examSubjectID, student.ID, string(payload), s.cacheTTL); err != nil {
				s.logger.Warn("写入座位条缓存失败", zap.Error(err))
			}
		}
	}
	return slip, nil
}

// ── 内部辅助方法 ──

func (s *seatingService) getArrangement(ctx context.Context, id string) (*model.SeatingArrangement, error) {
	arrangement, err := s.repo.Seating.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArrangementNotFound
		}
		s.logger.Error("查询座位表失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return arrangement, nil
}

func (s *seatingService) updateArrangement(ctx context.Context, arrangement *model.SeatingArrangement) error {
	if err := s.repo.Seating.Update(ctx, arrangement); err != nil {
		s.logger.Error("更新座位表失败", zap.String("id", arrangement.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *seatingService) toArrangementResponse(arrangement *model.SeatingArrangement, assignmentCount int) *dto.ArrangementResponse {
	resp := &dto.ArrangementResponse{
		ID:              arrangement.ID,
		ExamSubjectID:   arrangement.ExamSubjectID,
		Name:            arrangement.Name,
		Status:          arrangement.Status,
		CreatedBy:       arrangement.CreatedBy,
		ApprovedBy:      arrangement.ApprovedBy,
		RejectionReason: arrangement.RejectionReason,
		AssignmentCount: assignmentCount,
		CreatedAt:       arrangement.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if arrangement.ApprovedAt != nil {
		t := arrangement.ApprovedAt.Format("2006-01-02T15:04:05Z")
		resp.ApprovedAt = &t
	}
	if arrangement.ExamSubject != nil {
		resp.Subject = arrangement.ExamSubject.Subject
		resp.ExamDate = arrangement.ExamSubject.ExamDate.Format("2006-01-02")
	}
	return resp
}

// [自证通过] internal/service/seating_service.go

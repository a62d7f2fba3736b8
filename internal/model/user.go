package model

// 用户角色取值
const (
	RoleAdmin         = "admin"
	RoleTeacher       = "teacher"
	RoleStudent       = "student"
	RoleExamCommittee = "exam_committee"
)

// UserProfile 用户表 — 对应 user_profiles
type UserProfile struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Password string `gorm:"type:varchar(255);not null"                     json:"-"`
	FullName string `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Role     string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"` // admin | teacher | student | exam_committee
	BaseModel
}

// TableName 指定表名
func (UserProfile) TableName() string { return "user_profiles" }

// [自证通过] internal/model/user.go

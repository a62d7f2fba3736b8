package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"examseating/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.UserProfile
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.UserProfile)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.UserProfile) error {
	if user.ID == "" {
		m.seq++
		user.ID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.UserProfile, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.UserProfile, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.UserProfile) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.UserProfile, int64, error) {
	var result []model.UserProfile
	for _, u := range m.users {
		result = append(result, *u)
	}
	return paginate(result, offset, limit), int64(len(m.users)), nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students        map[string]*model.Student
	assignmentCount map[string]int64
	countErr        error
	seq             int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{
		students:        make(map[string]*model.Student),
		assignmentCount: make(map[string]int64),
	}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.ID == "" {
		m.seq++
		student.ID = fmt.Sprintf("stu-%03d", m.seq)
	}
	m.students[student.ID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByRollNumber(_ context.Context, rollNumber string) (*model.Student, error) {
	for _, s := range m.students {
		if s.RollNumber == rollNumber {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByUserID(_ context.Context, userID string) (*model.Student, error) {
	for _, s := range m.students {
		if s.UserID != nil && *s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, grade, _ string, offset, limit int) ([]model.Student, int64, error) {
	var result []model.Student
	for _, s := range m.students {
		if grade != "" && s.Grade != grade {
			continue
		}
		result = append(result, *s)
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockStudentRepo) ListByGrade(_ context.Context, grade string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.Grade == grade {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.ID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

func (m *mockStudentRepo) CountAssignments(_ context.Context, studentID string) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.assignmentCount[studentID], nil
}

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	classrooms      map[string]*model.Classroom
	assignmentCount map[string]int64
	seq             int
}

func newMockClassroomRepo() *mockClassroomRepo {
	return &mockClassroomRepo{
		classrooms:      make(map[string]*model.Classroom),
		assignmentCount: make(map[string]int64),
	}
}

func (m *mockClassroomRepo) Create(_ context.Context, classroom *model.Classroom) error {
	if classroom.ID == "" {
		m.seq++
		classroom.ID = fmt.Sprintf("room-%03d", m.seq)
	}
	m.classrooms[classroom.ID] = classroom
	return nil
}

func (m *mockClassroomRepo) GetByID(_ context.Context, id string) (*model.Classroom, error) {
	if c, ok := m.classrooms[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) GetByIDs(_ context.Context, ids []string) ([]model.Classroom, error) {
	var result []model.Classroom
	for _, id := range ids {
		if c, ok := m.classrooms[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockClassroomRepo) GetByName(_ context.Context, name string) (*model.Classroom, error) {
	for _, c := range m.classrooms {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) List(_ context.Context) ([]model.Classroom, error) {
	var result []model.Classroom
	for _, c := range m.classrooms {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockClassroomRepo) Update(_ context.Context, classroom *model.Classroom) error {
	m.classrooms[classroom.ID] = classroom
	return nil
}

func (m *mockClassroomRepo) Delete(_ context.Context, id string) error {
	delete(m.classrooms, id)
	return nil
}

func (m *mockClassroomRepo) CountAssignments(_ context.Context, classroomID string) (int64, error) {
	return m.assignmentCount[classroomID], nil
}

// ── Mock ExamRepository ──

type mockExamRepo struct {
	exams    map[string]*model.Exam
	subjects map[string]*model.ExamSubject
	seq      int
}

func newMockExamRepo() *mockExamRepo {
	return &mockExamRepo{
		exams:    make(map[string]*model.Exam),
		subjects: make(map[string]*model.ExamSubject),
	}
}

func (m *mockExamRepo) Create(_ context.Context, exam *model.Exam) error {
	if exam.ID == "" {
		m.seq++
		exam.ID = fmt.Sprintf("exam-%03d", m.seq)
	}
	m.exams[exam.ID] = exam
	return nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id string) (*model.Exam, error) {
	if e, ok := m.exams[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamRepo) List(_ context.Context, offset, limit int) ([]model.Exam, int64, error) {
	var result []model.Exam
	for _, e := range m.exams {
		result = append(result, *e)
	}
	return paginate(result, offset, limit), int64(len(m.exams)), nil
}

func (m *mockExamRepo) Update(_ context.Context, exam *model.Exam) error {
	m.exams[exam.ID] = exam
	return nil
}

func (m *mockExamRepo) Delete(_ context.Context, id string) error {
	delete(m.exams, id)
	return nil
}

func (m *mockExamRepo) CreateSubject(_ context.Context, subject *model.ExamSubject) error {
	if subject.ID == "" {
		m.seq++
		subject.ID = fmt.Sprintf("subj-%03d", m.seq)
	}
	m.subjects[subject.ID] = subject
	return nil
}

func (m *mockExamRepo) GetSubjectByID(_ context.Context, id string) (*model.ExamSubject, error) {
	s, ok := m.subjects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	if e, ok := m.exams[s.ExamID]; ok {
		copied.Exam = e
	}
	return &copied, nil
}

func (m *mockExamRepo) ListSubjects(_ context.Context, examID string) ([]model.ExamSubject, error) {
	var result []model.ExamSubject
	for _, s := range m.subjects {
		if s.ExamID == examID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockExamRepo) UpdateSubject(_ context.Context, subject *model.ExamSubject) error {
	m.subjects[subject.ID] = subject
	return nil
}

func (m *mockExamRepo) DeleteSubject(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock RegistrationRepository ──

type mockRegistrationRepo struct {
	registrations map[string]*model.ExamRegistration
	students      map[string]*model.Student
	subjects      map[string]*model.ExamSubject
	seq           int
}

func newMockRegistrationRepo() *mockRegistrationRepo {
	return &mockRegistrationRepo{
		registrations: make(map[string]*model.ExamRegistration),
		students:      make(map[string]*model.Student),
		subjects:      make(map[string]*model.ExamSubject),
	}
}

func (m *mockRegistrationRepo) Create(_ context.Context, reg *model.ExamRegistration) error {
	if reg.ID == "" {
		m.seq++
		reg.ID = fmt.Sprintf("reg-%03d", m.seq)
	}
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = time.Now()
	}
	m.registrations[reg.ID] = reg
	return nil
}

func (m *mockRegistrationRepo) CreateBatch(ctx context.Context, regs []model.ExamRegistration) error {
	for i := range regs {
		if err := m.Create(ctx, &regs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockRegistrationRepo) GetByID(_ context.Context, id string) (*model.ExamRegistration, error) {
	r, ok := m.registrations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	copied.Student = m.students[r.StudentID]
	copied.ExamSubject = m.subjects[r.ExamSubjectID]
	return &copied, nil
}

func (m *mockRegistrationRepo) GetBySubjectAndStudent(_ context.Context, examSubjectID, studentID string) (*model.ExamRegistration, error) {
	for _, r := range m.registrations {
		if r.ExamSubjectID == examSubjectID && r.StudentID == studentID {
			copied := *r
			copied.Student = m.students[r.StudentID]
			copied.ExamSubject = m.subjects[r.ExamSubjectID]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) Exists(_ context.Context, examSubjectID, studentID string) (bool, error) {
	for _, r := range m.registrations {
		if r.ExamSubjectID == examSubjectID && r.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRegistrationRepo) ListBySubject(_ context.Context, examSubjectID string) ([]model.ExamRegistration, error) {
	var result []model.ExamRegistration
	for _, r := range m.registrations {
		if r.ExamSubjectID != examSubjectID {
			continue
		}
		copied := *r
		copied.Student = m.students[r.StudentID]
		result = append(result, copied)
	}
	// 与真实仓储一致：按学号排序，保证花名册顺序可复现
	sort.Slice(result, func(i, j int) bool {
		var a, b string
		if result[i].Student != nil {
			a = result[i].Student.RollNumber
		}
		if result[j].Student != nil {
			b = result[j].Student.RollNumber
		}
		if a == b {
			return result[i].ID < result[j].ID
		}
		return a < b
	})
	return result, nil
}

func (m *mockRegistrationRepo) ListByStudent(_ context.Context, studentID string) ([]model.ExamRegistration, error) {
	var result []model.ExamRegistration
	for _, r := range m.registrations {
		if r.StudentID != studentID {
			continue
		}
		copied := *r
		copied.ExamSubject = m.subjects[r.ExamSubjectID]
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockRegistrationRepo) Delete(_ context.Context, id string) error {
	delete(m.registrations, id)
	return nil
}

// ── Mock SeatingRepository ──

type mockSeatingRepo struct {
	arrangements map[string]*model.SeatingArrangement
	assignments  map[string][]model.SeatAssignment // arrangementID → 座位分配
	students     map[string]*model.Student
	classrooms   map[string]*model.Classroom
	subjects     map[string]*model.ExamSubject
	seq          int
}

func newMockSeatingRepo() *mockSeatingRepo {
	return &mockSeatingRepo{
		arrangements: make(map[string]*model.SeatingArrangement),
		assignments:  make(map[string][]model.SeatAssignment),
		students:     make(map[string]*model.Student),
		classrooms:   make(map[string]*model.Classroom),
		subjects:     make(map[string]*model.ExamSubject),
	}
}

func (m *mockSeatingRepo) Create(_ context.Context, arrangement *model.SeatingArrangement) error {
	if arrangement.ID == "" {
		m.seq++
		arrangement.ID = fmt.Sprintf("arr-%03d", m.seq)
	}
	if arrangement.Version == 0 {
		arrangement.Version = 1
	}
	m.arrangements[arrangement.ID] = arrangement
	return nil
}

func (m *mockSeatingRepo) CreateAssignments(_ context.Context, assignments []model.SeatAssignment) error {
	for _, a := range assignments {
		m.assignments[a.ArrangementID] = append(m.assignments[a.ArrangementID], a)
	}
	return nil
}

func (m *mockSeatingRepo) GetByID(_ context.Context, id string) (*model.SeatingArrangement, error) {
	a, ok := m.arrangements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	copied.ExamSubject = m.subjects[a.ExamSubjectID]
	return &copied, nil
}

func (m *mockSeatingRepo) GetDetailByID(ctx context.Context, id string) (*model.SeatingArrangement, error) {
	detail, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items := append([]model.SeatAssignment(nil), m.assignments[id]...)
	sort.Slice(items, func(i, j int) bool { return items[i].SeatCode < items[j].SeatCode })
	for i := range items {
		items[i].Student = m.students[items[i].StudentID]
		items[i].Classroom = m.classrooms[items[i].ClassroomID]
	}
	detail.Assignments = items
	return detail, nil
}

func (m *mockSeatingRepo) List(_ context.Context, examSubjectID, status string, offset, limit int) ([]model.SeatingArrangement, int64, error) {
	var result []model.SeatingArrangement
	for _, a := range m.arrangements {
		if examSubjectID != "" && a.ExamSubjectID != examSubjectID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		copied := *a
		copied.ExamSubject = m.subjects[a.ExamSubjectID]
		copied.Assignments = m.assignments[a.ID]
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	total := int64(len(result))
	return paginate(result, offset, limit), total, nil
}

func (m *mockSeatingRepo) Update(_ context.Context, arrangement *model.SeatingArrangement) error {
	arrangement.Version++
	m.arrangements[arrangement.ID] = arrangement
	return nil
}

func (m *mockSeatingRepo) Delete(_ context.Context, id string) error {
	delete(m.arrangements, id)
	delete(m.assignments, id)
	return nil
}

func (m *mockSeatingRepo) HasApprovedForSubject(_ context.Context, examSubjectID, excludeID string) (bool, error) {
	for _, a := range m.arrangements {
		if a.ExamSubjectID != examSubjectID || a.Status != model.ArrangementApproved {
			continue
		}
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (m *mockSeatingRepo) GetApprovedAssignment(_ context.Context, examSubjectID, studentID string) (*model.SeatAssignment, error) {
	for _, a := range m.arrangements {
		if a.ExamSubjectID != examSubjectID || a.Status != model.ArrangementApproved {
			continue
		}
		for _, item := range m.assignments[a.ID] {
			if item.StudentID == studentID {
				copied := item
				copied.Student = m.students[item.StudentID]
				copied.Classroom = m.classrooms[item.ClassroomID]
				return &copied, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeatingRepo) ListAssignments(_ context.Context, arrangementID string) ([]model.SeatAssignment, error) {
	items := append([]model.SeatAssignment(nil), m.assignments[arrangementID]...)
	sort.Slice(items, func(i, j int) bool { return items[i].SeatCode < items[j].SeatCode })
	return items, nil
}

// ── 分页辅助 ──

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

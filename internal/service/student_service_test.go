package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"examseating/internal/dto"
	"examseating/internal/repository"
)

func setupTestStudentService() (StudentService, *mockStudentRepo) {
	students := newMockStudentRepo()
	repo := &repository.Repository{
		User:         newMockUserRepo(),
		Student:      students,
		Classroom:    newMockClassroomRepo(),
		Exam:         newMockExamRepo(),
		Registration: newMockRegistrationRepo(),
		Seating:      newMockSeatingRepo(),
	}
	svc := NewStudentService(repo, zap.NewNop())
	return svc, students
}

func TestStudentService_Create_Success(t *testing.T) {
	svc, _ := setupTestStudentService()

	student, err := svc.Create(context.Background(), &dto.CreateStudentRequest{
		RollNumber: "2026001",
		FullName:   "张三",
		Grade:      "G10",
		Section:    "A",
		Subject:    "数学",
		PaperSet:   strPtr("A"),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if student.IsApproved {
		t.Error("新考生应默认未审核")
	}
	if student.PaperSet == nil || *student.PaperSet != "A" {
		t.Error("卷别未保存")
	}
}

func TestStudentService_Create_RollTaken(t *testing.T) {
	svc, _ := setupTestStudentService()
	ctx := context.Background()

	req := &dto.CreateStudentRequest{RollNumber: "2026001", FullName: "张三", Grade: "G10", Subject: "数学"}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("第一次创建应成功: %v", err)
	}
	_, err := svc.Create(ctx, &dto.CreateStudentRequest{RollNumber: "2026001", FullName: "李四", Grade: "G11", Subject: "物理"})
	if !errors.Is(err, ErrStudentRollTaken) {
		t.Errorf("期望 ErrStudentRollTaken，实际: %v", err)
	}
}

func TestStudentService_Update_ApprovalAndBlacklist(t *testing.T) {
	svc, students := setupTestStudentService()
	ctx := context.Background()

	student, err := svc.Create(ctx, &dto.CreateStudentRequest{
		RollNumber: "2026001", FullName: "张三", Grade: "G10", Subject: "数学",
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	approved := true
	if _, err := svc.Update(ctx, student.ID, &dto.UpdateStudentRequest{IsApproved: &approved}); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if !students.students[student.ID].Eligible() {
		t.Error("审核通过后考生应具备排座资格")
	}

	blacklisted := true
	if _, err := svc.Update(ctx, student.ID, &dto.UpdateStudentRequest{IsBlacklisted: &blacklisted}); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if students.students[student.ID].Eligible() {
		t.Error("拉黑后考生不应具备排座资格")
	}
}

func TestStudentService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestStudentService()

	name := "李四"
	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateStudentRequest{FullName: &name})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestStudentService_List_FilterByGrade(t *testing.T) {
	svc, _ := setupTestStudentService()
	ctx := context.Background()

	for _, s := range []struct{ roll, grade string }{
		{"2026001", "G10"}, {"2026002", "G10"}, {"2027001", "G11"},
	} {
		if _, err := svc.Create(ctx, &dto.CreateStudentRequest{
			RollNumber: s.roll, FullName: "考生" + s.roll, Grade: s.grade, Subject: "数学",
		}); err != nil {
			t.Fatalf("Create 失败: %v", err)
		}
	}

	result, total, err := svc.List(ctx, &dto.ListStudentsRequest{Grade: "G10"})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 2 || len(result) != 2 {
		t.Errorf("期望 2 名 G10 考生，实际 total=%d len=%d", total, len(result))
	}
}

func TestStudentService_Delete(t *testing.T) {
	svc, students := setupTestStudentService()
	ctx := context.Background()

	student, err := svc.Create(ctx, &dto.CreateStudentRequest{
		RollNumber: "2026001", FullName: "张三", Grade: "G10", Subject: "数学",
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if err := svc.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := students.students[student.ID]; ok {
		t.Error("考生未被删除")
	}
}

func TestStudentService_Delete_InUse(t *testing.T) {
	svc, students := setupTestStudentService()
	ctx := context.Background()

	student, err := svc.Create(ctx, &dto.CreateStudentRequest{
		RollNumber: "2026001", FullName: "张三", Grade: "G10", Subject: "数学",
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	students.assignmentCount[student.ID] = 1

	err = svc.Delete(ctx, student.ID)
	if !errors.Is(err, ErrStudentInUse) {
		t.Errorf("期望 ErrStudentInUse，实际: %v", err)
	}
	if _, ok := students.students[student.ID]; !ok {
		t.Error("被引用的考生不应被删除")
	}
}

func TestStudentService_Delete_RepoError(t *testing.T) {
	svc, students := setupTestStudentService()
	ctx := context.Background()

	student, err := svc.Create(ctx, &dto.CreateStudentRequest{
		RollNumber: "2026001", FullName: "张三", Grade: "G10", Subject: "数学",
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	// 仓储层的瞬时故障应原样上抛，而不是伪装成引用冲突
	repoErr := errors.New("connection reset")
	students.countErr = repoErr
	err = svc.Delete(ctx, student.ID)
	if !errors.Is(err, repoErr) {
		t.Errorf("期望上抛仓储错误，实际: %v", err)
	}
	if errors.Is(err, ErrStudentInUse) {
		t.Error("仓储错误不应被映射为 ErrStudentInUse")
	}
}

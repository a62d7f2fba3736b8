package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"examseating/internal/dto"
	"examseating/internal/model"
	"examseating/internal/repository"
)

func setupTestExamService() (ExamService, *mockExamRepo) {
	exams := newMockExamRepo()
	repo := &repository.Repository{
		User:         newMockUserRepo(),
		Student:      newMockStudentRepo(),
		Classroom:    newMockClassroomRepo(),
		Exam:         exams,
		Registration: newMockRegistrationRepo(),
		Seating:      newMockSeatingRepo(),
	}
	svc := NewExamService(repo, zap.NewNop())
	return svc, exams
}

func TestExamService_Create_Success(t *testing.T) {
	svc, _ := setupTestExamService()

	exam, err := svc.Create(context.Background(), &dto.CreateExamRequest{
		Name:      "2026 秋季期末考试",
		StartDate: "2026-09-07",
		EndDate:   "2026-09-18",
	}, "user-admin")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if exam.Status != model.ExamUpcoming {
		t.Errorf("新考试周期应为 upcoming，实际=%s", exam.Status)
	}
	if exam.CreatedBy == nil || *exam.CreatedBy != "user-admin" {
		t.Error("创建人未记录")
	}
}

func TestExamService_Create_InvalidDateOrder(t *testing.T) {
	svc, _ := setupTestExamService()

	_, err := svc.Create(context.Background(), &dto.CreateExamRequest{
		Name:      "倒置日期",
		StartDate: "2026-09-18",
		EndDate:   "2026-09-07",
	}, "user-admin")
	if !errors.Is(err, ErrExamDateInvalid) {
		t.Errorf("期望 ErrExamDateInvalid，实际: %v", err)
	}
}

func TestExamService_Update_Activate(t *testing.T) {
	svc, exams := setupTestExamService()
	ctx := context.Background()

	exam, err := svc.Create(ctx, &dto.CreateExamRequest{
		Name: "期末考试", StartDate: "2026-09-07", EndDate: "2026-09-18",
	}, "user-admin")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	updated, err := svc.Update(ctx, exam.ID, &dto.UpdateExamRequest{Status: model.ExamActive})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Status != model.ExamActive {
		t.Errorf("期望状态 active，实际=%s", updated.Status)
	}
	if exams.exams[exam.ID].Status != model.ExamActive {
		t.Error("状态未落库")
	}
}

func TestExamService_CreateSubject_Success(t *testing.T) {
	svc, _ := setupTestExamService()
	ctx := context.Background()

	exam, err := svc.Create(ctx, &dto.CreateExamRequest{
		Name: "期末考试", StartDate: "2026-09-07", EndDate: "2026-09-18",
	}, "user-admin")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	subject, err := svc.CreateSubject(ctx, exam.ID, &dto.CreateExamSubjectRequest{
		Subject:   "数学",
		ExamDate:  "2026-09-10",
		StartTime: "09:00",
		EndTime:   "11:00",
	})
	if err != nil {
		t.Fatalf("CreateSubject 应成功: %v", err)
	}
	if subject.ExamID != exam.ID {
		t.Error("科目未关联到考试周期")
	}

	subjects, err := svc.ListSubjects(ctx, exam.ID)
	if err != nil {
		t.Fatalf("ListSubjects 失败: %v", err)
	}
	if len(subjects) != 1 {
		t.Errorf("期望 1 个科目场次，实际=%d", len(subjects))
	}
}

func TestExamService_CreateSubject_BadTimeRange(t *testing.T) {
	svc, _ := setupTestExamService()
	ctx := context.Background()

	exam, err := svc.Create(ctx, &dto.CreateExamRequest{
		Name: "期末考试", StartDate: "2026-09-07", EndDate: "2026-09-18",
	}, "user-admin")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	_, err = svc.CreateSubject(ctx, exam.ID, &dto.CreateExamSubjectRequest{
		Subject:   "数学",
		ExamDate:  "2026-09-10",
		StartTime: "11:00",
		EndTime:   "09:00",
	})
	if !errors.Is(err, ErrTimeRangeBad) {
		t.Errorf("期望 ErrTimeRangeBad，实际: %v", err)
	}
}

func TestExamService_CreateSubject_ExamNotFound(t *testing.T) {
	svc, _ := setupTestExamService()

	_, err := svc.CreateSubject(context.Background(), "nonexistent", &dto.CreateExamSubjectRequest{
		Subject: "数学", ExamDate: "2026-09-10", StartTime: "09:00", EndTime: "11:00",
	})
	if !errors.Is(err, ErrExamNotFound) {
		t.Errorf("期望 ErrExamNotFound，实际: %v", err)
	}
}

func TestExamService_UpdateSubject_BadTimeRange(t *testing.T) {
	svc, _ := setupTestExamService()
	ctx := context.Background()

	exam, err := svc.Create(ctx, &dto.CreateExamRequest{
		Name: "期末考试", StartDate: "2026-09-07", EndDate: "2026-09-18",
	}, "user-admin")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	subject, err := svc.CreateSubject(ctx, exam.ID, &dto.CreateExamSubjectRequest{
		Subject: "数学", ExamDate: "2026-09-10", StartTime: "09:00", EndTime: "11:00",
	})
	if err != nil {
		t.Fatalf("CreateSubject 失败: %v", err)
	}

	_, err = svc.UpdateSubject(ctx, subject.ID, &dto.UpdateExamSubjectRequest{EndTime: "08:00"})
	if !errors.Is(err, ErrTimeRangeBad) {
		t.Errorf("期望 ErrTimeRangeBad，实际: %v", err)
	}
}

func TestExamService_DeleteSubject(t *testing.T) {
	svc, exams := setupTestExamService()
	ctx := context.Background()

	exam, err := svc.Create(ctx, &dto.CreateExamRequest{
		Name: "期末考试", StartDate: "2026-09-07", EndDate: "2026-09-18",
	}, "user-admin")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	subject, err := svc.CreateSubject(ctx, exam.ID, &dto.CreateExamSubjectRequest{
		Subject: "数学", ExamDate: "2026-09-10", StartTime: "09:00", EndTime: "11:00",
	})
	if err != nil {
		t.Fatalf("CreateSubject 失败: %v", err)
	}

	if err := svc.DeleteSubject(ctx, subject.ID); err != nil {
		t.Fatalf("DeleteSubject 应成功: %v", err)
	}
	if _, ok := exams.subjects[subject.ID]; ok {
		t.Error("科目场次未被删除")
	}
	if err := svc.DeleteSubject(ctx, subject.ID); !errors.Is(err, ErrExamSubjectNotFound) {
		t.Errorf("重复删除期望 ErrExamSubjectNotFound，实际: %v", err)
	}
}

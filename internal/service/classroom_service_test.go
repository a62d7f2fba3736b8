package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"examseating/internal/dto"
	"examseating/internal/repository"
)

func setupTestClassroomService() (ClassroomService, *mockClassroomRepo) {
	rooms := newMockClassroomRepo()
	repo := &repository.Repository{
		User:         newMockUserRepo(),
		Student:      newMockStudentRepo(),
		Classroom:    rooms,
		Exam:         newMockExamRepo(),
		Registration: newMockRegistrationRepo(),
		Seating:      newMockSeatingRepo(),
	}
	svc := NewClassroomService(repo, zap.NewNop())
	return svc, rooms
}

func TestClassroomService_Create_Success(t *testing.T) {
	svc, _ := setupTestClassroomService()

	room, err := svc.Create(context.Background(), &dto.CreateClassroomRequest{
		Name: "Hall A", Rows: 5, Columns: 6, Capacity: 28,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if room.Name != "Hall A" {
		t.Errorf("期望 Name=Hall A，实际=%s", room.Name)
	}
	if !room.IsActive {
		t.Error("新考场应默认启用")
	}
}

func TestClassroomService_Create_CapacityExceedsGrid(t *testing.T) {
	svc, _ := setupTestClassroomService()

	_, err := svc.Create(context.Background(), &dto.CreateClassroomRequest{
		Name: "Hall A", Rows: 2, Columns: 2, Capacity: 5,
	})
	if !errors.Is(err, ErrCapacityExceedGrid) {
		t.Errorf("期望 ErrCapacityExceedGrid，实际: %v", err)
	}
}

func TestClassroomService_Create_NameTaken(t *testing.T) {
	svc, _ := setupTestClassroomService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateClassroomRequest{Name: "Hall A", Rows: 2, Columns: 2, Capacity: 4}); err != nil {
		t.Fatalf("第一次创建应成功: %v", err)
	}
	_, err := svc.Create(ctx, &dto.CreateClassroomRequest{Name: "Hall A", Rows: 3, Columns: 3, Capacity: 9})
	if !errors.Is(err, ErrClassroomNameTaken) {
		t.Errorf("期望 ErrClassroomNameTaken，实际: %v", err)
	}
}

func TestClassroomService_Update_CapacityExceedsGrid(t *testing.T) {
	svc, _ := setupTestClassroomService()
	ctx := context.Background()

	room, err := svc.Create(ctx, &dto.CreateClassroomRequest{Name: "Hall A", Rows: 3, Columns: 3, Capacity: 9})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	_, err = svc.Update(ctx, room.ID, &dto.UpdateClassroomRequest{Rows: 2, Columns: 2})
	if !errors.Is(err, ErrCapacityExceedGrid) {
		t.Errorf("缩小网格导致容量超限应被拒绝，期望 ErrCapacityExceedGrid，实际: %v", err)
	}
}

func TestClassroomService_Update_Deactivate(t *testing.T) {
	svc, rooms := setupTestClassroomService()
	ctx := context.Background()

	room, err := svc.Create(ctx, &dto.CreateClassroomRequest{Name: "Hall A", Rows: 3, Columns: 3, Capacity: 9})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	inactive := false
	updated, err := svc.Update(ctx, room.ID, &dto.UpdateClassroomRequest{IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.IsActive {
		t.Error("考场应已停用")
	}
	if rooms.classrooms[room.ID].IsActive {
		t.Error("停用状态未落库")
	}
}

func TestClassroomService_Delete_InUse(t *testing.T) {
	svc, rooms := setupTestClassroomService()
	ctx := context.Background()

	room, err := svc.Create(ctx, &dto.CreateClassroomRequest{Name: "Hall A", Rows: 2, Columns: 2, Capacity: 4})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	rooms.assignmentCount[room.ID] = 3

	err = svc.Delete(ctx, room.ID)
	if !errors.Is(err, ErrClassroomInUse) {
		t.Errorf("期望 ErrClassroomInUse，实际: %v", err)
	}
	if _, ok := rooms.classrooms[room.ID]; !ok {
		t.Error("被引用的考场不应被删除")
	}
}

func TestClassroomService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestClassroomService()

	err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrClassroomNotFound) {
		t.Errorf("期望 ErrClassroomNotFound，实际: %v", err)
	}
}

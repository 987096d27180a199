package service

import (
	"sync"
	"time"
)

// RoomState 是内存房间的生命周期状态。
type RoomState string

const (
	RoomWaiting    RoomState = "waiting_for_opponent" // 等待第二名玩家
	RoomInProgress RoomState = "in_progress"          // 双方已就位
	RoomFinalizing RoomState = "finalizing"           // 结算事务进行中
)

// Room 是一场进行中 (或等待中) 比赛的内存状态。
// 进程重启即丢失；每个 Room 必须有对应的未完成比赛记录，反之则是 bug。
// Room 的所有字段只能经由 RoomRegistry 的方法在锁内访问。
type Room struct {
	ID             uint      // 与持久化比赛记录共用同一 ID
	State          RoomState
	Players        []uint // 有序，创建者在前，容量 2
	CreatorRating  int    // 用于配对扫描，加入后不再使用
	TotalQuestions int
	Reports        map[uint]int // 玩家 ID -> 自报答对数，后报覆盖先报
	CreatedAt      time.Time
	StartedAt      time.Time
}

// RoomSnapshot 是某一时刻房间状态的只读拷贝，供锁外使用。
type RoomSnapshot struct {
	ID             uint
	State          RoomState
	Players        []uint
	TotalQuestions int
	Reports        map[uint]int
	CreatedAt      time.Time
	StartedAt      time.Time
}

// 注册表内部使用的哨兵结果，由 MatchService 映射为业务错误。
type reportStatus int

const (
	reportRecorded reportStatus = iota // 已记录，等待另一名玩家
	reportCompleted                    // 本次上报补齐了最后一个缺口，触发结算
	reportUnknownRoom
	reportNotParticipant
	reportFinalizing   // 结算已在进行中
	reportNotStarted   // 房间仍在等待对手
	reportInvalidCount // 自报答对数为负或超出本局题目数
)

// RoomRegistry 维护所有活跃房间。它是进程内唯一的共享可变状态，
// 所有读写都在内部互斥锁下串行化，外部拿不到裸 map 或 *Room。
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[uint]*Room
}

// NewRoomRegistry 创建空的房间注册表。
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[uint]*Room),
	}
}

// Add 登记一个新创建的等待房间。
func (r *RoomRegistry) Add(id uint, creatorID uint, creatorRating int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[id] = &Room{
		ID:            id,
		State:         RoomWaiting,
		Players:       []uint{creatorID},
		CreatorRating: creatorRating,
		Reports:       make(map[uint]int),
		CreatedAt:     time.Now(),
	}
}

// Remove 从注册表删除房间。
func (r *RoomRegistry) Remove(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
}

// FindWaitingWithin 扫描等待中的房间，返回第一个创建者积分
// 落在 [rating-window, rating+window] 内的房间 (遍历顺序即插入无关的
// map 顺序，刻意不做最优匹配)。排除 requester 自己创建的房间。
func (r *RoomRegistry) FindWaitingWithin(requesterID uint, requesterRating, window int) (uint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, room := range r.rooms {
		if room.State != RoomWaiting {
			continue
		}
		if room.Players[0] == requesterID {
			continue
		}
		diff := room.CreatorRating - requesterRating
		if diff < 0 {
			diff = -diff
		}
		if diff <= window {
			return id, true
		}
	}
	return 0, false
}

// Join 将第二名玩家加入房间并推进到 in_progress。
// 返回 false 表示房间不存在或不在等待状态。
func (r *RoomRegistry) Join(id uint, playerID uint, totalQuestions int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok || room.State != RoomWaiting || len(room.Players) >= 2 {
		return false
	}
	room.Players = append(room.Players, playerID)
	room.State = RoomInProgress
	room.TotalQuestions = totalQuestions
	room.StartedAt = time.Now()
	return true
}

// RoomOfPlayer 返回包含该玩家的房间及其状态。
func (r *RoomRegistry) RoomOfPlayer(playerID uint) (uint, RoomState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, room := range r.rooms {
		for _, p := range room.Players {
			if p == playerID {
				return id, room.State, true
			}
		}
	}
	return 0, "", false
}

// Report 记录一名玩家的自报成绩 (同一玩家后报覆盖先报)。
// 答对数的边界校验在锁内进行，此时 TotalQuestions 已随状态确定。
// 当两名玩家都已上报时，房间原子地转入 finalizing 并返回快照，
// 保证结算对每个房间至多触发一次。
func (r *RoomRegistry) Report(id uint, playerID uint, correct int) (reportStatus, *RoomSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return reportUnknownRoom, nil
	}
	if !roomHasPlayer(room, playerID) {
		return reportNotParticipant, nil
	}
	switch room.State {
	case RoomWaiting:
		return reportNotStarted, nil
	case RoomFinalizing:
		return reportFinalizing, nil
	}
	if correct < 0 || correct > room.TotalQuestions {
		return reportInvalidCount, nil
	}

	room.Reports[playerID] = correct
	if len(room.Players) == 2 && len(room.Reports) == 2 {
		room.State = RoomFinalizing
		return reportCompleted, snapshotLocked(room)
	}
	return reportRecorded, nil
}

// Reopen 在结算事务失败后把房间放回 in_progress，
// 让之后的任意一次上报重新触发结算。
func (r *RoomRegistry) Reopen(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[id]; ok && room.State == RoomFinalizing {
		room.State = RoomInProgress
	}
}

// Snapshot 返回房间的只读拷贝。
func (r *RoomRegistry) Snapshot(id uint) (*RoomSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, false
	}
	return snapshotLocked(room), true
}

// Stale 返回超龄房间的快照：等待状态按 CreatedAt 计龄，
// 进行中按 StartedAt 计龄。结算中的房间不参与清理。
func (r *RoomRegistry) Stale(waitTimeout, matchTimeout time.Duration) []*RoomSnapshot {
	now := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()
	var stale []*RoomSnapshot
	for _, room := range r.rooms {
		switch room.State {
		case RoomWaiting:
			if now.Sub(room.CreatedAt) > waitTimeout {
				stale = append(stale, snapshotLocked(room))
			}
		case RoomInProgress:
			if now.Sub(room.StartedAt) > matchTimeout {
				stale = append(stale, snapshotLocked(room))
			}
		}
	}
	return stale
}

// Len 返回活跃房间数量 (用于日志和测试)。
func (r *RoomRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func roomHasPlayer(room *Room, playerID uint) bool {
	for _, p := range room.Players {
		if p == playerID {
			return true
		}
	}
	return false
}

// snapshotLocked 在持锁状态下复制房间数据。
func snapshotLocked(room *Room) *RoomSnapshot {
	players := make([]uint, len(room.Players))
	copy(players, room.Players)
	reports := make(map[uint]int, len(room.Reports))
	for k, v := range room.Reports {
		reports[k] = v
	}
	return &RoomSnapshot{
		ID:             room.ID,
		State:          room.State,
		Players:        players,
		TotalQuestions: room.TotalQuestions,
		Reports:        reports,
		CreatedAt:      room.CreatedAt,
		StartedAt:      room.StartedAt,
	}
}

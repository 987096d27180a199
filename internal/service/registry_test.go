package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRegistry_FindWaitingWithin(t *testing.T) {
	registry := NewRoomRegistry()
	registry.Add(1, 10, 1200)

	t.Run("边界内命中", func(t *testing.T) {
		id, ok := registry.FindWaitingWithin(20, 1400, 200)
		require.True(t, ok)
		assert.Equal(t, uint(1), id)
	})

	t.Run("边界外不命中", func(t *testing.T) {
		_, ok := registry.FindWaitingWithin(20, 1401, 200)
		assert.False(t, ok)
	})

	t.Run("排除自己创建的房间", func(t *testing.T) {
		_, ok := registry.FindWaitingWithin(10, 1200, 200)
		assert.False(t, ok)
	})

	t.Run("进行中的房间不参与配对", func(t *testing.T) {
		require.True(t, registry.Join(1, 20, 10))
		_, ok := registry.FindWaitingWithin(30, 1200, 200)
		assert.False(t, ok)
	})
}

func TestRoomRegistry_JoinRejectsFullOrMissingRoom(t *testing.T) {
	registry := NewRoomRegistry()
	registry.Add(1, 10, 1200)

	assert.True(t, registry.Join(1, 20, 10))
	assert.False(t, registry.Join(1, 30, 10), "已满的房间不能再加入")
	assert.False(t, registry.Join(2, 30, 10), "不存在的房间不能加入")
}

func TestRoomRegistry_ReportCompletesExactlyOnce(t *testing.T) {
	registry := NewRoomRegistry()
	registry.Add(1, 10, 1200)
	require.True(t, registry.Join(1, 20, 10))

	status, snapshot := registry.Report(1, 10, 7)
	assert.Equal(t, reportRecorded, status)
	assert.Nil(t, snapshot)

	status, snapshot = registry.Report(1, 20, 4)
	assert.Equal(t, reportCompleted, status)
	require.NotNil(t, snapshot)
	assert.Equal(t, 7, snapshot.Reports[10])
	assert.Equal(t, 4, snapshot.Reports[20])

	// 结算进行中，后续上报被拒绝
	status, _ = registry.Report(1, 10, 9)
	assert.Equal(t, reportFinalizing, status)
}

func TestRoomRegistry_ReportValidation(t *testing.T) {
	registry := NewRoomRegistry()
	registry.Add(1, 10, 1200)

	status, _ := registry.Report(99, 10, 5)
	assert.Equal(t, reportUnknownRoom, status)

	status, _ = registry.Report(1, 99, 5)
	assert.Equal(t, reportNotParticipant, status)

	status, _ = registry.Report(1, 10, 5)
	assert.Equal(t, reportNotStarted, status, "等待中的房间不接受上报")

	require.True(t, registry.Join(1, 20, 10))
	status, _ = registry.Report(1, 10, -1)
	assert.Equal(t, reportInvalidCount, status)
	status, _ = registry.Report(1, 10, 11)
	assert.Equal(t, reportInvalidCount, status, "超出题目总数的上报应被拒绝")
	status, _ = registry.Report(1, 10, 10)
	assert.Equal(t, reportRecorded, status, "等于题目总数是合法上报")
}

func TestRoomRegistry_ReopenAllowsRetry(t *testing.T) {
	registry := NewRoomRegistry()
	registry.Add(1, 10, 1200)
	require.True(t, registry.Join(1, 20, 10))
	registry.Report(1, 10, 7)
	status, _ := registry.Report(1, 20, 4)
	require.Equal(t, reportCompleted, status)

	registry.Reopen(1)

	status, snapshot := registry.Report(1, 20, 4)
	assert.Equal(t, reportCompleted, status, "重开后再次上报应重新触发结算")
	require.NotNil(t, snapshot)
}

func TestRoomRegistry_ConcurrentReportsCompleteOnce(t *testing.T) {
	registry := NewRoomRegistry()
	registry.Add(1, 10, 1200)
	require.True(t, registry.Join(1, 20, 10))

	var wg sync.WaitGroup
	completions := make(chan *RoomSnapshot, 64)
	for i := 0; i < 32; i++ {
		player := uint(10)
		if i%2 == 1 {
			player = 20
		}
		wg.Add(1)
		go func(p uint) {
			defer wg.Done()
			if status, snap := registry.Report(1, p, 5); status == reportCompleted {
				completions <- snap
			}
		}(player)
	}
	wg.Wait()
	close(completions)

	count := 0
	for range completions {
		count++
	}
	assert.Equal(t, 1, count, "并发上报下结算只能触发一次")
}

func TestRoomRegistry_Stale(t *testing.T) {
	registry := NewRoomRegistry()
	registry.Add(1, 10, 1200)
	registry.Add(2, 20, 1300)
	require.True(t, registry.Join(2, 30, 10))

	stale := registry.Stale(time.Hour, time.Hour)
	assert.Empty(t, stale, "新房间不应被判为超龄")

	stale = registry.Stale(-time.Second, time.Hour)
	require.Len(t, stale, 1)
	assert.Equal(t, uint(1), stale[0].ID, "只有等待中的房间按等待超时计龄")

	stale = registry.Stale(-time.Second, -time.Second)
	assert.Len(t, stale, 2)
}

func TestRoomRegistry_RoomOfPlayer(t *testing.T) {
	registry := NewRoomRegistry()
	registry.Add(1, 10, 1200)

	id, state, ok := registry.RoomOfPlayer(10)
	require.True(t, ok)
	assert.Equal(t, uint(1), id)
	assert.Equal(t, RoomWaiting, state)

	_, _, ok = registry.RoomOfPlayer(99)
	assert.False(t, ok)
}

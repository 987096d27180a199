package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	t.Run("valid k-factor creates engine", func(t *testing.T) {
		engine, err := NewEngine(20)
		require.NoError(t, err)
		require.NotNil(t, engine)
	})

	t.Run("non-positive k-factor returns error", func(t *testing.T) {
		engine, err := NewEngine(0)
		assert.Error(t, err)
		assert.Nil(t, engine)

		engine, err = NewEngine(-5)
		assert.Error(t, err)
		assert.Nil(t, engine)
	})
}

func TestExpectedScore(t *testing.T) {
	// 积分相同时期望得分各为 0.5
	assert.InDelta(t, 0.5, expectedScore(1200, 1200), 0.0001)

	// 400 分差对应约 0.909 的期望得分
	assert.InDelta(t, 0.909, expectedScore(1600, 1200), 0.001)
	assert.InDelta(t, 0.091, expectedScore(1200, 1600), 0.001)

	// 两侧期望得分之和恒为 1
	sum := expectedScore(1350, 1180) + expectedScore(1180, 1350)
	assert.InDelta(t, 1.0, sum, 0.0001)
}

func TestComputeDeltas(t *testing.T) {
	engine, err := NewEngine(20)
	require.NoError(t, err)

	t.Run("equal ratings, A wins", func(t *testing.T) {
		// E=0.5 两侧，S_A=1 => delta = round(20*0.5) = 10
		deltaA, deltaB := engine.ComputeDeltas(1200, 1200, OutcomeWinA)
		assert.Equal(t, 10, deltaA)
		assert.Equal(t, -10, deltaB)
	})

	t.Run("equal ratings, draw yields zero deltas", func(t *testing.T) {
		deltaA, deltaB := engine.ComputeDeltas(1200, 1200, OutcomeDraw)
		assert.Equal(t, 0, deltaA)
		assert.Equal(t, 0, deltaB)
	})

	t.Run("underdog win pays more", func(t *testing.T) {
		// 低分方战胜高分方，获得的分数应超过 K/2
		deltaA, deltaB := engine.ComputeDeltas(1000, 1400, OutcomeWinA)
		assert.Greater(t, deltaA, 10)
		assert.Less(t, deltaB, -10)
	})

	t.Run("favorite win pays less", func(t *testing.T) {
		deltaA, deltaB := engine.ComputeDeltas(1400, 1000, OutcomeWinA)
		assert.Greater(t, deltaA, 0)
		assert.Less(t, deltaA, 10)
		assert.LessOrEqual(t, deltaB, 0)
	})

	t.Run("unequal ratings draw favors underdog", func(t *testing.T) {
		// 平局时低分方期望得分 <0.5，因此 delta 为正
		deltaA, deltaB := engine.ComputeDeltas(1100, 1300, OutcomeDraw)
		assert.Greater(t, deltaA, 0)
		assert.Less(t, deltaB, 0)
	})

	t.Run("deltas are deterministic", func(t *testing.T) {
		a1, b1 := engine.ComputeDeltas(1234, 1187, OutcomeWinB)
		a2, b2 := engine.ComputeDeltas(1234, 1187, OutcomeWinB)
		assert.Equal(t, a1, a2)
		assert.Equal(t, b1, b2)
	})
}

func TestOutcomeFromCounts(t *testing.T) {
	assert.Equal(t, OutcomeWinA, OutcomeFromCounts(7, 5))
	assert.Equal(t, OutcomeWinB, OutcomeFromCounts(3, 9))
	assert.Equal(t, OutcomeDraw, OutcomeFromCounts(6, 6))
	assert.Equal(t, OutcomeDraw, OutcomeFromCounts(0, 0))
}
